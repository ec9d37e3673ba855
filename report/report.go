// Package report provides ready-made reporters that bridge timing
// measurements into common sinks: io.Writer streams, zerolog structured logs,
// Prometheus histograms, and OpenTelemetry spans.
//
// Every constructor returns a plain timing.Reporter or timing.StringReporter,
// so adapters compose with the timing package without it depending on any
// observability framework.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mlebl/timekit/format"
	"github.com/mlebl/timekit/timing"
)

// Writer returns a StringReporter that writes each formatted duration to w on
// its own line, preceded by prefix.
func Writer(w io.Writer, prefix string) timing.StringReporter {
	return func(s string) {
		fmt.Fprintf(w, "%s%s\n", prefix, s)
	}
}

// Zerolog returns a StringReporter that emits an info-level event with the
// formatted duration under the "elapsed" key.
func Zerolog(log zerolog.Logger, msg string) timing.StringReporter {
	return func(s string) {
		log.Info().Str("elapsed", s).Msg(msg)
	}
}

// ZerologNanos returns a Reporter that emits an info-level event carrying both
// the raw nanosecond count and its pretty rendering. The raw value keeps log
// pipelines aggregatable while the rendering keeps console output readable.
func ZerologNanos(log zerolog.Logger, msg string) timing.Reporter {
	return func(ns int64) {
		log.Info().Int64("elapsed_ns", ns).Str("elapsed", format.Pretty(ns)).Msg(msg)
	}
}

// Observer returns a Reporter that records the elapsed time, converted to
// seconds, into a Prometheus histogram or summary.
func Observer(obs prometheus.Observer) timing.Reporter {
	return func(ns int64) {
		obs.Observe(float64(ns) / float64(time.Second))
	}
}

// Span returns a Reporter that attaches an event named name to span, carrying
// the elapsed time as an elapsed_ns attribute.
func Span(span trace.Span, name string) timing.Reporter {
	return func(ns int64) {
		span.AddEvent(name, trace.WithAttributes(attribute.Int64("elapsed_ns", ns)))
	}
}
