package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Run("String creates field with key and string value", func(t *testing.T) {
		f := String("workload", "sleep")
		if f.Key != "workload" || f.Value != "sleep" {
			t.Errorf("String() = %+v, want {workload sleep}", f)
		}
	})

	t.Run("Int creates field with key and int value", func(t *testing.T) {
		f := Int("iterations", 500)
		if f.Key != "iterations" || f.Value != 500 {
			t.Errorf("Int() = %+v, want {iterations 500}", f)
		}
	})

	t.Run("Int64 creates field with key and int64 value", func(t *testing.T) {
		f := Int64("elapsed_ns", 1_500_000)
		if f.Key != "elapsed_ns" || f.Value != int64(1_500_000) {
			t.Errorf("Int64() = %+v, want {elapsed_ns 1500000}", f)
		}
	})

	t.Run("Uint64 creates field with key and uint64 value", func(t *testing.T) {
		f := Uint64("heap", 12345678901234567890)
		if f.Key != "heap" || f.Value != uint64(12345678901234567890) {
			t.Errorf("Uint64() = %+v", f)
		}
	})

	t.Run("Float64 creates field with key and float64 value", func(t *testing.T) {
		f := Float64("p95_ms", 3.141)
		if f.Key != "p95_ms" || f.Value != 3.141 {
			t.Errorf("Float64() = %+v", f)
		}
	})

	t.Run("Err creates field with error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" || f.Value != testErr {
			t.Errorf("Err() = %+v", f)
		}
	})
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "bench-runner")

	logger.Info("hello")
	output := buf.String()

	if !strings.Contains(output, "bench-runner") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Info tests the Info method with various fields.
func TestZerologAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{
			name:     "no fields",
			msg:      "run started",
			fields:   nil,
			contains: []string{"run started", "info"},
		},
		{
			name:     "with string field",
			msg:      "workload finished",
			fields:   []Field{String("workload", "spin")},
			contains: []string{"workload finished", "spin"},
		},
		{
			name:     "with multiple fields",
			msg:      "iteration",
			fields:   []Field{Int("n", 10), Int64("elapsed_ns", 420)},
			contains: []string{"iteration", "10", "420"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Error("run failed", errors.New("deadline exceeded"), String("workload", "alloc"))

	output := buf.String()
	for _, want := range []string{"run failed", "deadline exceeded", "alloc"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestZerologAdapter_Debug tests the Debug method with a debug-level logger.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	adapter.Debug("sample recorded", Int64("ns", 17))

	output := buf.String()
	if !strings.Contains(output, "sample recorded") || !strings.Contains(output, "debug") {
		t.Errorf("Debug output incomplete, got: %s", output)
	}
}

// TestZerologAdapter_applyFields exercises field application with all
// supported value types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info("test", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestZerologAdapter_PrintfPrintln tests the printf-style methods.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("took %d ns", 42)
	logger.Println("all", "done")

	output := buf.String()
	if !strings.Contains(output, "took 42 ns") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "all") || !strings.Contains(output, "done") {
		t.Errorf("Println should include all arguments, got: %s", output)
	}
}

// TestStdLoggerAdapter tests the standard-library adapter.
func TestStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Info("run complete", String("workload", "sleep"))
	adapter.Error("run failed", errors.New("boom"), Int("attempt", 3))
	adapter.Debug("trace", Int64("ns", 9))

	output := buf.String()
	for _, want := range []string{"[INFO]", "run complete", "workload=sleep", "[ERROR]", "boom", "attempt=3", "[DEBUG]", "ns=9"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestLoggerInterface verifies both adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
}
