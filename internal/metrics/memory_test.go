package metrics

import "testing"

func TestSnapshotPopulated(t *testing.T) {
	mc := NewMemoryCollector()
	snap := mc.Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be non-zero in a running program")
	}
	if snap.TotalAlloc == 0 {
		t.Error("TotalAlloc should be non-zero in a running program")
	}
}

func TestSinceCountsAllocations(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()

	sink := make([][]byte, 64)
	for i := range sink {
		sink[i] = make([]byte, 64*1024)
	}

	after := mc.Snapshot()
	d := after.Since(before)
	if d.AllocatedBytes == 0 {
		t.Error("expected allocation delta after allocating 4 MiB")
	}
	_ = sink
}
