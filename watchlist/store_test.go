package watchlist

import (
	"testing"

	"github.com/kkws0615/STOCKup/models"
)

func entry(code string, seg models.Segment, name string) models.Entry {
	return models.Entry{
		Instrument: models.Instrument{Code: code, Segment: seg},
		Name:       name,
	}
}

func TestStoreAddAndDedup(t *testing.T) {
	s := NewStore()

	if !s.Add(entry("2330", models.SegmentTWSE, "台積電")) {
		t.Fatal("first Add should report added")
	}
	if s.Add(entry("2330", models.SegmentTWSE, "台積電")) {
		t.Error("duplicate Add should report already present, not added")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if !s.Contains("2330.TW") {
		t.Error("Contains(2330.TW) should be true")
	}
}

func TestStoreKeyIncludesSegment(t *testing.T) {
	s := NewStore()

	// Same bare code on different segments are distinct entries.
	s.Add(entry("6488", models.SegmentTWSE, "環球晶A"))
	s.Add(entry("6488", models.SegmentTPEx, "環球晶"))

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2: the full symbol is the dedup key", s.Len())
	}
	if !s.Contains("6488.TWO") {
		t.Error("Contains(6488.TWO) should be true")
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.Add(entry("2330", models.SegmentTWSE, "台積電"))
	s.Add(entry("2603", models.SegmentTWSE, "長榮"))

	if !s.Remove("2330.TW") {
		t.Error("Remove should report removal of a present symbol")
	}
	if s.Remove("2330.TW") {
		t.Error("Remove of an absent symbol should be a no-op")
	}

	syms := s.Symbols()
	if len(syms) != 1 || syms[0] != "2603.TW" {
		t.Errorf("Symbols = %v, want [2603.TW]", syms)
	}
}

func TestStoreRemoveAll(t *testing.T) {
	s := NewStore()
	s.Add(entry("2330", models.SegmentTWSE, "台積電"))
	s.Add(entry("2603", models.SegmentTWSE, "長榮"))

	removed := s.RemoveAll([]string{"2603.TW", "0000.TW"})
	if removed != 1 {
		t.Errorf("RemoveAll removed %d, want 1", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStoreEntriesKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Add(entry("2603", models.SegmentTWSE, "長榮"))
	s.Add(entry("2330", models.SegmentTWSE, "台積電"))
	s.Add(entry("5483", models.SegmentTPEx, "中美晶"))

	entries := s.Entries()
	want := []string{"2603.TW", "2330.TW", "5483.TWO"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Instrument.Symbol() != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Instrument.Symbol(), want[i])
		}
	}
}

func TestStoreConsumePin(t *testing.T) {
	s := NewStore()
	s.Add(entry("2330", models.SegmentTWSE, "台積電"))
	s.Add(entry("2603", models.SegmentTWSE, "長榮"))

	// The most recent add is pinned exactly once.
	if got := s.ConsumePin(); got != "2603.TW" {
		t.Errorf("ConsumePin = %q, want 2603.TW", got)
	}
	if got := s.ConsumePin(); got != "" {
		t.Errorf("second ConsumePin = %q, want empty", got)
	}

	// A duplicate add does not re-pin.
	s.Add(entry("2330", models.SegmentTWSE, "台積電"))
	if got := s.ConsumePin(); got != "" {
		t.Errorf("duplicate add should not pin, got %q", got)
	}
}

func TestStoreRemoveClearsPin(t *testing.T) {
	s := NewStore()
	s.Add(entry("2330", models.SegmentTWSE, "台積電"))

	s.Remove("2330.TW")
	if got := s.ConsumePin(); got != "" {
		t.Errorf("removed symbol should not stay pinned, got %q", got)
	}
}
