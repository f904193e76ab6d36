package ledger

import (
	"reflect"
	"testing"
)

func TestAddKeepsSortedAndDeduplicated(t *testing.T) {
	var l Ledger

	l, added := l.Add("2025-01-10")
	if !added {
		t.Fatal("expected first add to report added")
	}
	l, _ = l.Add("2025-01-02")
	l, _ = l.Add("2025-01-05")

	want := Ledger{"2025-01-02", "2025-01-05", "2025-01-10"}
	if !reflect.DeepEqual(l, want) {
		t.Errorf("ledger = %v, want %v", l, want)
	}

	l2, added := l.Add("2025-01-05")
	if added {
		t.Error("expected duplicate add to report not added")
	}
	if !reflect.DeepEqual(l2, want) {
		t.Errorf("ledger after duplicate add = %v, want %v", l2, want)
	}
}

func TestRemove(t *testing.T) {
	l := Ledger{"2025-01-02", "2025-01-05", "2025-01-10"}

	l, removed := l.Remove("2025-01-05")
	if !removed {
		t.Fatal("expected removal of present day to report removed")
	}
	want := Ledger{"2025-01-02", "2025-01-10"}
	if !reflect.DeepEqual(l, want) {
		t.Errorf("ledger = %v, want %v", l, want)
	}

	l, removed = l.Remove("2025-01-05")
	if removed {
		t.Error("expected removal of absent day to report not removed")
	}
}

func TestHasAndLatest(t *testing.T) {
	l := Ledger{"2025-01-02", "2025-01-10"}

	if !l.Has("2025-01-02") {
		t.Error("expected Has to find present day")
	}
	if l.Has("2025-01-03") {
		t.Error("expected Has to miss absent day")
	}
	if l.Latest() != "2025-01-10" {
		t.Errorf("Latest = %q, want 2025-01-10", l.Latest())
	}

	var empty Ledger
	if empty.Latest() != "" {
		t.Error("expected empty ledger Latest to be empty string")
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"2025-01-10", "2025-01-02", "2025-01-10", "2025-01-05"})
	want := Ledger{"2025-01-02", "2025-01-05", "2025-01-10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}

	if Normalize(nil) != nil {
		t.Error("expected Normalize(nil) to be nil")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := Ledger{"2025-01-02", "2025-01-05"}
	c := l.Clone()
	c[0] = "1999-01-01"
	if l[0] != "2025-01-02" {
		t.Error("mutating clone changed the original")
	}
}
