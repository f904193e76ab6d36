package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSnapshotPreservesUnknownKeys(t *testing.T) {
	doc := `{
		"_version": 42,
		"account": {"user_id": "u-1", "email": "a@b.c"},
		"tasks": {},
		"habits": {},
		"projects": {},
		"notes": {},
		"journal": [{"day": "2025-01-01", "text": "hello"}],
		"theme": "dark"
	}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		t.Fatalf("failed to unmarshal snapshot: %v", err)
	}

	if snap.Version != 42 {
		t.Errorf("version = %d, want 42", snap.Version)
	}
	if snap.Account.UserID != "u-1" {
		t.Errorf("account user = %q, want u-1", snap.Account.UserID)
	}
	if len(snap.Extra) != 2 {
		t.Fatalf("extra keys = %d, want 2 (%v)", len(snap.Extra), snap.Extra)
	}

	out, err := json.Marshal(&snap)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"journal"`) || !strings.Contains(s, `"theme"`) {
		t.Errorf("unknown keys dropped on round trip: %s", s)
	}
	if !strings.Contains(s, `"text":"hello"`) {
		t.Errorf("unknown key payload altered on round trip: %s", s)
	}
}

func TestSnapshotRoundTripEntities(t *testing.T) {
	snap := NewSnapshot()
	snap.Version = 7
	snap.Tasks["t1"] = Task{ID: "t1", Title: "Buy milk", Status: TaskPending, PriorityScore: 3}
	snap.Habits["h1"] = Habit{
		ID:            "h1",
		Name:          "Run",
		Policy:        RecurrencePolicy{Type: PolicyDaily},
		CompletionLog: []string{"2025-01-02", "2025-01-01"}, // deliberately unsorted
		CreatedAt:     "2025-01-01",
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if got.Version != 7 {
		t.Errorf("version = %d, want 7", got.Version)
	}
	if got.Tasks["t1"].Title != "Buy milk" {
		t.Errorf("task title = %q, want Buy milk", got.Tasks["t1"].Title)
	}
	log := got.Habits["h1"].CompletionLog
	if len(log) != 2 || log[0] != "2025-01-01" || log[1] != "2025-01-02" {
		t.Errorf("completion log not normalized on load: %v", log)
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	snap := NewSnapshot()
	snap.Habits["h1"] = Habit{ID: "h1", CompletionLog: []string{"2025-01-01"}}
	snap.Extra = map[string]json.RawMessage{"x": json.RawMessage(`1`)}

	c := snap.Clone()
	h := c.Habits["h1"]
	h.CompletionLog, _ = h.CompletionLog.Add("2025-01-02")
	c.Habits["h1"] = h
	c.Extra["x"] = json.RawMessage(`2`)

	if len(snap.Habits["h1"].CompletionLog) != 1 {
		t.Error("mutating clone's ledger changed the original")
	}
	if string(snap.Extra["x"]) != "1" {
		t.Error("mutating clone's extra bag changed the original")
	}
}

func TestEntityCountIncludesTombstones(t *testing.T) {
	snap := NewSnapshot()
	if snap.EntityCount() != 0 {
		t.Errorf("empty snapshot count = %d, want 0", snap.EntityCount())
	}
	ts := time.Now()
	snap.Tasks["t1"] = Task{ID: "t1", DeletedAt: &ts}
	snap.Projects["p1"] = Project{ID: "p1"}
	if snap.EntityCount() != 2 {
		t.Errorf("count = %d, want 2 (tombstoned task still counts)", snap.EntityCount())
	}
}
