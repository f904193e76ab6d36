package models

import (
	"encoding/json"

	"github.com/averyquinn/daybook/internal/ledger"
)

// Account is the locally-known identity metadata for a snapshot. UserID is
// the opaque identifier handed out by the external identity provider.
// Account fields are never overwritten by remote data during a merge: the
// remote copy may carry another session's cached identity.
type Account struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Snapshot is the full per-account document: every entity collection plus
// the version stamp. The same shape is persisted locally and stored
// remotely, which is what lets the merge resolver compare the two
// structurally.
//
// Extra is the opaque extension bag: top-level keys this code does not
// know about survive a load/save round trip verbatim, so a newer schema's
// fields are never dropped by an older writer.
type Snapshot struct {
	Version  int64              `json:"-"`
	Account  Account            `json:"-"`
	Tasks    map[string]Task    `json:"-"`
	Habits   map[string]Habit   `json:"-"`
	Projects map[string]Project `json:"-"`
	Notes    map[string]Note    `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// knownKeys are the top-level document keys owned by this schema version.
var knownKeys = map[string]bool{
	"_version": true,
	"account":  true,
	"tasks":    true,
	"habits":   true,
	"projects": true,
	"notes":    true,
}

// NewSnapshot returns an empty snapshot with all collections initialized.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Tasks:    make(map[string]Task),
		Habits:   make(map[string]Habit),
		Projects: make(map[string]Project),
		Notes:    make(map[string]Note),
	}
}

// EntityCount returns the total number of entities across all kinds,
// soft-deleted tasks included. The merge resolver's empty-local exception
// keys off this.
func (s *Snapshot) EntityCount() int {
	return len(s.Tasks) + len(s.Habits) + len(s.Projects) + len(s.Notes)
}

// Clone returns a deep copy. The persistence adapter and sync client work
// on clones so their asynchronous work never races in-memory mutation.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	out.Version = s.Version
	out.Account = s.Account
	for id, t := range s.Tasks {
		out.Tasks[id] = t
	}
	for id, h := range s.Habits {
		out.Habits[id] = h.Clone()
	}
	for id, p := range s.Projects {
		out.Projects[id] = p
	}
	for id, n := range s.Notes {
		out.Notes[id] = n
	}
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(s.Extra)+len(knownKeys))
	for k, v := range s.Extra {
		doc[k] = v
	}

	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		doc[key] = raw
		return nil
	}
	if err := put("_version", s.Version); err != nil {
		return nil, err
	}
	if err := put("account", s.Account); err != nil {
		return nil, err
	}
	if err := put("tasks", s.Tasks); err != nil {
		return nil, err
	}
	if err := put("habits", s.Habits); err != nil {
		return nil, err
	}
	if err := put("projects", s.Projects); err != nil {
		return nil, err
	}
	if err := put("notes", s.Notes); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*s = *NewSnapshot()
	take := func(key string, dst any) error {
		raw, ok := doc[key]
		if !ok {
			return nil
		}
		return json.Unmarshal(raw, dst)
	}
	if err := take("_version", &s.Version); err != nil {
		return err
	}
	if err := take("account", &s.Account); err != nil {
		return err
	}
	if err := take("tasks", &s.Tasks); err != nil {
		return err
	}
	if err := take("habits", &s.Habits); err != nil {
		return err
	}
	if err := take("projects", &s.Projects); err != nil {
		return err
	}
	if err := take("notes", &s.Notes); err != nil {
		return err
	}

	for k, v := range doc {
		if knownKeys[k] {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[k] = v
	}

	// Old writers did not keep the ledger invariant.
	for id, h := range s.Habits {
		h.CompletionLog = ledger.Normalize(h.CompletionLog)
		s.Habits[id] = h
	}
	return nil
}
