// Package store owns the in-memory authoritative snapshot for one
// account: typed CRUD per entity kind, the monotonic version stamp,
// write-through persistence, and the notification channel the view layer
// subscribes to.
//
// A Store has a single logical owner driving CRUD, but remote adoptions
// arrive on the sync client's listener goroutine, so snapshot access is
// guarded internally. The asynchronous collaborators (local persistence,
// sync client) only ever receive snapshot copies.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/averyquinn/daybook/internal/logger"
	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/storage"
	"github.com/averyquinn/daybook/internal/utils"
)

// Event names published on the notification channel.
const (
	EventTaskCreated   = "task:created"
	EventTaskUpdated   = "task:updated"
	EventTaskCompleted = "task:completed"
	EventTaskDeleted   = "task:deleted"

	EventHabitCreated   = "habit:created"
	EventHabitUpdated   = "habit:updated"
	EventHabitCompleted = "habit:completed"
	EventHabitDeleted   = "habit:deleted"

	EventProjectCreated = "project:created"
	EventProjectUpdated = "project:updated"
	EventProjectDeleted = "project:deleted"

	EventNoteCreated = "note:created"
	EventNoteUpdated = "note:updated"
	EventNoteDeleted = "note:deleted"

	// EventReloaded and EventCloudSync carry a full snapshot copy and
	// mean "re-render everything".
	EventReloaded  = "store:reloaded"
	EventCloudSync = "store:cloud-sync"
)

// ErrNotFound is returned when an entity id does not resolve (or, for
// tasks, resolves only to a tombstone).
var ErrNotFound = errors.New("not found")

// Listener receives store events. Notification is synchronous; a listener
// may trigger further store mutations, each of which is a discrete,
// terminating call.
type Listener func(event string, payload any)

// Store is the per-account entity store. Construct one per account with
// New and inject it; there is no package-level instance.
type Store struct {
	accountKey string
	provider   storage.Provider
	now        func() time.Time

	// mu guards snap. The owning goroutine is the primary writer, but the
	// live sync channel adopts remote snapshots from its listener
	// goroutine, so every snap access synchronizes here.
	mu   sync.RWMutex
	snap *models.Snapshot

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

// New creates a store for the given account backed by the provider. The
// snapshot starts empty; call LoadLocal to hydrate from disk.
func New(accountKey string, provider storage.Provider) *Store {
	return &Store{
		accountKey: accountKey,
		provider:   provider,
		now:        time.Now,
		snap:       models.NewSnapshot(),
		subs:       make(map[int]Listener),
	}
}

// SetClock replaces the wall clock. Tests use it to pin version stamps and
// streak arithmetic.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// AccountKey returns the account this store serves.
func (s *Store) AccountKey() string {
	return s.accountKey
}

// LoadLocal hydrates the snapshot from local persistence. A missing or
// corrupt document leaves the store empty; this is never an error at
// startup. Publishes store:reloaded.
func (s *Store) LoadLocal() error {
	snap, err := s.provider.Load(s.accountKey)
	if err != nil {
		return fmt.Errorf("failed to load local snapshot: %w", err)
	}
	if snap != nil {
		s.mu.Lock()
		s.snap = snap
		s.mu.Unlock()
	}
	s.publish(EventReloaded, s.Snapshot())
	return nil
}

// Account returns the locally-known identity metadata.
func (s *Store) Account() models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Account
}

// SetAccount records identity metadata from the external identity
// provider and persists it.
func (s *Store) SetAccount(a models.Account) {
	s.mu.Lock()
	s.snap.Account = a
	s.commit()
	s.mu.Unlock()
}

// Version returns the current snapshot version stamp.
func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Version
}

// Snapshot returns a deep copy of the current snapshot. Collaborators
// never see the live in-memory state.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(l Listener) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = l
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// publish notifies all subscribers synchronously. The subscriber list is
// copied first so a listener may subscribe, unsubscribe, or mutate the
// store without deadlocking.
func (s *Store) publish(event string, payload any) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		listeners = append(listeners, l)
	}
	s.subMu.Unlock()

	for _, l := range listeners {
		l(event, payload)
	}
}

// commit stamps a new version and writes the snapshot through local
// persistence. The version is wall-clock derived but strictly increasing:
// a burst of mutations inside one millisecond still orders correctly.
// Callers hold mu.
func (s *Store) commit() {
	v := s.now().UnixMilli()
	if v <= s.snap.Version {
		v = s.snap.Version + 1
	}
	s.snap.Version = v

	if err := s.provider.Save(s.accountKey, s.snap.Clone()); err != nil {
		// Persistence trouble degrades to in-memory operation; the
		// mutation itself already succeeded.
		logger.Warn("local persistence failed", "account", s.accountKey, "error", err)
	}
}

// mutate commits under the store lock, releases it, then publishes, so
// listeners observe the post-persist state and may re-enter the store
// without deadlocking. Callers enter with mu held; mutate leaves it
// released.
func (s *Store) mutate(event string, payload any) {
	s.commit()
	s.mu.Unlock()
	s.publish(event, payload)
}

// Adopt replaces all entity collections with the remote snapshot's,
// keeping only the locally-known account metadata: remote documents may
// carry another session's cached identity and must never overwrite ours.
// viaPush selects the store:cloud-sync event (live channel) over
// store:reloaded (one-shot pull).
func (s *Store) Adopt(remote *models.Snapshot, viaPush bool) {
	adopted := remote.Clone()

	s.mu.Lock()
	adopted.Account = s.snap.Account
	s.snap = adopted

	if err := s.provider.Save(s.accountKey, s.snap.Clone()); err != nil {
		logger.Warn("failed to persist adopted snapshot", "account", s.accountKey, "error", err)
	}
	s.mu.Unlock()

	event := EventReloaded
	if viaPush {
		event = EventCloudSync
	}
	s.publish(event, s.Snapshot())
}

func (s *Store) today() string {
	return utils.DayString(s.now())
}
