// Package sync keeps one account's local snapshot and its remote replica
// consistent: pull on startup, debounced push on change, and a live
// subscription that adopts remote snapshots as they arrive. User data is
// never silently discarded; the merge resolver either adopts remote
// wholesale or keeps local intact.
package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/averyquinn/daybook/internal/logger"
	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/store"
)

// State is the client's position in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateOnline
	StateOffline
	StateSubscribed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateOnline:
		return "online"
	case StateOffline:
		return "offline"
	case StateSubscribed:
		return "subscribed"
	default:
		return "uninitialized"
	}
}

// Client drives synchronization for one account's store.
type Client struct {
	remote Remote
	store  *store.Store

	// OnRemoteAdopt, when set before Start, is invoked exactly once per
	// snapshot adopted from the live channel: the "synchronized from
	// another device" signal. Pull adoptions do not trigger it.
	OnRemoteAdopt func()

	pusher     *pusher
	detachFrom func()
	stopListen func()

	mu    stdsync.Mutex
	state State
}

// NewClient builds a client; it does nothing until Start.
func NewClient(remote Remote, st *store.Store, debounce time.Duration) *Client {
	c := &Client{remote: remote, store: st, state: StateUninitialized}
	c.pusher = newPusher(debounce, c.pushNow)
	return c
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Start brings the client up. A dead remote is not an error: the client
// settles in offline mode and every local operation keeps succeeding
// without sync. When the remote is reachable, Start pulls once, merges,
// establishes the live subscription, and begins watching the store for
// mutations to push.
func (c *Client) Start(ctx context.Context) error {
	c.setState(StateInitializing)
	c.detachFrom = c.store.Subscribe(c.onStoreEvent)

	if err := c.remote.Ping(ctx); err != nil {
		logger.Warn("remote unreachable, operating local-only", "error", err)
		c.setState(StateOffline)
		return nil
	}
	c.setState(StateOnline)

	if err := c.Pull(ctx); err != nil {
		logger.Warn("initial pull failed", "error", err)
	}

	stop, err := c.remote.Subscribe(ctx, c.store.AccountKey(), c.onRemoteChange)
	if err != nil {
		logger.Warn("live subscription unavailable, staying online without push channel", "error", err)
	} else {
		c.stopListen = stop
		c.setState(StateSubscribed)
	}
	return nil
}

// Pull fetches the remote snapshot once and merges. Unknown account (no
// remote document yet) and offline mode are both quiet no-ops.
func (c *Client) Pull(ctx context.Context) error {
	if c.State() == StateOffline {
		return nil
	}
	remote, err := c.remote.Fetch(ctx, c.store.AccountKey())
	if err != nil {
		return err
	}
	c.merge(remote, false)
	return nil
}

// ForceSync is the explicit user action: re-ping a dead remote, pull,
// merge, and push the current snapshot immediately. Unlike background
// sync, failures here surface to the caller.
func (c *Client) ForceSync(ctx context.Context) error {
	if err := c.remote.Ping(ctx); err != nil {
		c.setState(StateOffline)
		return err
	}
	if c.State() == StateOffline {
		c.setState(StateOnline)
	}

	remote, err := c.remote.Fetch(ctx, c.store.AccountKey())
	if err != nil {
		return err
	}
	c.merge(remote, false)

	if err := c.remote.Store(ctx, c.store.AccountKey(), c.store.Snapshot()); err != nil {
		return err
	}

	// A session that started against a dead remote never completed the
	// subscription handshake; recovery establishes the live channel now.
	if c.stopListen == nil {
		stop, err := c.remote.Subscribe(ctx, c.store.AccountKey(), c.onRemoteChange)
		if err != nil {
			logger.Warn("live subscription unavailable after recovery", "error", err)
		} else {
			c.stopListen = stop
			c.setState(StateSubscribed)
		}
	}
	return nil
}

// merge applies the resolver's decision. viaPush marks snapshots that
// arrived over the live channel; only those fire OnRemoteAdopt.
func (c *Client) merge(remote *models.Snapshot, viaPush bool) {
	local := c.store.Snapshot()
	decision := Resolve(local, remote)
	logger.Debug("merge decision",
		"decision", decision.String(),
		"local_version", local.Version,
		"remote_version", remoteVersion(remote))

	if decision != AdoptRemote {
		// Keeping local needs no push here; the next mutation's debounced
		// push propagates it naturally.
		return
	}

	c.store.Adopt(remote, viaPush)
	if viaPush && c.OnRemoteAdopt != nil {
		c.OnRemoteAdopt()
	}
}

func remoteVersion(snap *models.Snapshot) int64 {
	if snap == nil {
		return -1
	}
	return snap.Version
}

// onRemoteChange handles a live-channel notification: pull and merge.
func (c *Client) onRemoteChange() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	remote, err := c.remote.Fetch(ctx, c.store.AccountKey())
	if err != nil {
		logger.Warn("failed to fetch after change notification", "error", err)
		return
	}
	c.merge(remote, true)
}

// onStoreEvent schedules a debounced push for every local mutation.
// Adoption and reload events are skipped: re-pushing what we just adopted
// would bounce snapshots between devices forever.
func (c *Client) onStoreEvent(event string, _ any) {
	if event == store.EventCloudSync || event == store.EventReloaded {
		return
	}
	if c.State() == StateOffline {
		return
	}
	c.pusher.schedule(c.store.Snapshot())
}

// pushNow uploads a snapshot. Transient failures flip the client offline
// and are otherwise swallowed; local operation continues.
func (c *Client) pushNow(snap *models.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.remote.Store(ctx, c.store.AccountKey(), snap); err != nil {
		logger.Warn("push failed, going offline", "error", err)
		c.setState(StateOffline)
	}
}

// Flush pushes any pending debounced snapshot immediately.
func (c *Client) Flush() {
	c.pusher.flush()
}

// Close shuts the client down: the live subscription is unsubscribed
// before anything else so no callback can arrive against a torn-down
// store, then pending pushes are dropped and the store watch detached.
func (c *Client) Close() {
	if c.stopListen != nil {
		c.stopListen()
		c.stopListen = nil
	}
	c.pusher.stop()
	if c.detachFrom != nil {
		c.detachFrom()
		c.detachFrom = nil
	}
	c.setState(StateUninitialized)
}
