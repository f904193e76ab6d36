package sync

import (
	stdsync "sync"
	"time"

	"github.com/averyquinn/daybook/internal/models"
)

// pusher coalesces bursts of local mutations into one upstream push. Each
// schedule call replaces the pending snapshot and resets the timer, so the
// snapshot that finally goes out reflects every mutation in the burst.
// Pushes never run concurrently: a reset timer supersedes the pending
// push, and the run lock serializes back-to-back fires.
type pusher struct {
	delay time.Duration
	push  func(*models.Snapshot)

	mu      stdsync.Mutex
	timer   *time.Timer
	pending *models.Snapshot
	stopped bool

	runMu stdsync.Mutex
}

func newPusher(delay time.Duration, push func(*models.Snapshot)) *pusher {
	return &pusher{delay: delay, push: push}
}

// schedule queues the snapshot for pushing after the quiet period.
func (p *pusher) schedule(snap *models.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.pending = snap
	if p.timer == nil {
		p.timer = time.AfterFunc(p.delay, p.fire)
	} else {
		p.timer.Reset(p.delay)
	}
}

func (p *pusher) fire() {
	p.mu.Lock()
	snap := p.pending
	p.pending = nil
	p.mu.Unlock()

	if snap == nil {
		return
	}
	p.runMu.Lock()
	defer p.runMu.Unlock()
	p.push(snap)
}

// flush pushes any pending snapshot immediately.
func (p *pusher) flush() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	p.fire()
}

// stop drops any pending push and prevents new ones.
func (p *pusher) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.pending = nil
	if p.timer != nil {
		p.timer.Stop()
	}
}
