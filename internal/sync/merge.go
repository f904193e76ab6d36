package sync

import "github.com/averyquinn/daybook/internal/models"

// Decision is the merge resolver's verdict for a (local, remote) pair.
type Decision int

const (
	// KeepLocal keeps the local snapshot. Nothing is pushed back in the
	// same cycle; the next local mutation's debounced push propagates it.
	KeepLocal Decision = iota
	// AdoptRemote deep-replaces local collections with the remote's.
	AdoptRemote
	// NoChange means the versions are equal and the snapshots are assumed
	// semantically equivalent.
	NoChange
)

func (d Decision) String() string {
	switch d {
	case AdoptRemote:
		return "adopt-remote"
	case NoChange:
		return "no-change"
	default:
		return "keep-local"
	}
}

// Resolve picks the winning snapshot. The rules, in order:
//
//  1. Remote strictly newer: adopt remote.
//  2. Local holds zero entities and remote holds at least one: adopt
//     remote even at a lower version. This is the first-login-on-a-new-
//     device case and a deliberate exception to rule 1.
//  3. Equal versions: no-op. Applying the same remote snapshot twice is
//     therefore idempotent: the first adoption equalizes the versions and
//     the second application lands here.
//  4. Otherwise local is strictly newer and non-empty: keep local.
//
// Rule 3 can in principle drop a remote edit stamped at the same
// millisecond as a local one; that conservative choice (keep local) is
// the accepted risk of wall-clock version stamps.
func Resolve(local, remote *models.Snapshot) Decision {
	if remote == nil {
		return KeepLocal
	}
	if remote.Version > local.Version {
		return AdoptRemote
	}
	if local.EntityCount() == 0 && remote.EntityCount() > 0 {
		return AdoptRemote
	}
	if remote.Version == local.Version {
		return NoChange
	}
	return KeepLocal
}
