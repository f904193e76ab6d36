package sync

import (
	"context"

	"github.com/averyquinn/daybook/internal/models"
)

// Remote is the cloud document store: one snapshot document per account,
// the same shape as the locally persisted one, plus a live change channel.
type Remote interface {
	// Ping checks reachability. Failure puts the client in offline mode.
	Ping(ctx context.Context) error

	// Fetch returns the remote snapshot, or (nil, nil) when the account
	// has never pushed.
	Fetch(ctx context.Context, accountKey string) (*models.Snapshot, error)

	// Store uploads the full snapshot and announces the change on the
	// live channel.
	Store(ctx context.Context, accountKey string, snap *models.Snapshot) error

	// Subscribe invokes notify whenever another session changes the
	// account's document, until the returned stop function is called.
	// Notifications carry no payload; the subscriber pulls.
	Subscribe(ctx context.Context, accountKey string, notify func()) (stop func(), err error)
}
