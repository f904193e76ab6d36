package storage

import "github.com/averyquinn/daybook/internal/models"

// Provider is the local persistence adapter: durable write-through of the
// full per-account snapshot. Save and Load are synchronous from the
// caller's viewpoint.
//
// Load returns (nil, nil) when no snapshot exists for the account, and
// also when the stored document is unparseable: corrupt local data is
// treated as absent so startup can fall through to remote adoption or an
// empty state instead of crashing.
type Provider interface {
	Save(accountKey string, snap *models.Snapshot) error
	Load(accountKey string) (*models.Snapshot, error)
	Close() error
}
