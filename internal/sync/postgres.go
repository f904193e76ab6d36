package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/averyquinn/daybook/internal/constants"
	"github.com/averyquinn/daybook/internal/logger"
	"github.com/averyquinn/daybook/internal/models"
)

const remoteSchema = `
CREATE TABLE IF NOT EXISTS daybook_snapshots (
	account_key TEXT PRIMARY KEY,
	doc         JSONB NOT NULL,
	version     BIGINT NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresRemote is the cloud document store backed by a Postgres table,
// with LISTEN/NOTIFY as the live push channel.
type PostgresRemote struct {
	connStr string
	db      *sql.DB
}

// NewPostgresRemote opens the remote. Opening only validates the DSN;
// reachability is established by Ping.
func NewPostgresRemote(connStr string) (*PostgresRemote, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid remote connection string: %w", err)
	}
	return &PostgresRemote{connStr: connStr, db: db}, nil
}

func (r *PostgresRemote) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("remote unreachable: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, remoteSchema); err != nil {
		return fmt.Errorf("failed to ensure remote schema: %w", err)
	}
	return nil
}

func (r *PostgresRemote) Fetch(ctx context.Context, accountKey string) (*models.Snapshot, error) {
	var doc string
	row := r.db.QueryRowContext(ctx,
		`SELECT doc FROM daybook_snapshots WHERE account_key = $1`, accountKey)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch remote snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse remote snapshot: %w", err)
	}
	return &snap, nil
}

func (r *PostgresRemote) Store(ctx context.Context, accountKey string, snap *models.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daybook_snapshots (account_key, doc, version, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (account_key) DO UPDATE SET
			doc = excluded.doc,
			version = excluded.version,
			updated_at = excluded.updated_at`,
		accountKey, string(doc), snap.Version)
	if err != nil {
		return fmt.Errorf("failed to store remote snapshot: %w", err)
	}

	// Announce on the live channel. Our own sessions hear this too; their
	// subsequent pull resolves to no-change on equal versions.
	if _, err := r.db.ExecContext(ctx,
		`SELECT pg_notify($1, $2)`, constants.NotifyChannel, accountKey); err != nil {
		logger.Warn("failed to announce snapshot change", "account", accountKey, "error", err)
	}
	return nil
}

func (r *PostgresRemote) Subscribe(ctx context.Context, accountKey string, notify func()) (func(), error) {
	listener := pq.NewListener(r.connStr, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("remote listener event", "event", ev, "error", err)
			}
		})
	if err := listener.Listen(constants.NotifyChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to subscribe to remote changes: %w", err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// nil notifications signal reconnects; re-pull to be safe.
				if n == nil || n.Extra == accountKey {
					notify()
				}
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		if err := listener.Close(); err != nil {
			logger.Warn("failed to close remote listener", "error", err)
		}
	}
	return stop, nil
}

// Close releases the connection pool. Any active subscription must be
// stopped first.
func (r *PostgresRemote) Close() error {
	return r.db.Close()
}
