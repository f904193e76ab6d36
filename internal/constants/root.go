package constants

const (
	AppName           = "daybook"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/daybook/daybook.db"
	DefaultAccountKey = "default"

	// DateFormat is the standard calendar-day format used throughout the
	// application (YYYY-MM-DD). Completion logs, anchors, and scheduled
	// dates all use it; time-of-day is never stored for habit data.
	DateFormat = "2006-01-02"

	// KeyringRemoteUser is the keyring "user" under which the remote
	// connection string is stored, scoped per account key.
	KeyringRemoteUser = "remote-connection"

	// PushDebounce is the quiet period the sync client waits after the
	// last local mutation before pushing a snapshot upstream.
	PushDebounceMs = 1500

	// NotifyChannel is the Postgres NOTIFY channel carrying snapshot
	// change announcements. Payload is the affected account key.
	NotifyChannel = "daybook_changes"

	// MaxPriority bounds the task priority score.
	MaxPriority = 10
)
