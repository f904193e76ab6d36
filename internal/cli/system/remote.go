package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/averyquinn/daybook/internal/cli"
	"github.com/averyquinn/daybook/internal/keyring"
)

// RemoteCmd manages the cloud sync connection string in the OS keyring.
type RemoteCmd struct {
	Set   RemoteSetCmd   `cmd:"" help:"Store a remote connection string for this account."`
	Show  RemoteShowCmd  `cmd:"" help:"Show whether a remote is configured."`
	Clear RemoteClearCmd `cmd:"" help:"Remove the remote connection string."`
}

type RemoteSetCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string."`
	NoCheck bool   `help:"Skip the reachability check."`
}

func (c *RemoteSetCmd) Run(ctx *cli.Context) error {
	if !strings.HasPrefix(c.ConnStr, "postgres://") && !strings.HasPrefix(c.ConnStr, "postgresql://") {
		return errors.New("remote must be a postgres:// connection string")
	}

	if !c.NoCheck {
		if err := verifyRemote(c.ConnStr); err != nil {
			return fmt.Errorf("remote unreachable (use --no-check to store anyway): %w", err)
		}
	}

	if err := keyring.SetRemote(ctx.AccountKey, c.ConnStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	fmt.Printf("✓ Remote stored for account %q\n", ctx.AccountKey)
	return nil
}

type RemoteShowCmd struct{}

func (c *RemoteShowCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetRemote(ctx.AccountKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("No remote configured for account %q.\n", ctx.AccountKey)
			return nil
		}
		return err
	}

	// Never print credentials; show the host part only.
	fmt.Printf("Remote configured for account %q: %s\n", ctx.AccountKey, redactConnStr(connStr))
	return nil
}

type RemoteClearCmd struct{}

func (c *RemoteClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteRemote(ctx.AccountKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("No remote configured for account %q.\n", ctx.AccountKey)
			return nil
		}
		return err
	}
	fmt.Printf("✓ Remote removed for account %q\n", ctx.AccountKey)
	return nil
}

func redactConnStr(connStr string) string {
	if at := strings.LastIndex(connStr, "@"); at >= 0 {
		if scheme := strings.Index(connStr, "://"); scheme >= 0 {
			return connStr[:scheme+3] + "***@" + connStr[at+1:]
		}
	}
	return connStr
}
