package system

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/averyquinn/daybook/internal/cli"
	"github.com/averyquinn/daybook/internal/keyring"
	"github.com/averyquinn/daybook/internal/sync"
)

type InitCmd struct {
	Email   string `help:"Account email (skips the prompt)."`
	Name    string `help:"Display name (skips the prompt)."`
	Remote  string `help:"PostgreSQL connection string for cloud sync (skips the prompt)."`
	NoSync  bool   `help:"Set up a local-only account without a remote."`
	Replace bool   `help:"Overwrite an existing remote connection string in the keyring."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	email := c.Email
	name := c.Name
	remote := c.Remote

	if email == "" || (remote == "" && !c.NoSync) {
		fields := []huh.Field{}
		if email == "" {
			fields = append(fields, huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("not an email address")
					}
					return nil
				}))
		}
		if name == "" {
			fields = append(fields, huh.NewInput().
				Title("Display name").
				Value(&name))
		}
		if remote == "" && !c.NoSync {
			fields = append(fields, huh.NewInput().
				Title("Remote connection string (leave empty for local-only)").
				Value(&remote))
		}
		form := huh.NewForm(huh.NewGroup(fields...))
		if err := form.Run(); err != nil {
			return fmt.Errorf("init cancelled: %w", err)
		}
	}

	account := ctx.Store.Account()
	account.Email = email
	account.DisplayName = name
	ctx.Store.SetAccount(account)
	fmt.Printf("Initialized account %q at %s\n", ctx.AccountKey, ctx.DataPath)

	if remote == "" || c.NoSync {
		fmt.Println("No remote configured; data stays on this device.")
		return nil
	}

	if !strings.HasPrefix(remote, "postgres://") && !strings.HasPrefix(remote, "postgresql://") {
		return fmt.Errorf("remote must be a postgres:// connection string")
	}

	if !c.Replace {
		if _, err := keyring.GetRemote(ctx.AccountKey); err == nil {
			return fmt.Errorf("a remote is already configured for %q; re-run with --replace to overwrite it", ctx.AccountKey)
		}
	}

	if err := verifyRemote(remote); err != nil {
		return fmt.Errorf("remote unreachable: %w", err)
	}

	if err := keyring.SetRemote(ctx.AccountKey, remote); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Remote verified and stored in the OS keyring")
	return nil
}

func verifyRemote(connStr string) error {
	remote, err := sync.NewPostgresRemote(connStr)
	if err != nil {
		return err
	}
	defer remote.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return remote.Ping(pingCtx)
}
