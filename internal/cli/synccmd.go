package cli

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type SyncCmd struct {
	Now    SyncNowCmd    `cmd:"" default:"1" help:"Push local state and pull the latest remote state."`
	Status SyncStatusCmd `cmd:"" help:"Show synchronization status."`
}

type SyncNowCmd struct{}

func (c *SyncNowCmd) Run(ctx *Context) error {
	if ctx.Sync == nil {
		return errors.New("no remote configured; run 'daybook init' to set one up")
	}

	runCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctx.Sync.ForceSync(runCtx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("Synced account %q at version %d\n", ctx.AccountKey, ctx.Store.Version())
	return nil
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *Context) error {
	snap := ctx.Store.Snapshot()
	fmt.Printf("Account:  %s\n", ctx.AccountKey)
	fmt.Printf("Version:  %d\n", snap.Version)
	fmt.Printf("Entities: %d\n", snap.EntityCount())
	if ctx.Sync == nil {
		fmt.Println("Remote:   not configured")
		return nil
	}
	fmt.Printf("Remote:   %s\n", ctx.Sync.State())
	return nil
}
