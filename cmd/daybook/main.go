package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/averyquinn/daybook/internal/cli"
	"github.com/averyquinn/daybook/internal/cli/system"
	"github.com/averyquinn/daybook/internal/constants"
	apperrors "github.com/averyquinn/daybook/internal/errors"
	"github.com/averyquinn/daybook/internal/keyring"
	"github.com/averyquinn/daybook/internal/logger"
	"github.com/averyquinn/daybook/internal/storage"
	"github.com/averyquinn/daybook/internal/store"
	"github.com/averyquinn/daybook/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path." type:"string" default:"~/.config/daybook/daybook.db"`
	Account string `help:"Account key; each account has its own snapshot." default:"default"`
	Remote  string `help:"PostgreSQL connection string for cloud sync (overrides the keyring)."`
	Offline bool   `help:"Skip cloud sync for this invocation."`
	Debug   bool   `help:"Enable debug logging."`

	Init      system.InitCmd   `cmd:"" help:"Set up the account and optional cloud sync."`
	Doctor    system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	RemoteCfg system.RemoteCmd `cmd:"" name:"remote" help:"Manage the cloud sync connection string."`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits and habit tracking."`
	Task      cli.TaskCmd      `cmd:"" help:"Manage tasks."`
	Project   cli.ProjectCmd   `cmd:"" help:"Manage projects."`
	Note      cli.NoteCmd      `cmd:"" help:"Manage notes."`
	Sync      cli.SyncCmd      `cmd:"" help:"Synchronize with the configured remote."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first habit, task, and note tracker with cloud sync"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dataPath := expandHome(CLI.Config)
	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug,
		DataDir: filepath.Dir(dataPath),
	}); err != nil {
		apperrors.Fatal(err)
	}

	provider := storage.Open(dataPath)
	st := store.New(CLI.Account, provider)
	if err := st.LoadLocal(); err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		AccountKey: CLI.Account,
		DataPath:   dataPath,
		Store:      st,
		Provider:   provider,
	}
	defer appCtx.FlushSync()

	// Commands that manage the remote run without a live sync client.
	selected := strings.Split(ctx.Command(), " ")[0]
	if !CLI.Offline && selected != "init" && selected != "doctor" && selected != "remote" {
		if client := connectSync(st); client != nil {
			appCtx.Sync = client
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		appCtx.FlushSync()
		apperrors.Fatal(err)
	}
}

// connectSync builds the sync client when a remote is configured, via the
// --remote flag or the OS keyring. Unreachable remotes are not fatal; the
// client starts offline and the command proceeds on local data.
func connectSync(st *store.Store) *sync.Client {
	connStr := CLI.Remote
	if connStr == "" {
		var err error
		connStr, err = keyring.GetRemote(CLI.Account)
		if err != nil {
			if !errors.Is(err, keyring.ErrNotFound) {
				logger.Warn("keyring lookup failed", "error", err)
			}
			return nil
		}
	}

	remote, err := sync.NewPostgresRemote(connStr)
	if err != nil {
		logger.Warn("invalid remote connection string", "error", err)
		return nil
	}

	client := sync.NewClient(remote, st, constants.PushDebounceMs*time.Millisecond)
	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Start(startCtx); err != nil {
		logger.Warn("sync startup failed", "error", err)
	}
	return client
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
