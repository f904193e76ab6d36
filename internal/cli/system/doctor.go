package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/averyquinn/daybook/internal/cli"
	"github.com/averyquinn/daybook/internal/constants"
	"github.com/averyquinn/daybook/internal/keyring"
	"github.com/averyquinn/daybook/internal/sync"
	"github.com/averyquinn/daybook/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: local storage reachable
	if err := checkStorage(ctx); err != nil {
		fmt.Printf("❌ Local storage: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local storage: OK (%s, version %d)\n", ctx.DataPath, ctx.Store.Version())
	}

	// Check 2: exclusive writer
	if others, err := otherInstances(); err != nil {
		fmt.Printf("⚠ Exclusive writer: WARNING\n")
		fmt.Printf("   Could not enumerate processes: %v\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Exclusive writer: WARNING\n")
		fmt.Printf("   Other %s process(es) running (pid %s); concurrent writers to one account are not supported\n",
			constants.AppName, joinPids(others))
	} else {
		fmt.Printf("✓ Exclusive writer: OK\n")
	}

	// Check 3: habit ledger integrity
	if err := checkLedgers(ctx); err != nil {
		fmt.Printf("❌ Habit ledgers: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Habit ledgers: OK\n")
	}

	// Check 4: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 5: keyring
	keyringOK := keyring.Available()
	if keyringOK {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; cloud sync cannot read its connection string\n")
	}

	// Check 6: remote reachable (only when one is configured)
	if keyringOK {
		if err := checkRemote(ctx); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Printf("⊘ Remote: SKIPPED (not configured)\n")
			} else {
				fmt.Printf("❌ Remote: FAIL\n")
				fmt.Printf("   Error: %v\n", err)
				hasError = true
			}
		} else {
			fmt.Printf("✓ Remote: OK\n")
		}
	} else {
		fmt.Printf("⊘ Remote: SKIPPED (keyring unavailable)\n")
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkStorage(ctx *cli.Context) error {
	if ctx.Provider == nil {
		return errors.New("no storage provider")
	}
	_, err := ctx.Provider.Load(ctx.AccountKey)
	return err
}

func checkLedgers(ctx *cli.Context) error {
	for _, habit := range ctx.Store.GetHabits() {
		seen := map[string]bool{}
		for _, day := range habit.CompletionLog {
			if _, err := utils.ParseDay(day); err != nil {
				return fmt.Errorf("habit %q has malformed day %q", habit.Name, day)
			}
			if seen[day] {
				return fmt.Errorf("habit %q has duplicate day %q", habit.Name, day)
			}
			seen[day] = true
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reads %s; streaks and sync versions depend on a sane clock", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("invalid local timezone: %w", err)
	}
	return nil
}

func checkRemote(ctx *cli.Context) error {
	connStr, err := keyring.GetRemote(ctx.AccountKey)
	if err != nil {
		return err
	}

	remote, err := sync.NewPostgresRemote(connStr)
	if err != nil {
		return err
	}
	defer remote.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return remote.Ping(pingCtx)
}

// otherInstances lists pids of other running processes with our executable
// name. One writer per account is the concurrency contract, so a second
// instance is worth flagging before it corrupts expectations.
func otherInstances() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == constants.AppName {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

func joinPids(pids []int) string {
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = fmt.Sprint(pid)
	}
	return strings.Join(parts, ", ")
}
