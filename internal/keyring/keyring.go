// Package keyring stores the remote document-store connection string in
// the OS keyring, scoped per account key, so credentials never land in
// config files or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/averyquinn/daybook/internal/constants"
	"github.com/averyquinn/daybook/internal/logger"
)

var (
	// ErrNotFound is returned when no connection string is stored for the
	// account.
	ErrNotFound = errors.New("remote connection not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached.
	ErrUnavailable = errors.New("OS keyring is not available")
)

func user(accountKey string) string {
	return constants.KeyringRemoteUser + ":" + accountKey
}

// GetRemote retrieves the remote connection string for an account.
func GetRemote(accountKey string) (string, error) {
	v, err := keyring.Get(constants.AppName, user(accountKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, nil
}

// SetRemote stores the remote connection string for an account.
func SetRemote(accountKey, connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user(accountKey), connStr); err != nil {
		return fmt.Errorf("failed to store remote connection: %w", err)
	}
	return nil
}

// DeleteRemote removes the stored connection string for an account.
func DeleteRemote(accountKey string) error {
	err := keyring.Delete(constants.AppName, user(accountKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete remote connection: %w", err)
	}
	return nil
}

// Available reports whether the OS keyring can actually store a secret.
// A write-then-delete round trip on a probe key is the only honest check:
// a read-only probe misreports backends that can answer Get but refuse
// writes (or are locked pending a prompt).
func Available() bool {
	const probe = "availability-probe"
	if err := keyring.Set(constants.AppName, probe, "ok"); err != nil {
		return false
	}
	if err := keyring.Delete(constants.AppName, probe); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("failed to remove keyring probe entry", "error", err)
	}
	return true
}
