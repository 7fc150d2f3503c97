package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// KeepBackups is how many copies 'config init --force' leaves behind.
const KeepBackups = 3

// backupStamp sorts lexically in time order.
const backupStamp = "20060102T150405.000000"

// BackupUserConfig snapshots the user config to <config>.bak.<stamp> before
// it is rewritten, then prunes all but the newest KeepBackups. It returns ""
// and no error when there is nothing to back up.
func BackupUserConfig() (string, error) {
	src := GetUserConfigPath()
	info, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat config: %w", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read config for backup: %w", err)
	}
	dst := src + ".bak." + time.Now().UTC().Format(backupStamp)
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write config backup: %w", err)
	}

	if err := pruneBackups(KeepBackups); err != nil {
		slog.Debug("config backup prune failed", slog.String("error", err.Error()))
	}
	return dst, nil
}

// ListUserConfigBackups returns the user config backups, newest first.
func ListUserConfigBackups() ([]string, error) {
	// Glob only fails on a malformed pattern; a missing directory is no match.
	backups, err := filepath.Glob(GetUserConfigPath() + ".bak.*")
	if err != nil {
		return nil, err
	}
	slices.Sort(backups)
	slices.Reverse(backups)
	return backups, nil
}

func pruneBackups(keep int) error {
	backups, err := ListUserConfigBackups()
	if err != nil || len(backups) <= keep {
		return err
	}
	var errs []error
	for _, old := range backups[keep:] {
		if err := os.Remove(old); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
