package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode specifies where backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file's path to name its sidecar backup.
const BackupSuffix = ".srcfix.bak"

// BackupPath returns the backup location for path, or "" for BackupModeNone.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// Backup saves the snapshotted content of a file before it is rewritten.
// An existing backup is never overwritten, so repeated runs keep the
// oldest original. It reports whether a backup was written.
func Backup(ctx context.Context, snap *Snapshot, original string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(snap.Path, mode)
	if backupPath == "" {
		return false, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, []byte(original), snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Restore copies a file's backup back over it. It reports false when no
// backup exists.
func Restore(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	stat, err := os.Stat(backupPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}

// RemoveBackup deletes the backup for path. It reports false if none existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}
	if err := os.Remove(backupPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
