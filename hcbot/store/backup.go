package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix    = "backup_"
	backupSuffix    = ".json"
	backupTimestamp = "20060102_150405"

	// DefaultBackupKeep is how many snapshots survive a prune.
	DefaultBackupKeep = 10
)

// Rotator writes timestamped snapshots of the record set and prunes the
// backup directory down to the newest keep files after every write.
type Rotator struct {
	dir  string
	keep int
}

func NewRotator(dir string, keep int) *Rotator {
	if keep <= 0 {
		keep = DefaultBackupKeep
	}
	return &Rotator{dir: dir, keep: keep}
}

// Snapshot writes data to backup_<timestamp>_<reason>.json and prunes.
// It reports success but never fails the caller: a bot that cannot
// snapshot still has to keep serving from memory.
func (r *Rotator) Snapshot(data []byte, reason string) bool {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		slog.Error("Failed to create backup directory",
			slog.String("type", "store"),
			slog.String("dir", r.dir),
			slog.Any("error", err))
		return false
	}

	name := fmt.Sprintf("%s%s_%s%s", backupPrefix, time.Now().UTC().Format(backupTimestamp), reason, backupSuffix)
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("Failed to write backup",
			slog.String("type", "store"),
			slog.String("file", name),
			slog.String("reason", reason),
			slog.Any("error", err))
		return false
	}

	slog.Debug("Backup written",
		slog.String("type", "store"),
		slog.String("file", name),
		slog.String("reason", reason))

	r.prune()
	return true
}

// prune deletes all but the newest keep backups. Names embed a sortable
// UTC timestamp, so descending name order is newest-first.
func (r *Rotator) prune() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		slog.Warn("Failed to list backup directory",
			slog.String("type", "store"),
			slog.Any("error", err))
		return
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			backups = append(backups, name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	for _, old := range backups[min(r.keep, len(backups)):] {
		if err := os.Remove(filepath.Join(r.dir, old)); err != nil {
			slog.Warn("Failed to prune backup",
				slog.String("type", "store"),
				slog.String("file", old),
				slog.Any("error", err))
		}
	}
}
