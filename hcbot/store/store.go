package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	json "github.com/goccy/go-json"
)

const (
	// flushDelay lets a burst of updates coalesce into one disk write.
	flushDelay = time.Second

	// autosaveInterval matches the periodic safety save the bot has
	// always done, independent of update traffic.
	autosaveInterval = 15 * time.Minute
)

// Store owns the in-memory record set and its single backing file. All
// public operations are safe for concurrent use and none of them ever
// returns an error: unknown keys materialize schema defaults, corrupt
// or unwritable files degrade to logged, in-memory-only operation.
//
// Durability is eventual. Updates mutate the in-memory state first
// (reads immediately observe them) and enqueue a coalesced flush that a
// background worker persists via Run.
type Store struct {
	path    string
	rotator *Rotator

	mu   sync.RWMutex
	data RecordSet

	flushCh chan struct{}
}

func New(path, backupDir string, backupKeep int) *Store {
	return &Store{
		path:    path,
		rotator: NewRotator(backupDir, backupKeep),
		flushCh: make(chan struct{}, 1),
	}
}

// Open loads the record set from disk. It must be called before any
// other operation. A missing file starts fresh from schema defaults and
// a malformed file is snapshotted for diagnosis and replaced by
// defaults; only an unusable backing location (unreadable file,
// uncreatable directory) is reported as an error.
func (s *Store) Open() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("No record file found, starting fresh",
			slog.String("type", "store"),
			slog.String("path", s.path))
		s.data = DefaultRecordSet(time.Now())
	case err != nil:
		return fmt.Errorf("failed to read record file: %w", err)
	default:
		s.data = s.decode(raw)
	}
	return nil
}

// decode parses raw into a record set and reconciles it against the
// current schema defaults, so keys added since the file was written
// always exist. Parse failures never propagate: the corrupt bytes are
// kept as a diagnostic backup and defaults take over.
func (s *Store) decode(raw []byte) RecordSet {
	defaults := DefaultRecordSet(time.Now())

	var loaded RecordSet
	if err := json.Unmarshal(raw, &loaded); err != nil {
		slog.Error("Record file is corrupted, falling back to defaults",
			slog.String("type", "store"),
			slog.String("path", s.path),
			slog.Any("error", err))
		s.rotator.Snapshot(raw, "corrupted_recovery")
		return defaults
	}

	if loaded.Metadata == nil {
		loaded.Metadata = map[string]any{}
	}
	loaded.Metadata = mergeDefaults(defaults.Metadata, loaded.Metadata)

	if loaded.Statistics == nil {
		loaded.Statistics = map[string]int64{}
	}
	for name, zero := range defaults.Statistics {
		if _, ok := loaded.Statistics[name]; !ok {
			loaded.Statistics[name] = zero
		}
	}

	if loaded.Servers == nil {
		loaded.Servers = map[string]map[string]any{}
	}
	for key, doc := range loaded.Servers {
		loaded.Servers[key] = mergeDefaults(DefaultGuildConfig(), doc)
	}

	if loaded.Users == nil {
		loaded.Users = map[string]map[string]any{}
	}
	for key, doc := range loaded.Users {
		loaded.Users[key] = mergeDefaults(DefaultUserRecord(), doc)
	}

	return loaded
}

// UserKey is the composite key user records are stored under.
func UserKey(guildID, userID snowflake.ID) string {
	return fmt.Sprintf("%s_%s", guildID, userID)
}

// GuildConfig returns the guild's configuration, creating and
// persisting schema defaults on first access.
func (s *Store) GuildConfig(guildID snowflake.ID) GuildConfig {
	key := guildID.String()

	s.mu.Lock()
	doc, ok := s.data.Servers[key]
	if !ok {
		doc = DefaultGuildConfig()
		s.data.Servers[key] = doc
	}
	cfg := decodeGuildConfig(doc)
	s.mu.Unlock()

	if !ok {
		s.Save()
	}
	return cfg
}

// UserRecord returns the record for (guild, user), creating and
// persisting schema defaults on first access.
func (s *Store) UserRecord(guildID, userID snowflake.ID) UserRecord {
	key := UserKey(guildID, userID)

	s.mu.Lock()
	doc, ok := s.data.Users[key]
	if !ok {
		doc = DefaultUserRecord()
		s.data.Users[key] = doc
	}
	rec := decodeUserRecord(doc)
	s.mu.Unlock()

	if !ok {
		s.Save()
	}
	return rec
}

// UpdateGuildConfig deep-merges partial into the guild's document and
// enqueues a flush. Map-typed fields merge key by key, everything else
// is replaced; the update side always wins at the leaves.
func (s *Store) UpdateGuildConfig(guildID snowflake.ID, partial map[string]any) {
	key := guildID.String()

	s.mu.Lock()
	doc, ok := s.data.Servers[key]
	if !ok {
		doc = DefaultGuildConfig()
		s.data.Servers[key] = doc
	}
	deepMerge(doc, partial)
	s.mu.Unlock()

	s.Save()
}

// UpdateUserRecord is the user-record counterpart of UpdateGuildConfig.
func (s *Store) UpdateUserRecord(guildID, userID snowflake.ID, partial map[string]any) {
	key := UserKey(guildID, userID)

	s.mu.Lock()
	doc, ok := s.data.Users[key]
	if !ok {
		doc = DefaultUserRecord()
		s.data.Users[key] = doc
	}
	deepMerge(doc, partial)
	s.mu.Unlock()

	s.Save()
}

// IncrementStat bumps a global counter. Unknown names are created.
func (s *Store) IncrementStat(name string, delta int64) {
	s.mu.Lock()
	s.data.Statistics[name] += delta
	s.mu.Unlock()

	s.Save()
}

// Stats returns a copy of the global counters.
func (s *Store) Stats() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64, len(s.data.Statistics))
	for name, value := range s.data.Statistics {
		out[name] = value
	}
	return out
}

// Counts reports how many guilds and user records the store holds.
func (s *Store) Counts() (guilds, users int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Servers), len(s.data.Users)
}

// RankedUser pairs a user id with its record for ranking output.
type RankedUser struct {
	UserID snowflake.ID
	Record UserRecord
}

// TopByTotalXP returns the guild's users ordered by total XP, capped at
// limit. Records whose key does not parse are skipped rather than
// failing the listing (orphaned records must not crash consumers).
func (s *Store) TopByTotalXP(guildID snowflake.ID, limit int) []RankedUser {
	prefix := guildID.String() + "_"

	s.mu.RLock()
	ranked := make([]RankedUser, 0, len(s.data.Users))
	for key, doc := range s.data.Users {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		id, err := snowflake.Parse(strings.TrimPrefix(key, prefix))
		if err != nil {
			continue
		}
		ranked = append(ranked, RankedUser{UserID: id, Record: decodeUserRecord(doc)})
	}
	s.mu.RUnlock()

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Record.Leveling.TotalXP > ranked[j].Record.Leveling.TotalXP
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Save enqueues a flush. The channel holds at most one pending request,
// so a burst of updates collapses into a single disk write.
func (s *Store) Save() {
	select {
	case s.flushCh <- struct{}{}:
	default:
	}
}

// Run services flush requests and the periodic autosave until ctx is
// cancelled, then performs a final flush. Intended to run on its own
// goroutine for the lifetime of the process.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(autosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Flush()
			return
		case <-s.flushCh:
			delay := time.NewTimer(flushDelay)
			select {
			case <-delay.C:
			case <-ctx.Done():
				delay.Stop()
			}
			s.Flush()
			if ctx.Err() != nil {
				return
			}
		case <-ticker.C:
			s.Flush()
		}
	}
}

// Flush persists the record set synchronously: pre-image snapshot via
// the rotator first, then an atomic tmp-write-sync-rename of the
// primary file. Any failure degrades to a logged, best-effort emergency
// dump; it never surfaces to callers.
func (s *Store) Flush() {
	s.mu.RLock()
	preImage, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		slog.Error("Failed to serialize record set",
			slog.String("type", "store"),
			slog.Any("error", err))
		return
	}

	if s.rotator.Snapshot(preImage, "auto_save") {
		s.mu.Lock()
		s.data.Metadata["last_backup"] = time.Now().UTC().Format(backupTimestamp)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.data.Metadata["last_updated"] = time.Now().UTC().Format(time.RFC3339)
	s.data.Metadata["total_servers"] = len(s.data.Servers)
	s.data.Metadata["total_users"] = len(s.data.Users)
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.Unlock()
	if err != nil {
		slog.Error("Failed to serialize record set",
			slog.String("type", "store"),
			slog.Any("error", err))
		return
	}

	if err := atomicWrite(s.path, raw); err != nil {
		slog.Error("Failed to write record file, attempting emergency dump",
			slog.String("type", "store"),
			slog.String("path", s.path),
			slog.Any("error", err))
		s.emergencyDump(raw)
		return
	}

	slog.Debug("Record set persisted",
		slog.String("type", "store"),
		slog.Int("bytes", len(raw)))
}

// atomicWrite writes data next to path and renames it into place, so a
// crash mid-write can never leave a truncated primary file behind.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

func (s *Store) emergencyDump(raw []byte) {
	emergency := s.path + ".emergency"
	if err := os.WriteFile(emergency, raw, 0o644); err != nil {
		slog.Error("Emergency dump failed, state is memory-only",
			slog.String("type", "store"),
			slog.String("path", emergency),
			slog.Any("error", err))
		return
	}
	slog.Warn("Emergency dump written",
		slog.String("type", "store"),
		slog.String("path", emergency))
}
