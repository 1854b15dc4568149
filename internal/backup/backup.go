// Package backup writes encrypted snapshots of the SQLite database to a
// local directory, on a schedule and on demand.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const snapshotSuffix = ".db.enc"

// Config holds backup manager configuration.
type Config struct {
	Enabled    bool
	Dir        string
	Passphrase string
	Interval   time.Duration
	Keep       int
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"lastBackup,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"inProgress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// Manager runs scheduled and on-demand snapshots of the database file.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	status   Status
	callback StatusCallback

	db     *sql.DB
	dbPath string
	logger *slog.Logger
}

// NewManager creates a backup manager. A missing passphrase disables it
// regardless of cfg.Enabled; snapshots are never written unencrypted.
func NewManager(cfg Config, db *sql.DB, dbPath string, callback StatusCallback, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		db:       db,
		dbPath:   dbPath,
		callback: callback,
		logger:   logger,
		status:   Status{State: StateDisabled},
	}
	if cfg.Enabled && cfg.Passphrase != "" {
		m.status.State = StateIdle
	}
	return m
}

// Enabled reports whether the manager will take snapshots.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.State != StateDisabled
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	if s.LastBackup == nil {
		s.LastBackup = m.status.LastBackup
	}
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

// beginSnapshot atomically claims the in-progress slot. Only one snapshot
// may run at a time; a second caller is refused rather than queued.
func (m *Manager) beginSnapshot() bool {
	m.mu.Lock()
	if m.status.InProgress {
		m.mu.Unlock()
		return false
	}
	s := Status{State: StateRunning, InProgress: true, LastBackup: m.status.LastBackup}
	m.status = s
	m.mu.Unlock()

	if m.callback != nil {
		m.callback(s)
	}
	return true
}

// Run takes snapshots every cfg.Interval until ctx is cancelled. It returns
// immediately when the manager is disabled.
func (m *Manager) Run(ctx context.Context) {
	if !m.Enabled() {
		return
	}

	interval := m.cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.SnapshotNow(ctx); err != nil {
				m.logger.Error("scheduled snapshot failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// SnapshotNow checkpoints the WAL, encrypts a copy of the database file, and
// writes it to the backup directory. Old snapshots beyond cfg.Keep are
// pruned. Returns the path of the snapshot written.
func (m *Manager) SnapshotNow(ctx context.Context) (string, error) {
	if !m.Enabled() {
		return "", fmt.Errorf("backups disabled: no passphrase configured")
	}

	if !m.beginSnapshot() {
		return "", fmt.Errorf("snapshot already in progress")
	}

	path, err := m.snapshot(ctx)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", err
	}

	if err := m.prune(); err != nil {
		m.logger.Warn("prune old snapshots", "error", err)
	}

	now := time.Now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now})
	m.logger.Info("snapshot written", "path", path)
	return path, nil
}

func (m *Manager) snapshot(ctx context.Context) (string, error) {
	// Fold the WAL into the main file so the copy is self-contained.
	if _, err := m.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("wal checkpoint: %w", err)
	}

	plaintext, err := os.ReadFile(m.dbPath)
	if err != nil {
		return "", fmt.Errorf("read database: %w", err)
	}

	encrypted, err := Encrypt(plaintext, m.cfg.Passphrase)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.cfg.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("pawtrail-%s%s", time.Now().UTC().Format("2006-01-02T150405Z"), snapshotSuffix)
	path := filepath.Join(m.cfg.Dir, name)
	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// prune deletes the oldest snapshots beyond cfg.Keep. Snapshot names embed
// their UTC timestamp, so lexical order is chronological order.
func (m *Manager) prune() error {
	keep := m.cfg.Keep
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), snapshotSuffix) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(m.cfg.Dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Restore decrypts the snapshot at path and writes the database to dst.
// The server must not be running against dst while restoring.
func Restore(path, dst, passphrase string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	plaintext, err := Decrypt(data, passphrase)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, plaintext, 0o600); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}
