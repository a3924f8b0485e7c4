package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/gitfolio/internal/models"

	_ "modernc.org/sqlite"
)

// Preference keys
const (
	PrefTheme    = "theme"
	PrefLastUser = "last_user"
)

// timestampFormat sorts lexically in time order.
const timestampFormat = "2006-01-02T15:04:05.000000000Z"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createPreferencesTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create preferences schema: %w", err)
	}

	if _, err := conn.Exec(createRecentUsersTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create recent users schema: %w", err)
	}

	return &DB{conn: conn, now: time.Now}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// =============================================================================
// Preferences
// =============================================================================

// SetPreference saves a preference
func (db *DB) SetPreference(key, value string) error {
	_, err := db.conn.Exec(upsertPreference, key, value)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// GetPreference returns a preference, or "" when it was never set
func (db *DB) GetPreference(key string) (string, error) {
	var value string
	err := db.conn.QueryRow(selectPreference, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, nil
}

// DeletePreference removes a preference
func (db *DB) DeletePreference(key string) error {
	_, err := db.conn.Exec(deletePreference, key)
	if err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

// Theme returns the saved theme. ok is false when none is saved or the
// stored value is not a known theme.
func (db *DB) Theme() (theme models.Theme, ok bool, err error) {
	v, err := db.GetPreference(PrefTheme)
	if err != nil || v == "" {
		return "", false, err
	}
	theme, perr := models.ParseTheme(v)
	if perr != nil {
		return "", false, nil
	}
	return theme, true, nil
}

// SaveTheme persists the theme
func (db *DB) SaveTheme(theme models.Theme) error {
	return db.SetPreference(PrefTheme, string(theme))
}

// LastUser returns the most recently loaded username
func (db *DB) LastUser() (string, error) {
	return db.GetPreference(PrefLastUser)
}

// =============================================================================
// Recent users
// =============================================================================

// RecordRecentUser moves login to the top of the history and remembers it
// as the last user
func (db *DB) RecordRecentUser(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertRecentUser, login, db.now().UTC().Format(timestampFormat)); err != nil {
		return fmt.Errorf("failed to record recent user: %w", err)
	}
	if _, err := tx.Exec(upsertPreference, PrefLastUser, login); err != nil {
		return fmt.Errorf("failed to save last user: %w", err)
	}

	return tx.Commit()
}

// RecentUsers returns up to limit users, most recent first
func (db *DB) RecentUsers(limit int) ([]models.RecentUser, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.conn.Query(selectRecentUsers, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent users: %w", err)
	}
	defer rows.Close()

	var users []models.RecentUser
	for rows.Next() {
		var u models.RecentUser
		var loadedAt string
		if err := rows.Scan(&u.Login, &loadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent user: %w", err)
		}
		u.LoadedAt, _ = parseTimestamp(loadedAt)
		users = append(users, u)
	}

	return users, rows.Err()
}

// ForgetRecentUser removes login from the history
func (db *DB) ForgetRecentUser(login string) error {
	_, err := db.conn.Exec(deleteRecentUser, login)
	if err != nil {
		return fmt.Errorf("failed to delete recent user: %w", err)
	}
	return nil
}

// parseTimestamp parses a timestamp string in various formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		timestampFormat,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
