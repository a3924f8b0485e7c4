package db

const createPreferencesTable = `
CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const createRecentUsersTable = `
CREATE TABLE IF NOT EXISTS recent_users (
    login TEXT PRIMARY KEY COLLATE NOCASE,
    loaded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_recent_users_loaded ON recent_users(loaded_at DESC);
`

const upsertPreference = `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`

const selectPreference = `
SELECT value FROM preferences WHERE key = ?
`

const deletePreference = `
DELETE FROM preferences WHERE key = ?
`

const upsertRecentUser = `
INSERT INTO recent_users (login, loaded_at) VALUES (?, ?)
ON CONFLICT(login) DO UPDATE SET login = excluded.login, loaded_at = excluded.loaded_at
`

const selectRecentUsers = `
SELECT login, loaded_at FROM recent_users
ORDER BY loaded_at DESC
LIMIT ?
`

const deleteRecentUser = `
DELETE FROM recent_users WHERE login = ?
`
