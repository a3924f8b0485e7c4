package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/gitfolio/internal/models"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "gitfolio.db")
	d, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d, path
}

func TestThemePersistsAcrossOpen(t *testing.T) {
	d, path := openTestDB(t)

	_, ok, err := d.Theme()
	require.NoError(t, err)
	assert.False(t, ok, "no theme saved yet")

	require.NoError(t, d.SaveTheme(models.ThemeLight))
	require.NoError(t, d.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	theme, ok, err := reopened.Theme()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.ThemeLight, theme)
}

func TestInvalidThemeIgnored(t *testing.T) {
	d, _ := openTestDB(t)
	require.NoError(t, d.SetPreference(PrefTheme, "neon"))

	_, ok, err := d.Theme()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreferences(t *testing.T) {
	d, _ := openTestDB(t)

	v, err := d.GetPreference("missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, d.SetPreference("k", "one"))
	require.NoError(t, d.SetPreference("k", "two"))
	v, err = d.GetPreference("k")
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	require.NoError(t, d.DeletePreference("k"))
	v, err = d.GetPreference("k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRecentUsers(t *testing.T) {
	d, _ := openTestDB(t)

	clock := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	for _, login := range []string{"alice", "bob", "carol", "Alice"} {
		require.NoError(t, d.RecordRecentUser(login))
	}
	require.NoError(t, d.RecordRecentUser("  "))

	users, err := d.RecentUsers(10)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Alice", users[0].Login)
	assert.Equal(t, "carol", users[1].Login)
	assert.Equal(t, "bob", users[2].Login)
	assert.Equal(t, time.Date(2024, time.March, 1, 9, 4, 0, 0, time.UTC), users[0].LoadedAt)

	last, err := d.LastUser()
	require.NoError(t, err)
	assert.Equal(t, "Alice", last)

	limited, err := d.RecentUsers(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	require.NoError(t, d.ForgetRecentUser("bob"))
	users, err = d.RecentUsers(10)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
