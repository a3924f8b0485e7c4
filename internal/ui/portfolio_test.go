package ui

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/gitfolio/internal/models"
	"github.com/thesavant42/gitfolio/internal/portfolio"
)

type memStore struct {
	theme  models.Theme
	recent []string
}

func (s *memStore) SaveTheme(theme models.Theme) error { s.theme = theme; return nil }

func (s *memStore) RecordRecentUser(login string) error {
	s.recent = append([]string{login}, s.recent...)
	return nil
}

func (s *memStore) RecentUsers(limit int) ([]models.RecentUser, error) {
	var out []models.RecentUser
	for _, l := range s.recent {
		out = append(out, models.RecentUser{Login: l, LoadedAt: time.Now()})
	}
	return out, nil
}

func (s *memStore) ForgetRecentUser(login string) error { return nil }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (PortfolioModel, *memStore) {
	t.Helper()
	store := &memStore{}
	m := NewPortfolioModel(Options{
		Store:        store,
		Theme:        models.ThemeDark,
		ViewState:    models.DefaultViewState(),
		ShareBaseURL: "https://gitfolio.dev/",
		ExportDir:    t.TempDir(),
	})
	m.screen = screenMain
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(PortfolioModel), store
}

func load(t *testing.T, m PortfolioModel, res portfolio.LoadResult) PortfolioModel {
	t.Helper()
	res.Generation = m.state.Begin()
	updated, _ := m.Update(loadDoneMsg{result: res})
	return updated.(PortfolioModel)
}

func press(m PortfolioModel, msgs ...tea.Msg) PortfolioModel {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(PortfolioModel)
	}
	return m
}

func TestLoadedPortfolioRendersCards(t *testing.T) {
	m, store := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{
		Username: "sampleuser",
		Repos:    portfolio.FallbackRepos(),
		Profile:  portfolio.FallbackProfile(),
		Notice:   "Loaded 3 repositories",
	})

	view := m.View()
	assert.Contains(t, view, "machine-learning-toolkit")
	assert.Contains(t, view, "Sample User")
	assert.Equal(t, []string{"sampleuser"}, store.recent)
	assert.Equal(t, "https://gitfolio.dev/?user=sampleuser", m.state.ShareURL)
}

func TestFallbackIsNotRecorded(t *testing.T) {
	m, store := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{
		Username: portfolio.FallbackUser,
		Repos:    portfolio.FallbackRepos(),
		Profile:  portfolio.FallbackProfile(),
		Fallback: true,
		Notice:   `User "ghost" not found. Showing sample data.`,
	})

	assert.Empty(t, store.recent)
	assert.Empty(t, m.state.ShareURL)
	assert.Equal(t, StatusWarning, m.StatusKind)
	assert.Contains(t, m.View(), "not found")
	assert.Len(t, m.state.View, 3)
}

func TestEmptyStateMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{
		Username: "empty",
		Profile:  &models.UserProfile{Login: "empty"},
		Err:      portfolio.ErrEmptyResult,
		Notice:   "No public repositories found",
	})

	assert.Contains(t, m.View(), "No projects found")
	assert.Equal(t, models.Stats{}, m.state.Stats)
}

func TestStaleLoadIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	stale := m.state.Begin()
	m = load(t, m, portfolio.LoadResult{Username: "fresh", Repos: portfolio.FallbackRepos()})

	m = press(m, loadDoneMsg{result: portfolio.LoadResult{Generation: stale, Username: "stale"}})
	assert.Equal(t, "fresh", m.state.Username)
}

func TestSearchIsDebounced(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{Username: "u", Repos: portfolio.FallbackRepos()})

	m = press(m, keyRunes("/"), keyRunes("rea"), keyRunes("ct"))
	assert.True(t, m.searching)
	assert.Len(t, m.state.View, 3, "search waits for the debounce")

	// An expired timer from an earlier keystroke does nothing.
	m = press(m, debounceMsg{seq: m.debounce.seq - 1})
	assert.Len(t, m.state.View, 3)

	m = press(m, debounceMsg{seq: m.debounce.seq})
	assert.Equal(t, "react", m.state.Query.SearchTerm)
	require.Len(t, m.state.View, 1)
	assert.Equal(t, "react-components", m.state.View[0].Name)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
}

func TestFilterSortViewAndTheme(t *testing.T) {
	m, store := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{Username: "u", Repos: portfolio.FallbackRepos()})

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "JavaScript", m.state.Query.Filter)
	assert.Len(t, m.state.View, 1)

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, keyRunes("s"))
	assert.Equal(t, models.SortForks, m.state.Query.Sort)
	assert.Equal(t, "machine-learning-toolkit", m.state.View[0].Name)

	m = press(m, keyRunes("v"))
	assert.Equal(t, models.ViewList, m.state.Query.Mode)
	assert.Contains(t, m.View(), "Description")

	m = press(m, keyRunes("t"))
	assert.Equal(t, models.ThemeLight, m.theme)
	assert.Equal(t, models.ThemeLight, store.theme)
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{Username: "u", Repos: portfolio.FallbackRepos()})

	m = press(m, keyRunes("G"), keyRunes("l"), keyRunes("l"))
	assert.Equal(t, 2, m.cursor)
	m = press(m, keyRunes("g"), keyRunes("h"))
	assert.Equal(t, 0, m.cursor)
}

func TestShareAndReadmeScreens(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{Username: "octocat", Repos: portfolio.FallbackRepos(), Readme: portfolio.FallbackReadme()})

	m = press(m, keyRunes("x"))
	assert.Equal(t, screenShare, m.screen)
	assert.Contains(t, m.View(), "https://gitfolio.dev/?user=octocat")

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("r"))
	assert.Equal(t, screenReadme, m.screen)
	assert.Contains(t, m.View(), "sampleuser/sampleuser")

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMain, m.screen)
}

func TestUserInputRejectsInvalidName(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyRunes("u"))
	require.Equal(t, screenUser, m.screen)

	m = press(m, keyRunes("bad name"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenUser, m.screen)
	assert.Equal(t, StatusError, m.StatusKind)
	assert.False(t, m.loading)
}

func TestFallbackIsNotExported(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{
		Username: portfolio.FallbackUser,
		Repos:    portfolio.FallbackRepos(),
		Fallback: true,
		Notice:   "Error loading profile. Showing sample data.",
	})

	updated, cmd := m.Update(keyRunes("e"))
	m = updated.(PortfolioModel)

	assert.Nil(t, cmd)
	assert.Equal(t, StatusWarning, m.StatusKind)
	assert.Contains(t, m.StatusMsg, "cannot be exported")
	entries, err := os.ReadDir(m.opts.ExportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportWritesMarkdown(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m, portfolio.LoadResult{Username: "octocat", Repos: portfolio.FallbackRepos()})

	_, cmd := m.Update(keyRunes("e"))
	require.NotNil(t, cmd)
	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.FileExists(t, done.path)
}
