package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/gitfolio/internal/models"
)

func TestReplaceDiscardsStaleGeneration(t *testing.T) {
	s := NewState(models.DefaultViewState(), false)

	first := s.Begin()
	second := s.Begin()

	stale := LoadResult{Generation: first, Username: "slow", Repos: FallbackRepos()}
	fresh := LoadResult{Generation: second, Username: "fast", Repos: sampleList()}

	// The newer request completes first, then the older one arrives late.
	require.True(t, s.Replace(fresh))
	assert.False(t, s.Replace(stale))

	assert.Equal(t, "fast", s.Username)
	assert.Len(t, s.Full, len(sampleList()))
}

func TestStateQueryChanges(t *testing.T) {
	s := NewState(models.ViewState{}, false)
	gen := s.Begin()
	require.True(t, s.Replace(LoadResult{Generation: gen, Username: "u", Repos: sampleList()}))

	assert.Equal(t, "Alpha", s.View[0].Name, "default sort is stars")

	s.SetSearch("go")
	assert.Equal(t, []string{"zeta", "gamma-go"}, names(s.View))

	s.SetSort(models.SortName)
	assert.Equal(t, []string{"gamma-go", "zeta"}, names(s.View))

	s.SetFilter("JavaScript")
	assert.Empty(t, s.View)
	assert.ErrorIs(t, s.Err(), ErrEmptyResult)

	s.SetSearch("")
	assert.Equal(t, []string{"Alpha"}, names(s.View))
	assert.Len(t, s.Full, 5, "the full list is never modified by queries")
}

func TestCycleFilterAndSort(t *testing.T) {
	s := NewState(models.DefaultViewState(), false)
	gen := s.Begin()
	require.True(t, s.Replace(LoadResult{Generation: gen, Repos: FallbackRepos()}))

	assert.Equal(t, []string{"all", "JavaScript", "Python", "TypeScript"}, s.FilterOptions())
	assert.Equal(t, "JavaScript", s.CycleFilter(1))
	assert.Equal(t, "all", s.CycleFilter(-1))
	assert.Equal(t, "TypeScript", s.CycleFilter(-1))
	assert.Len(t, s.View, 1)

	assert.Equal(t, models.SortForks, s.CycleSort())
	assert.Equal(t, models.ViewList, s.ToggleViewMode())
}

func TestReplaceResetsMissingFilter(t *testing.T) {
	s := NewState(models.DefaultViewState(), false)
	require.True(t, s.Replace(LoadResult{Generation: s.Begin(), Repos: FallbackRepos()}))
	s.SetFilter("Python")

	require.True(t, s.Replace(LoadResult{Generation: s.Begin(), Repos: sampleList()}))
	assert.Equal(t, models.FilterAll, s.Query.Filter)
	assert.Len(t, s.View, 5)
}

func TestReplaceKeepsFilterInAnyCase(t *testing.T) {
	s := NewState(models.ViewState{Filter: "python"}, false)
	require.True(t, s.Replace(LoadResult{Generation: s.Begin(), Repos: FallbackRepos()}))

	assert.Equal(t, "python", s.Query.Filter)
	require.Len(t, s.View, 1)
	assert.Equal(t, "machine-learning-toolkit", s.View[0].Name)
}
