package portfolio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/gitfolio/internal/models"
)

func sampleList() []models.Repository {
	ts := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	return []models.Repository{
		{Name: "zeta", Description: "CLI tooling in Go", Language: "Go", StargazersCount: 5, ForksCount: 1, UpdatedAt: ts(3), CreatedAt: ts(1)},
		{Name: "Alpha", Description: "Web app", Language: "JavaScript", StargazersCount: 50, ForksCount: 3, UpdatedAt: ts(1), CreatedAt: ts(5)},
		{Name: "beta", Description: "", Language: "", StargazersCount: 5, ForksCount: 9, UpdatedAt: ts(9), CreatedAt: ts(2)},
		{Name: "gamma-go", Description: "Parsers", Language: "go", StargazersCount: 0, ForksCount: 0, UpdatedAt: ts(2), CreatedAt: ts(9)},
		{Name: "ui-kit", Description: "Nothing to see", Language: "React", StargazersCount: 12, ForksCount: 2, UpdatedAt: ts(4), CreatedAt: ts(3)},
	}
}

func names(list []models.Repository) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Name
	}
	return out
}

func TestSearchContainment(t *testing.T) {
	list := sampleList()
	for _, term := range []string{"go", "GO", "web", "a", "zzz", "parsers"} {
		t.Run(term, func(t *testing.T) {
			for _, r := range Search(list, term, false) {
				hit := strings.Contains(strings.ToLower(r.Name), strings.ToLower(term)) ||
					strings.Contains(strings.ToLower(r.Description), strings.ToLower(term))
				assert.True(t, hit, "%s does not contain %q", r.Name, term)
			}
		})
	}
}

func TestSearchEmptyTermIsPassThrough(t *testing.T) {
	list := sampleList()
	got := Search(list, "   ", false)
	assert.Equal(t, names(list), names(got))

	got[0].Name = "mutated"
	assert.Equal(t, "zeta", list[0].Name, "search must not alias its input")
}

func TestSearchLanguageMode(t *testing.T) {
	list := sampleList()

	assert.Empty(t, Search(list, "react", false), "description-only search ignores language")
	assert.Equal(t, []string{"ui-kit"}, names(Search(list, "react", true)))
}

func TestFilterEquality(t *testing.T) {
	list := sampleList()

	got := Filter(list, "GO")
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "go", strings.ToLower(r.Language))
	}

	assert.Len(t, Filter(list, models.FilterAll), len(list))
	assert.Len(t, Filter(list, ""), len(list))
	assert.Empty(t, Filter(list, "Rust"))
}

func TestSortOrder(t *testing.T) {
	list := sampleList()

	tests := []struct {
		key  models.SortKey
		want []string
	}{
		// equal star counts keep input order
		{models.SortStars, []string{"Alpha", "ui-kit", "zeta", "beta", "gamma-go"}},
		{models.SortForks, []string{"beta", "Alpha", "ui-kit", "zeta", "gamma-go"}},
		{models.SortUpdated, []string{"beta", "ui-kit", "zeta", "gamma-go", "Alpha"}},
		{models.SortCreated, []string{"gamma-go", "Alpha", "ui-kit", "beta", "zeta"}},
		{models.SortName, []string{"Alpha", "beta", "gamma-go", "ui-kit", "zeta"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, names(Sort(list, tt.key)))
		})
	}

	sorted := Sort(list, models.SortStars)
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].StargazersCount, sorted[i].StargazersCount)
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	list := sampleList()
	vs := models.ViewState{SearchTerm: "go", Filter: "go", Sort: models.SortName}

	first := Apply(list, vs, false)
	// Changing settings and coming back yields the same view.
	_ = Apply(list, models.ViewState{SearchTerm: "web", Filter: models.FilterAll, Sort: models.SortStars}, false)
	second := Apply(list, vs, false)

	assert.Equal(t, names(first), names(second))
	assert.Equal(t, []string{"gamma-go", "zeta"}, names(first))
}

func TestLanguagesAndStats(t *testing.T) {
	list := sampleList()

	assert.Equal(t, []string{"Go", "JavaScript", "React", "go"}, Languages(list))

	stats := ComputeStats(list)
	assert.Equal(t, models.Stats{Repositories: 5, Stars: 72, Forks: 15, Languages: 4}, stats)

	assert.Equal(t, models.Stats{}, ComputeStats(nil))
}

func TestNormalize(t *testing.T) {
	list := sampleList()
	list[0].Fork = true

	all := Normalize("octocat", list, NormalizeOptions{Cover: CoverSocial})
	require.Len(t, all, len(list))
	assert.Equal(t, "https://opengraph.githubassets.com/1/octocat/zeta", all[0].ImageURL)
	assert.Empty(t, list[0].ImageURL, "normalize must not modify its input")

	trimmed := Normalize("octocat", list, NormalizeOptions{HideForksAndUndescribed: true, Cover: CoverPalette})
	assert.Equal(t, []string{"Alpha", "gamma-go", "ui-kit"}, names(trimmed))
	assert.Equal(t, coverPalette[0], trimmed[0].ImageURL)
	assert.Equal(t, coverPalette[1], trimmed[1].ImageURL)
}

func TestFormatting(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 15, 2024", FormatDate(ts))
	assert.Equal(t, "January 2024", FormatJoinDate(ts))
	assert.Equal(t, "unknown", FormatDate(time.Time{}))
	assert.Equal(t, "1,234", FormatCount(1234))
	assert.Contains(t, FormatRelative(time.Now().Add(-72*time.Hour)), "days ago")
}
