package portfolio

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/thesavant42/gitfolio/internal/models"
)

// Search keeps records whose name or description contains term, ignoring
// case. With includeLanguage the language is matched too. An empty term
// returns a copy of list.
func Search(list []models.Repository, term string, includeLanguage bool) []models.Repository {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(list)
	}

	out := make([]models.Repository, 0, len(list))
	for _, r := range list {
		if matches(r, term, includeLanguage) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Repository, term string, includeLanguage bool) bool {
	if strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	return includeLanguage && strings.Contains(strings.ToLower(r.Language), term)
}

// Filter keeps records whose language equals lang, ignoring case. "all" and
// "" keep everything.
func Filter(list []models.Repository, lang string) []models.Repository {
	if lang == "" || strings.EqualFold(lang, models.FilterAll) {
		return slices.Clone(list)
	}

	out := make([]models.Repository, 0, len(list))
	for _, r := range list {
		if strings.EqualFold(r.Language, lang) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a stably sorted copy of list. Counts and dates sort
// descending, names ascending with case-insensitive collation.
func Sort(list []models.Repository, key models.SortKey) []models.Repository {
	out := slices.Clone(list)

	switch key {
	case models.SortStars:
		slices.SortStableFunc(out, func(a, b models.Repository) int {
			return cmp.Compare(b.StargazersCount, a.StargazersCount)
		})
	case models.SortForks:
		slices.SortStableFunc(out, func(a, b models.Repository) int {
			return cmp.Compare(b.ForksCount, a.ForksCount)
		})
	case models.SortUpdated:
		slices.SortStableFunc(out, func(a, b models.Repository) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	case models.SortCreated:
		slices.SortStableFunc(out, func(a, b models.Repository) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case models.SortName:
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b models.Repository) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
	return out
}

// Apply recomputes the visible list from the full list: search, then
// filter, then sort.
func Apply(full []models.Repository, vs models.ViewState, searchLanguages bool) []models.Repository {
	view := Search(full, vs.SearchTerm, searchLanguages)
	view = Filter(view, vs.Filter)
	return Sort(view, vs.Sort)
}

// Languages returns the distinct non-empty languages in list, sorted.
func Languages(list []models.Repository) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, r := range list {
		if r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		langs = append(langs, r.Language)
	}
	slices.Sort(langs)
	return langs
}

// ComputeStats totals the full list.
func ComputeStats(list []models.Repository) models.Stats {
	s := models.Stats{Repositories: len(list), Languages: len(Languages(list))}
	for _, r := range list {
		s.Stars += r.StargazersCount
		s.Forks += r.ForksCount
	}
	return s
}
