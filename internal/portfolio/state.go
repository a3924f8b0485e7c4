package portfolio

import (
	"slices"
	"strings"

	"emperror.dev/errors"

	"github.com/thesavant42/gitfolio/internal/models"
)

// ErrEmptyResult is reported when a user has no repositories or every
// repository is filtered out.
const ErrEmptyResult = errors.Sentinel("no repositories to show")

// State is the single mutable application state. It is owned by one
// goroutine (the UI update loop); loads happen elsewhere and are handed back
// through Replace.
type State struct {
	Username string
	Full     []models.Repository
	View     []models.Repository
	Query    models.ViewState
	Profile  *models.UserProfile
	Readme   models.Readme
	Stats    models.Stats
	Fallback bool
	ShareURL string

	// SearchLanguages makes the search box match languages as well.
	SearchLanguages bool

	generation uint64
}

// NewState returns an empty state using query as the initial view settings.
func NewState(query models.ViewState, searchLanguages bool) *State {
	if query.Filter == "" {
		query.Filter = models.FilterAll
	}
	if query.Sort == "" {
		query.Sort = models.SortStars
	}
	if query.Mode == "" {
		query.Mode = models.ViewGrid
	}
	return &State{Query: query, SearchLanguages: searchLanguages}
}

// Begin starts a new load and returns its generation. Results from earlier
// generations are discarded by Replace.
func (s *State) Begin() uint64 {
	s.generation++
	return s.generation
}

// Generation returns the generation of the most recent Begin.
func (s *State) Generation() uint64 {
	return s.generation
}

// Replace applies a load result if it belongs to the latest generation and
// reports whether it did.
func (s *State) Replace(res LoadResult) bool {
	if res.Generation != s.generation {
		return false
	}

	s.Username = res.Username
	s.Full = res.Repos
	s.Profile = res.Profile
	s.Readme = res.Readme
	s.Fallback = res.Fallback
	s.Stats = ComputeStats(res.Repos)
	s.ShareURL = ""

	if s.Query.Filter != models.FilterAll && !slices.ContainsFunc(Languages(s.Full), func(lang string) bool {
		return strings.EqualFold(lang, s.Query.Filter)
	}) {
		s.Query.Filter = models.FilterAll
	}
	s.refresh()
	return true
}

func (s *State) refresh() {
	s.View = Apply(s.Full, s.Query, s.SearchLanguages)
}

// SetSearch updates the search term.
func (s *State) SetSearch(term string) {
	s.Query.SearchTerm = term
	s.refresh()
}

// SetFilter selects a language, or models.FilterAll.
func (s *State) SetFilter(lang string) {
	if lang == "" {
		lang = models.FilterAll
	}
	s.Query.Filter = lang
	s.refresh()
}

// SetSort changes the sort key.
func (s *State) SetSort(key models.SortKey) {
	s.Query.Sort = key
	s.refresh()
}

// CycleSort advances to the next sort key.
func (s *State) CycleSort() models.SortKey {
	s.SetSort(s.Query.Sort.Next())
	return s.Query.Sort
}

// FilterOptions lists the filter pills: "all" followed by each language.
func (s *State) FilterOptions() []string {
	return append([]string{models.FilterAll}, Languages(s.Full)...)
}

// CycleFilter moves the active filter by step through FilterOptions.
func (s *State) CycleFilter(step int) string {
	opts := s.FilterOptions()
	idx := slices.Index(opts, s.Query.Filter)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+step)%len(opts) + len(opts)) % len(opts)
	s.SetFilter(opts[idx])
	return s.Query.Filter
}

// ToggleViewMode flips between grid and list.
func (s *State) ToggleViewMode() models.ViewMode {
	s.Query.Mode = s.Query.Mode.Toggle()
	return s.Query.Mode
}

// Err returns ErrEmptyResult when nothing is visible.
func (s *State) Err() error {
	if len(s.View) == 0 {
		return ErrEmptyResult
	}
	return nil
}
