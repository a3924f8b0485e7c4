package models

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to the visible repository list.
type SortKey string

const (
	SortStars   SortKey = "stars"
	SortForks   SortKey = "forks"
	SortUpdated SortKey = "updated"
	SortCreated SortKey = "created"
	SortName    SortKey = "name"
)

// SortKeys lists every key in the order the sort control cycles through them.
var SortKeys = []SortKey{SortStars, SortForks, SortUpdated, SortCreated, SortName}

// Label is the human readable form used in the sort control.
func (k SortKey) Label() string {
	switch k {
	case SortStars:
		return "Most stars"
	case SortForks:
		return "Most forks"
	case SortUpdated:
		return "Recently updated"
	case SortCreated:
		return "Newest"
	case SortName:
		return "Name"
	}
	return string(k)
}

// Next returns the key after k, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortStars
}

// ParseSortKey accepts any of the SortKeys, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, key := range SortKeys {
		if key == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (want one of stars, forks, updated, created, name)", s)
}

// FilterAll is the filter value that shows every language.
const FilterAll = "all"

// ViewMode is the presentation of the repository list.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Toggle flips between grid and list.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewList {
		return ViewGrid
	}
	return ViewList
}

// ParseViewMode accepts "grid" or "list".
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewGrid:
		return ViewGrid, nil
	case ViewList:
		return ViewList, nil
	}
	return "", fmt.Errorf("unknown view mode %q (want grid or list)", s)
}

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle flips between dark and light.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
}

// ViewState is the user's current search, filter, sort and presentation choices.
type ViewState struct {
	SearchTerm string
	Filter     string
	Sort       SortKey
	Mode       ViewMode
}

// DefaultViewState matches a fresh page load: no search, all languages,
// most starred first, grid cards.
func DefaultViewState() ViewState {
	return ViewState{
		Filter: FilterAll,
		Sort:   SortStars,
		Mode:   ViewGrid,
	}
}
