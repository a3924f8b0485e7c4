package ui

// columns.go provides generic column width calculation for bubbles/table.
// Use ColumnSpec and CalculateColumns() instead of duplicating percentage-based math.

import (
	"github.com/charmbracelet/bubbles/table"
)

// =============================================================================
// Column Spec Types
// =============================================================================

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// =============================================================================
// Column Calculation
// =============================================================================

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
//
// Example:
//
//	columns := CalculateColumns([]ColumnSpec{
//	    {Title: "Name", FlexRatio: 30, MinWidth: 16},
//	    {Title: "Description", FlexRatio: 70, MinWidth: 20},
//	    {Title: "Stars", FixedWidth: 7},
//	}, layout.TableWidth)
//
// This allocates 7 chars to "Stars", then splits remaining space
// 30:70 between "Name" and "Description", respecting minimums.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	// First pass: allocate fixed widths and sum flex ratios
	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	// Second pass: calculate final widths
	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}

		// Apply minimum width constraint
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}

		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// =============================================================================
// Pre-defined Column Layouts
// =============================================================================

// RepositoryColumns returns column specs for the list view.
func RepositoryColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Name", FlexRatio: 30, MinWidth: 16},
		{Title: "Language", FixedWidth: 12},
		{Title: "Stars", FixedWidth: 7},
		{Title: "Forks", FixedWidth: 7},
		{Title: "Updated", FixedWidth: 13},
		{Title: "Description", FlexRatio: 70, MinWidth: 20},
	}
}

// RecentUserColumns returns column specs for the recent users picker.
func RecentUserColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "User", FlexRatio: 60, MinWidth: 16},
		{Title: "Last loaded", FlexRatio: 40, MinWidth: 14},
	}
}
