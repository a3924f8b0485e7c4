package ui

// view_helpers.go provides common View() rendering helpers.
// Use these to build consistent two-box layouts across all TUI models.

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// stripEscapeCodes removes ANSI escape sequences from s.
func stripEscapeCodes(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// =============================================================================
// Table Rendering with Full-Width Selection
// =============================================================================

// RenderTableWithSelection renders a bubbles table with full-width selection highlight.
// The table's Selected style should be neutral (see ApplyTableStyles);
// this function applies the visible selection styling.
//
// bubbles/table View() output: line 0 is the header, lines 1+ are the
// visible data rows. A divider is added after the header.
func RenderTableWithSelection(t table.Model, layout Layout, st Styles) string {
	lines := strings.Split(t.View(), "\n")
	var result []string

	cursor := t.Cursor()
	height := t.Height()
	totalRows := len(t.Rows())

	// Match the table's internal scrolling: the cursor row stays at the
	// bottom once it moves past the visible area.
	start := 0
	if totalRows > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		if maxStart := totalRows - height; start > maxStart {
			start = maxStart
		}
	}
	visibleCursorIndex := cursor - start

	for i, line := range lines {
		if i == 0 {
			result = append(result, st.Normal.Render(line))
			result = append(result, st.Dim.Render(FullWidthDivider(layout.InnerWidth)))
			continue
		}

		if i-1 == visibleCursorIndex {
			// Strip escape codes first so embedded resets don't kill the background
			clean := stripEscapeCodes(line)
			if w := StringWidth(clean); w < layout.InnerWidth {
				clean += strings.Repeat(" ", layout.InnerWidth-w)
			} else if w > layout.InnerWidth {
				clean = truncateToWidth(clean, layout.InnerWidth)
			}
			result = append(result, st.Selected.Render(clean))
			continue
		}

		result = append(result, st.Normal.Render(line))
	}

	return strings.Join(result, "\n")
}

// =============================================================================
// View Header - Title + Divider Pattern
// =============================================================================

// ViewHeader renders title + full-width divider + spacing.
func ViewHeader(title string, innerWidth int, st Styles) string {
	return ViewHeaderWithSubtitle(title, "", innerWidth, st)
}

// ViewHeaderWithSubtitle renders title + subtitle + divider + spacing.
func ViewHeaderWithSubtitle(title, subtitle string, innerWidth int, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(st.Dim.Render(subtitle))
		b.WriteString("\n")
	}
	b.WriteString(st.Dim.Render(FullWidthDivider(innerWidth)))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Text Centering
// =============================================================================

// CenterText centers text within given width.
// Uses StringWidth() for accurate ANSI-aware width calculation.
func CenterText(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	padding := (width - textW) / 2
	return strings.Repeat(" ", padding) + text
}

// PadToHeight pads content with newlines to fill target height,
// or cuts it when it is taller.
func PadToHeight(content string, targetHeight int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > targetHeight {
		return strings.Join(lines[:targetHeight], "\n")
	}
	return content + strings.Repeat("\n", targetHeight-len(lines))
}

// =============================================================================
// Two-Box Layout
// =============================================================================

// TwoBoxView constructs the standard two-box layout.
//
//	┌────────────────────────┐
//	│ Main content           │  <- theme border
//	└────────────────────────┘
//	┌────────────────────────┐
//	│   Centered help text   │  <- 1 row
//	└────────────────────────┘
func TwoBoxView(content, helpText string, layout Layout, st Styles) string {
	main := st.Border.Width(layout.InnerWidth).Render(content)
	help := st.HelpBox.Width(layout.InnerWidth).Render(CenterText(helpText, layout.InnerWidth))
	return lipgloss.JoinVertical(lipgloss.Left, main, help)
}

// FullWidthDivider returns a horizontal divider spanning the inner width.
func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}
