package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thesavant42/gitfolio/internal/models"
	"github.com/thesavant42/gitfolio/internal/portfolio"
)

const noDescription = "No description available"

// renderCard draws one repository card.
func renderCard(r models.Repository, focused bool, st Styles) string {
	inner := CardWidth - 4 // border and padding

	var b strings.Builder
	b.WriteString(st.Title.Render(ellipsize(r.Name, inner)))
	b.WriteString("\n")
	if r.Language != "" {
		b.WriteString(st.Badge.Render(ellipsize(r.Language, inner-2)))
	} else {
		b.WriteString(st.Dim.Render("—"))
	}
	b.WriteString("\n")

	desc := r.Description
	if desc == "" {
		desc = noDescription
	}
	for _, line := range wrapLines(desc, inner, 2) {
		b.WriteString(st.Normal.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(st.Dim.Render(fmt.Sprintf("★ %s  ⑂ %s  %s",
		portfolio.FormatCount(r.StargazersCount),
		portfolio.FormatCount(r.ForksCount),
		portfolio.FormatDate(r.UpdatedAt))))
	b.WriteString("\n")

	links := st.Accent.Render("code")
	if r.HasDemo() {
		links += st.Dim.Render(" · ") + st.Accent.Render("demo")
	}
	b.WriteString(links)

	style := st.Card
	if focused {
		style = st.CardFocus
	}
	return style.Render(b.String())
}

// wrapLines word-wraps s to width and keeps at most max lines.
func wrapLines(s string, width, max int) []string {
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case StringWidth(cur)+1+StringWidth(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}

	if len(lines) > max {
		lines = lines[:max]
		lines[max-1] = ellipsize(lines[max-1]+" …", width)
	}
	for i := range lines {
		lines[i] = ellipsize(lines[i], width)
	}
	for len(lines) < max {
		lines = append(lines, "")
	}
	return lines
}

// renderGrid lays out cards in rows, scrolled so the cursor row is visible.
func renderGrid(repos []models.Repository, cursor int, layout Layout, st Styles) string {
	perRow := layout.CardsPerRow()
	visibleRows := layout.CardRows()

	cursorRow := cursor / perRow
	firstRow := 0
	if cursorRow >= visibleRows {
		firstRow = cursorRow - visibleRows + 1
	}

	var rows []string
	for row := firstRow; row < firstRow+visibleRows; row++ {
		start := row * perRow
		if start >= len(repos) {
			break
		}
		end := min(start+perRow, len(repos))

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(repos[i], i == cursor, st))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	totalRows := (len(repos) + perRow - 1) / perRow
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if totalRows > visibleRows {
		out += "\n" + st.Dim.Render(fmt.Sprintf("row %d of %d", cursorRow+1, totalRows))
	}
	return out
}

// renderEmptyState is shown when the view list is empty.
func renderEmptyState(state *portfolio.State, layout Layout, st Styles) string {
	var hint string
	switch {
	case len(state.Full) == 0:
		hint = "This user has no public repositories to show."
	case state.Query.SearchTerm != "" || state.Query.Filter != models.FilterAll:
		hint = "Try a different search or press tab to change the language filter."
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(CenterText(st.Dim.Render("▢"), layout.InnerWidth))
	b.WriteString("\n")
	b.WriteString(CenterText(st.Title.Render("No projects found"), layout.InnerWidth))
	if hint != "" {
		b.WriteString("\n")
		b.WriteString(CenterText(st.Hint.Render(hint), layout.InnerWidth))
	}
	return b.String()
}

// renderProfile is the compact profile panel at the top of the page.
func renderProfile(p *models.UserProfile, fallback bool, layout Layout, st Styles) string {
	if p == nil {
		return ""
	}

	title := st.Title.Render(p.DisplayName())
	if p.Name != "" && p.Login != "" {
		title += " " + st.Dim.Render("@"+p.Login)
	}
	if fallback {
		title += " " + st.Warning.Render("[sample data]")
	}

	var details []string
	if p.Location != "" {
		details = append(details, "⌖ "+p.Location)
	}
	if p.Company != "" {
		details = append(details, p.Company)
	}
	if u := p.BlogURL(); u != "" {
		details = append(details, u)
	}
	if u := p.TwitterURL(); u != "" {
		details = append(details, u)
	}
	details = append(details, "Joined "+portfolio.FormatJoinDate(p.CreatedAt))

	counts := fmt.Sprintf("%s followers · %s following · %s public repos",
		portfolio.FormatCount(p.Followers),
		portfolio.FormatCount(p.Following),
		portfolio.FormatCount(p.PublicRepos))

	lines := []string{title}
	if p.Bio != "" {
		lines = append(lines, st.Normal.Render(ellipsize(p.Bio, layout.InnerWidth)))
	}
	lines = append(lines,
		st.Dim.Render(ellipsize(strings.Join(details, " · "), layout.InnerWidth)),
		st.Dim.Render(counts))
	return strings.Join(lines, "\n")
}

// renderStats is the totals line for the full list.
func renderStats(s models.Stats, st Styles) string {
	item := func(label string, n int) string {
		return st.Accent.Render(portfolio.FormatCount(n)) + " " + st.Dim.Render(label)
	}
	return strings.Join([]string{
		item("repositories", s.Repositories),
		item("stars", s.Stars),
		item("forks", s.Forks),
		item("languages", s.Languages),
	}, "   ")
}

// renderPills draws the language filter buttons.
func renderPills(options []string, active string, width int, st Styles) string {
	var pills []string
	used := 0
	for _, opt := range options {
		label := opt
		if opt == models.FilterAll {
			label = "All"
		}
		style := st.PillOff
		if strings.EqualFold(opt, active) {
			style = st.PillOn
		}
		pill := style.Render(label)
		w := StringWidth(pill) + 1
		if used+w > width-2 {
			pills = append(pills, st.Dim.Render("…"))
			break
		}
		used += w
		pills = append(pills, pill)
	}
	return strings.Join(pills, " ")
}
