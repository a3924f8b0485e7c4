package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/thesavant42/gitfolio/internal/models"
)

// githubLogin matches GitHub's username rules: alphanumerics and single
// hyphens, no leading or trailing hyphen.
var githubLogin = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)

const maxLoginLength = 39

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		// Keep printable characters and normal whitespace (space, tab, newline)
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// ValidateUsername checks a username before any request is made.
func ValidateUsername(s string) error {
	s = strings.TrimPrefix(strings.TrimSpace(sanitizeInput(s)), "@")
	if s == "" {
		return fmt.Errorf("please enter a GitHub username")
	}
	if len(s) > maxLoginLength || !githubLogin.MatchString(s) {
		return fmt.Errorf("%q is not a valid GitHub username", s)
	}
	return nil
}

// defaultUsername is the value the username prompt starts with: the last
// loaded user, else the newest recent user.
func defaultUsername(recent []models.RecentUser, last string) string {
	if last = strings.TrimSpace(last); last != "" {
		return last
	}
	if len(recent) > 0 {
		return recent[0].Login
	}
	return ""
}

// PromptForUsername asks for the GitHub user to load. Recent users are
// offered as suggestions and last, the previously loaded user, is the default.
func PromptForUsername(recent []models.RecentUser, last string, theme models.Theme) (string, error) {
	username := defaultUsername(recent, last)
	suggestions := make([]string, 0, len(recent))
	for _, u := range recent {
		suggestions = append(suggestions, u.Login)
	}

	input := huh.NewInput().
		Title("GitHub Username").
		Description("Whose public projects should we show?").
		Placeholder("octocat").
		CharLimit(maxLoginLength).
		Suggestions(suggestions).
		Value(&username).
		Validate(ValidateUsername)
	if len(recent) > 0 {
		input = input.Description("Whose public projects should we show? (tab completes recent users)")
	}

	form := huh.NewForm(huh.NewGroup(input)).WithTheme(NewAppTheme(PaletteFor(theme)))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return strings.TrimPrefix(strings.TrimSpace(sanitizeInput(username)), "@"), nil
}

// PromptForExportFormat asks which file format to export.
func PromptForExportFormat(theme models.Theme) (string, error) {
	format := "md"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Description("The current search, filter and sort are applied").
				Options(
					huh.NewOption("Markdown", "md"),
					huh.NewOption("CSV", "csv"),
					huh.NewOption("JSON", "json"),
					huh.NewOption("HTML page", "html"),
				).
				Value(&format),
		),
	).WithTheme(NewAppTheme(PaletteFor(theme)))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return format, nil
}
