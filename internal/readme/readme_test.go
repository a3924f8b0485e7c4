package readme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/gitfolio/internal/models"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name:    "centered banner",
			in:      "<p align=\"center\"><img src=\"banner.png\" alt=\"banner\"></p>\n\n# Hi there",
			want:    []string{"[banner]", "# Hi there"},
			notWant: []string{"<p", "<img", "align"},
		},
		{
			name: "plain markdown untouched",
			in:   "## Skills\n\n- Go\n- **Rust**",
			want: []string{"## Skills\n\n- Go\n- **Rust**"},
		},
		{
			name:    "line breaks",
			in:      "one<br>two<br/>three",
			want:    []string{"one\ntwo\nthree"},
			notWant: []string{"<br"},
		},
		{
			name: "autolink kept",
			in:   "see <https://example.com>",
			want: []string{"<https://example.com>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripHTML(tt.in)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, got, nw)
			}
		})
	}
}

func TestRenderTerminal(t *testing.T) {
	for _, theme := range []models.Theme{models.ThemeDark, models.ThemeLight} {
		out, err := RenderTerminal("# Title\n\nSome *text*.", 60, theme)
		require.NoError(t, err)
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "text")
	}
}

func TestTerminalNotFound(t *testing.T) {
	out := ansi.Strip(Terminal(models.Readme{Found: false}, 80, models.ThemeDark))
	assert.Contains(t, out, "No README found")
}

const codeReadme = "# Intro\n\n```c\nif (a<b) { x(); }\n```\n\nUse `List<String>` here.\n\n" +
	"<p align=\"center\"><img src=\"logo.png\" alt=\"logo\"></p>\n\n## Install\n\nRun make.\n\n## License\n\nMIT\n"

func TestStripHTMLLeavesCodeAlone(t *testing.T) {
	got := StripHTML(codeReadme)

	assert.Contains(t, got, "if (a<b) { x(); }")
	assert.Contains(t, got, "`List<String>`")
	assert.Contains(t, got, "[logo]")
	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, "## Install")
	assert.True(t, strings.HasSuffix(got, "## License\n\nMIT"))
}

func TestTerminalKeepsSectionsAfterCode(t *testing.T) {
	out := ansi.Strip(Terminal(models.Readme{Content: codeReadme, Found: true}, 80, models.ThemeDark))

	for _, want := range []string{"Intro", "a<b", "Install", "Run make.", "License", "MIT"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<table>")
	assert.False(t, strings.Contains(out, "<script>"))
}
