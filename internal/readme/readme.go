// Package readme turns profile README markdown into terminal or HTML output.
package readme

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"emperror.dev/errors"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/thesavant42/gitfolio/internal/models"
)

// NotFoundMessage is shown when no README could be located.
const NotFoundMessage = `## No README found

This user has no profile README yet. A profile README lives in a repository
named after the username, with a README.md at its root.`

var blankLines = regexp.MustCompile(`\n{3,}`)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// StripHTML removes inline HTML tags from markdown, keeping their text.
// Images become their alt text. Only raw HTML nodes are touched, so code
// spans, fenced code and autolinks come through verbatim.
func StripHTML(src string) string {
	source := []byte(src)
	spans := htmlSpans(md.Parser().Parse(text.NewReader(source)))
	if len(spans) == 0 {
		return strings.TrimSpace(src)
	}

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.Write(source[last:sp.Start])
		b.WriteString(stripTags(string(source[sp.Start:sp.Stop])))
		last = sp.Stop
	}
	b.Write(source[last:])
	return strings.TrimSpace(b.String())
}

// htmlSpans returns the source ranges of raw HTML in doc, sorted and with
// touching ranges merged.
func htmlSpans(doc ast.Node) []text.Segment {
	var spans []text.Segment
	add := func(segs *text.Segments) {
		for i := 0; i < segs.Len(); i++ {
			spans = append(spans, segs.At(i))
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.RawHTML:
			add(n.Segments)
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			add(n.Lines())
			if n.HasClosure() {
				spans = append(spans, n.ClosureLine)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	slices.SortFunc(spans, func(a, b text.Segment) int { return a.Start - b.Start })
	merged := spans[:0]
	for _, sp := range spans {
		if n := len(merged); n > 0 && sp.Start <= merged[n-1].Stop {
			merged[n-1].Stop = max(merged[n-1].Stop, sp.Stop)
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// stripTags drops the tags of one HTML fragment. Fragments the tokenizer
// cannot read completely are returned unchanged.
func stripTags(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	consumed := 0

	for {
		tt := z.Next()
		if tt != html.ErrorToken {
			consumed += len(z.Raw())
		}
		switch tt {
		case html.ErrorToken:
			// An unterminated tag at the end is not consumed.
			if z.Err() != io.EOF || consumed < len(fragment) {
				return fragment
			}
			return blankLines.ReplaceAllString(b.String(), "\n\n")

		case html.TextToken:
			b.Write(z.Text())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "br":
				b.WriteString("\n")
			case "img":
				if alt := attr(z, hasAttr, "alt"); alt != "" {
					fmt.Fprintf(&b, "[%s]", alt)
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				b.WriteString("\n\n")
			}
		}
	}
}

func attr(z *html.Tokenizer, hasAttr bool, want string) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == want {
			return string(val)
		}
	}
	return ""
}

// RenderTerminal renders markdown for the README panel using the glamour
// style that matches theme.
func RenderTerminal(markdown string, width int, theme models.Theme) (string, error) {
	style := styles.DarkStyle
	if theme == models.ThemeLight {
		style = styles.LightStyle
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to create markdown renderer")
	}

	out, err := r.Render(StripHTML(markdown))
	if err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return out, nil
}

// Terminal renders rm, or NotFoundMessage when rm was not found. Render
// failures fall back to the raw markdown.
func Terminal(rm models.Readme, width int, theme models.Theme) string {
	src := NotFoundMessage
	if rm.Found {
		src = rm.Content
	}
	out, err := RenderTerminal(src, width, theme)
	if err != nil {
		return src
	}
	return out
}

// RenderHTML converts markdown to HTML. Raw HTML in the source is omitted.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", errors.Wrap(err, "failed to convert markdown")
	}
	return buf.String(), nil
}
