// Package export writes the visible portfolio list to files and builds share links.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"

	"github.com/thesavant42/gitfolio/internal/models"
	"github.com/thesavant42/gitfolio/internal/portfolio"
	"github.com/thesavant42/gitfolio/internal/readme"
)

// Format is an export file format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// ParseFormat accepts md, markdown, csv, json and html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	}
	return "", errors.Errorf("unknown export format %q (want md, csv, json or html)", s)
}

// Document is everything an export may include. Repos is the filtered,
// sorted view, not the full list.
type Document struct {
	Username    string
	Profile     *models.UserProfile
	Stats       models.Stats
	Query       models.ViewState
	Repos       []models.Repository
	Readme      models.Readme
	ShareURL    string
	GeneratedAt time.Time
}

// Record is the exported projection of a repository.
type Record struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	URL         string    `json:"url"`
	Homepage    string    `json:"homepage,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Records projects repos onto the export schema.
func Records(repos []models.Repository) []Record {
	out := make([]Record, len(repos))
	for i, r := range repos {
		out[i] = Record{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.StargazersCount,
			Forks:       r.ForksCount,
			URL:         r.HTMLURL,
			Homepage:    r.HomepageURL,
			UpdatedAt:   r.UpdatedAt,
		}
	}
	return out
}

// Write renders doc to w in the given format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatMarkdown:
		return Markdown(w, doc)
	case FormatCSV:
		return CSV(w, doc)
	case FormatJSON:
		return JSON(w, doc)
	case FormatHTML:
		return HTML(w, doc)
	}
	return errors.Errorf("unknown export format %q", format)
}

// DefaultFilename returns e.g. "octocat-portfolio-2024-01-15.md".
func DefaultFilename(username string, format Format, now time.Time) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "-").Replace(username)
	if safe == "" {
		safe = "portfolio"
	}
	return fmt.Sprintf("%s-portfolio-%s.%s", safe, now.Format("2006-01-02"), format)
}

// WriteFile writes doc to path, or to DefaultFilename inside dir when path
// is a directory or empty. It returns the written path.
func WriteFile(path string, format Format, doc Document) (string, error) {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename(doc.Username, format, doc.GeneratedAt))
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create export file")
	}

	if err := Write(f, format, doc); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to write export file")
	}
	return path, nil
}

// Markdown writes a summary, the repository table and the README.
func Markdown(w io.Writer, doc Document) error {
	var sb strings.Builder

	name := doc.Username
	if doc.Profile != nil {
		name = doc.Profile.DisplayName()
	}
	sb.WriteString(fmt.Sprintf("# %s's Portfolio\n\n", name))
	if doc.Profile != nil && doc.Profile.Bio != "" {
		sb.WriteString(doc.Profile.Bio + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("**Repositories:** %d\n", doc.Stats.Repositories))
	sb.WriteString(fmt.Sprintf("**Stars:** %d\n", doc.Stats.Stars))
	sb.WriteString(fmt.Sprintf("**Forks:** %d\n", doc.Stats.Forks))
	sb.WriteString(fmt.Sprintf("**Languages:** %d\n", doc.Stats.Languages))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", doc.GeneratedAt.Format("2006-01-02 15:04:05")))
	if doc.ShareURL != "" {
		sb.WriteString(fmt.Sprintf("Share: <%s>\n\n", doc.ShareURL))
	}

	sb.WriteString("| Name | Language | Stars | Forks | Updated | Description |\n")
	sb.WriteString("|------|----------|-------|-------|---------|-------------|\n")
	for _, r := range doc.Repos {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		sb.WriteString(fmt.Sprintf("| [%s](%s) | %s | %d | %d | %s | %s |\n",
			escapeCell(r.Name), r.HTMLURL, escapeCell(lang), r.StargazersCount, r.ForksCount,
			portfolio.FormatDate(r.UpdatedAt), escapeCell(r.Description)))
	}
	if len(doc.Repos) == 0 {
		sb.WriteString("\n_No projects found._\n")
	}

	if doc.Readme.Found {
		sb.WriteString(fmt.Sprintf("\n## README (%s/%s)\n\n", doc.Readme.Owner, doc.Readme.Repo))
		sb.WriteString(doc.Readme.Content)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write markdown")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

var csvHeader = []string{"name", "description", "language", "stars", "forks", "url", "homepage", "updated_at"}

// CSV writes one row per repository.
func CSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	for _, r := range Records(doc.Repos) {
		row := []string{
			r.Name, r.Description, r.Language,
			strconv.Itoa(r.Stars), strconv.Itoa(r.Forks),
			r.URL, r.Homepage, r.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}

// ReadCSV parses output of CSV.
func ReadCSV(r io.Reader) ([]Record, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}
	if len(rows) == 0 {
		return nil, errors.New("csv export is empty")
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[h] = i
	}
	for _, h := range []string{"name", "language", "stars", "forks", "url"} {
		if _, ok := col[h]; !ok {
			return nil, errors.Errorf("csv export is missing column %q", h)
		}
	}

	get := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	out := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		stars, err := strconv.Atoi(get(row, "stars"))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: bad stars", n+1)
		}
		forks, err := strconv.Atoi(get(row, "forks"))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: bad forks", n+1)
		}
		rec := Record{
			Name:        get(row, "name"),
			Description: get(row, "description"),
			Language:    get(row, "language"),
			Stars:       stars,
			Forks:       forks,
			URL:         get(row, "url"),
			Homepage:    get(row, "homepage"),
		}
		if ts := get(row, "updated_at"); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				rec.UpdatedAt = t
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

type jsonDocument struct {
	User        string              `json:"user"`
	Profile     *models.UserProfile `json:"profile,omitempty"`
	Stats       models.Stats        `json:"stats"`
	Search      string              `json:"search,omitempty"`
	Filter      string              `json:"filter,omitempty"`
	Sort        models.SortKey      `json:"sort,omitempty"`
	ShareURL    string              `json:"share_url,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
	Repos       []Record            `json:"repositories"`
}

// JSON writes an indented document with profile, stats and records.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(jsonDocument{
		User:        doc.Username,
		Profile:     doc.Profile,
		Stats:       doc.Stats,
		Search:      doc.Query.SearchTerm,
		Filter:      doc.Query.Filter,
		Sort:        doc.Query.Sort,
		ShareURL:    doc.ShareURL,
		GeneratedAt: doc.GeneratedAt,
		Repos:       Records(doc.Repos),
	})
	return errors.Wrap(err, "failed to encode json")
}

// ReadJSON parses output of JSON and returns its records.
func ReadJSON(r io.Reader) ([]Record, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode json export")
	}
	return doc.Repos, nil
}

var pageTmpl = template.Must(template.New("portfolio").Funcs(template.FuncMap{
	"date": portfolio.FormatDate,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} | Portfolio</title>
<style>
body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#1f2937}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(260px,1fr));gap:1rem}
.card{border:1px solid #e5e7eb;border-radius:8px;padding:1rem}
.badge{background:#6366f1;color:#fff;border-radius:4px;padding:0 .4rem;font-size:.8rem}
.stats span{margin-right:1rem}
</style>
</head>
<body>
<header>
<h1>{{.Name}}</h1>
{{with .Doc.Profile}}{{if .Bio}}<p>{{.Bio}}</p>{{end}}{{end}}
<p class="stats"><span>{{.Doc.Stats.Repositories}} repositories</span><span>{{.Doc.Stats.Stars}} stars</span><span>{{.Doc.Stats.Forks}} forks</span><span>{{.Doc.Stats.Languages}} languages</span></p>
{{with .Doc.ShareURL}}<p><a href="{{.}}">Share this portfolio</a></p>{{end}}
</header>
<main class="grid">
{{range .Doc.Repos}}<article class="card">
<img src="{{.ImageURL}}" alt="{{.Name}}" width="100%">
<h3><a href="{{.HTMLURL}}">{{.Name}}</a>{{with .Language}} <span class="badge">{{.}}</span>{{end}}</h3>
<p>{{if .Description}}{{.Description}}{{else}}No description available{{end}}</p>
<p>&#9733; {{.StargazersCount}} &middot; forks {{.ForksCount}} &middot; {{date .UpdatedAt}}</p>
{{with .HomepageURL}}<p><a href="{{.}}">Live demo</a></p>{{end}}
</article>
{{else}}<p>No projects found</p>
{{end}}</main>
{{with .ReadmeHTML}}<section><h2>README</h2>{{.}}</section>{{end}}
<footer><small>Generated {{.Doc.GeneratedAt.Format "2006-01-02 15:04"}}</small></footer>
</body>
</html>
`))

// HTML writes a standalone page with cards and the rendered README.
func HTML(w io.Writer, doc Document) error {
	name := doc.Username
	if doc.Profile != nil {
		name = doc.Profile.DisplayName()
	}

	var readmeHTML template.HTML
	if doc.Readme.Found {
		out, err := readme.RenderHTML(doc.Readme.Content)
		if err != nil {
			return err
		}
		// goldmark drops raw HTML from the source, so its output is trusted.
		readmeHTML = template.HTML(out)
	}

	err := pageTmpl.Execute(w, struct {
		Name       string
		Doc        Document
		ReadmeHTML template.HTML
	}{name, doc, readmeHTML})
	return errors.Wrap(err, "failed to render html")
}
