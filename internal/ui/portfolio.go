package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/thesavant42/gitfolio/internal/export"
	"github.com/thesavant42/gitfolio/internal/models"
	"github.com/thesavant42/gitfolio/internal/portfolio"
	"github.com/thesavant42/gitfolio/internal/readme"
)

// loadTimeout bounds one full portfolio load, README search included.
const loadTimeout = 45 * time.Second

// recentLimit is how many recent users the picker shows.
const recentLimit = 15

// PreferenceStore persists the theme and the recently loaded users.
// *db.DB satisfies it.
type PreferenceStore interface {
	SaveTheme(theme models.Theme) error
	RecordRecentUser(login string) error
	RecentUsers(limit int) ([]models.RecentUser, error)
	ForgetRecentUser(login string) error
}

// Options configures the portfolio TUI.
type Options struct {
	Username        string // loaded on start when set
	Loader          *portfolio.Loader
	Store           PreferenceStore // may be nil
	Theme           models.Theme
	ViewState       models.ViewState
	SearchLanguages bool
	Debounce        time.Duration
	ShareBaseURL    string
	ExportDir       string
	Logger          *log.Logger // may be nil
}

type screen int

const (
	screenMain screen = iota
	screenReadme
	screenShare
	screenHelp
	screenUser
	screenRecent
)

type loadDoneMsg struct {
	result portfolio.LoadResult
}

type exportDoneMsg struct {
	path string
	err  error
}

// PortfolioModel is the interactive portfolio page.
type PortfolioModel struct {
	PageState

	opts   Options
	state  *portfolio.State
	theme  models.Theme
	styles Styles
	screen screen

	search    textinput.Model
	searching bool
	debounce  *Debouncer

	cursor int
	table  table.Model
	readme viewport.Model

	userInput   textinput.Model
	recent      table.Model
	recentUsers []models.RecentUser

	spinner    spinner.Model
	loading    bool
	loadingFor string
	cancelLoad context.CancelFunc
	initCmd    tea.Cmd
}

// NewPortfolioModel builds the model and, when opts.Username is set,
// queues the first load.
func NewPortfolioModel(opts Options) PortfolioModel {
	if opts.Theme == "" {
		opts.Theme = models.ThemeDark
	}
	st := NewStyles(opts.Theme)
	layout := DefaultLayout()

	search := textinput.New()
	search.Placeholder = "search projects"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 28
	search.SetValue(opts.ViewState.SearchTerm)

	userInput := textinput.New()
	userInput.Placeholder = "GitHub username"
	userInput.CharLimit = maxLoginLength
	userInput.Width = 40

	t := table.New(
		table.WithColumns(CalculateColumns(RepositoryColumns(), layout.TableWidth)),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t, st)

	recent := table.New(
		table.WithColumns(CalculateColumns(RecentUserColumns(), layout.TableWidth)),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&recent, st)

	m := PortfolioModel{
		PageState: NewPageState(layout),
		opts:      opts,
		state:     portfolio.NewState(opts.ViewState, opts.SearchLanguages),
		theme:     opts.Theme,
		styles:    st,
		search:    search,
		debounce:  NewDebouncer(opts.Debounce),
		table:     t,
		readme:    viewport.New(layout.InnerWidth, layout.BodyHeight),
		userInput: userInput,
		recent:    recent,
		spinner:   NewAppSpinner(st),
	}

	if strings.TrimSpace(opts.Username) != "" {
		m.initCmd = m.startLoad(opts.Username)
	} else {
		m.screen = screenUser
		m.userInput.Focus()
	}
	return m
}

func (m PortfolioModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, textinput.Blink, statusTick())
}

// startLoad cancels any load in flight and fetches username under a new generation.
func (m *PortfolioModel) startLoad(username string) tea.Cmd {
	username = strings.TrimPrefix(strings.TrimSpace(sanitizeInput(username)), "@")
	if username == "" {
		m.SetStatus("Please enter a GitHub username", StatusError, statusDuration)
		return nil
	}
	if m.opts.Loader == nil {
		m.SetStatus("No GitHub client configured", StatusError, statusDuration)
		return nil
	}

	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	gen := m.state.Begin()
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	m.cancelLoad = cancel
	m.loading = true
	m.loadingFor = username
	m.screen = screenMain

	loader := m.opts.Loader
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		defer cancel()
		return loadDoneMsg{result: loader.Load(ctx, gen, username)}
	})
}

func (m PortfolioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UpdateLayout(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case statusTickMsg:
		m.ClearExpiredStatus()
		return m, statusTick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadDoneMsg:
		return m.handleLoaded(msg.result)

	case debounceMsg:
		if m.debounce.Fire(msg) {
			m.applySearch()
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.SetStatus("Export failed: "+msg.err.Error(), StatusError, statusDuration)
		} else {
			m.SetStatus("Exported to "+msg.path, StatusSuccess, statusDuration)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.screen {
		case screenReadme:
			return m.updateReadme(msg)
		case screenShare:
			return m.updateShare(msg)
		case screenHelp:
			m.screen = screenMain
			return m, nil
		case screenUser:
			return m.updateUserInput(msg)
		case screenRecent:
			return m.updateRecent(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateMain(msg)
	}

	if m.screen == screenUser {
		var cmd tea.Cmd
		m.userInput, cmd = m.userInput.Update(msg)
		return m, cmd
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PortfolioModel) quit() (tea.Model, tea.Cmd) {
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	m.Quitting = true
	return m, tea.Quit
}

func (m PortfolioModel) handleLoaded(res portfolio.LoadResult) (tea.Model, tea.Cmd) {
	if !m.state.Replace(res) {
		if m.opts.Logger != nil {
			m.opts.Logger.Debug("Dropped stale load", "generation", res.Generation, "user", res.Username)
		}
		return m, nil
	}
	m.loading = false
	m.cancelLoad = nil

	switch {
	case res.Fallback:
		m.SetStatus(res.Notice, StatusWarning, 2*statusDuration)
	case res.Err != nil:
		m.SetStatus(res.Notice, StatusInfo, statusDuration)
	default:
		m.SetStatus(res.Notice, StatusSuccess, statusDuration)
	}

	if !res.Fallback && res.Err == nil {
		if link, err := export.ShareURL(m.opts.ShareBaseURL, m.state.Username); err == nil {
			m.state.ShareURL = link
		}
		if m.opts.Store != nil {
			if err := m.opts.Store.RecordRecentUser(m.state.Username); err != nil && m.opts.Logger != nil {
				m.opts.Logger.Warn("Failed to record recent user", "error", err)
			}
		}
	}

	m.cursor = 0
	m.syncTable()
	m.renderReadme()
	return m, nil
}

func (m *PortfolioModel) applySearch() {
	m.state.SetSearch(m.search.Value())
	m.clampCursor()
	m.syncTable()
}

func (m PortfolioModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		m.debounce.Cancel()
		m.applySearch()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.debounce.Schedule())
	}
	return m, cmd
}

func (m PortfolioModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	perRow := 1
	if m.state.Query.Mode == models.ViewGrid {
		perRow = m.Layout.CardsPerRow()
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.screen = screenHelp
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applySearch()
		}
	case "tab":
		m.state.CycleFilter(1)
		m.clampCursor()
		m.syncTable()
	case "shift+tab":
		m.state.CycleFilter(-1)
		m.clampCursor()
		m.syncTable()
	case "s":
		key := m.state.CycleSort()
		m.syncTable()
		m.SetStatus("Sorted by "+strings.ToLower(key.Label()), StatusInfo, statusDuration)
	case "v":
		mode := m.state.ToggleViewMode()
		m.syncTable()
		m.SetStatus("Switched to "+string(mode)+" view", StatusInfo, statusDuration)
	case "t":
		m.toggleTheme()
	case "r":
		m.screen = screenReadme
		m.readme.GotoTop()
	case "x":
		m.screen = screenShare
	case "e":
		return m, m.exportCmd()
	case "u":
		m.screen = screenUser
		m.userInput.SetValue("")
		return m, m.userInput.Focus()
	case "R":
		m.openRecent()
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-perRow)
	case "down", "j":
		m.moveCursor(perRow)
	case "home", "g":
		m.cursor = 0
		m.syncTable()
	case "end", "G":
		m.cursor = len(m.state.View) - 1
		m.clampCursor()
		m.syncTable()
	case "enter", "o":
		if r, ok := m.selected(); ok {
			m.open(r.HTMLURL)
		}
	case "d":
		if r, ok := m.selected(); ok {
			m.open(r.DemoURL())
		}
	case "p":
		if m.state.Profile != nil {
			m.open(m.state.Profile.HTMLURL)
		}
	}
	return m, nil
}

func (m PortfolioModel) updateReadme(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "r", "q":
		m.screen = screenMain
		return m, nil
	case "t":
		m.toggleTheme()
		return m, nil
	}
	var cmd tea.Cmd
	m.readme, cmd = m.readme.Update(msg)
	return m, cmd
}

func (m PortfolioModel) updateShare(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "y":
		if m.state.ShareURL == "" {
			return m, nil
		}
		if err := clipboard.WriteAll(m.state.ShareURL); err != nil {
			m.SetStatus("Could not copy link: "+err.Error(), StatusError, statusDuration)
		} else {
			m.SetStatus("Link copied to clipboard!", StatusSuccess, statusDuration)
		}
		m.screen = screenMain
	case "o":
		if m.state.ShareURL != "" {
			m.open(m.state.ShareURL)
		}
	default:
		m.screen = screenMain
	}
	return m, nil
}

func (m PortfolioModel) updateUserInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.userInput.Blur()
		if m.state.Username == "" && !m.loading {
			return m.quit()
		}
		m.screen = screenMain
		return m, nil
	case "enter":
		name := m.userInput.Value()
		if err := ValidateUsername(name); err != nil {
			m.SetStatus(err.Error(), StatusError, statusDuration)
			return m, nil
		}
		m.userInput.Blur()
		return m, m.startLoad(name)
	case "ctrl+r":
		m.openRecent()
		return m, nil
	}
	var cmd tea.Cmd
	m.userInput, cmd = m.userInput.Update(msg)
	return m, cmd
}

func (m PortfolioModel) updateRecent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = screenMain
		if m.state.Username == "" && !m.loading {
			m.screen = screenUser
		}
		return m, nil
	case "enter":
		if i := m.recent.Cursor(); i >= 0 && i < len(m.recentUsers) {
			return m, m.startLoad(m.recentUsers[i].Login)
		}
		return m, nil
	case "delete", "backspace", "D":
		if i := m.recent.Cursor(); i >= 0 && i < len(m.recentUsers) && m.opts.Store != nil {
			if err := m.opts.Store.ForgetRecentUser(m.recentUsers[i].Login); err != nil {
				m.SetStatus(err.Error(), StatusError, statusDuration)
			}
			m.openRecent()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.recent, cmd = m.recent.Update(msg)
	return m, cmd
}

func (m *PortfolioModel) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = NewStyles(m.theme)
	ApplyTableStyles(&m.table, m.styles)
	ApplyTableStyles(&m.recent, m.styles)
	m.spinner = NewAppSpinner(m.styles)
	m.renderReadme()

	label := "Switched to " + string(m.theme) + " theme"
	if m.opts.Store != nil {
		if err := m.opts.Store.SaveTheme(m.theme); err != nil {
			m.SetStatus(label+" (not saved: "+err.Error()+")", StatusWarning, statusDuration)
			return
		}
	}
	m.SetStatus(label, StatusInfo, statusDuration)
}

func (m *PortfolioModel) openRecent() {
	if m.opts.Store == nil {
		m.SetStatus("No history available", StatusWarning, statusDuration)
		return
	}
	users, err := m.opts.Store.RecentUsers(recentLimit)
	if err != nil {
		m.SetStatus(err.Error(), StatusError, statusDuration)
		return
	}
	if len(users) == 0 {
		m.SetStatus("No recent users yet", StatusInfo, statusDuration)
		return
	}

	m.recentUsers = users
	rows := make([]table.Row, len(users))
	for i, u := range users {
		rows[i] = table.Row{u.Login, portfolio.FormatRelative(u.LoadedAt)}
	}
	m.recent.SetColumns(CalculateColumns(RecentUserColumns(), m.Layout.TableWidth))
	m.recent.SetRows(rows)
	m.recent.SetHeight(m.Layout.TableHeight)
	m.recent.Focus()
	if m.recent.Cursor() >= len(rows) {
		m.recent.SetCursor(len(rows) - 1)
	}
	m.screen = screenRecent
}

func (m *PortfolioModel) exportCmd() tea.Cmd {
	if m.state.Username == "" {
		m.SetStatus("Nothing to export yet", StatusWarning, statusDuration)
		return nil
	}
	if m.state.Fallback {
		m.SetStatus("Load a GitHub user first; sample data cannot be exported.", StatusWarning, statusDuration)
		return nil
	}
	doc := export.Document{
		Username:    m.state.Username,
		Profile:     m.state.Profile,
		Stats:       m.state.Stats,
		Query:       m.state.Query,
		Repos:       m.state.View,
		Readme:      m.state.Readme,
		ShareURL:    m.state.ShareURL,
		GeneratedAt: time.Now(),
	}
	dir := m.opts.ExportDir
	return func() tea.Msg {
		path, err := export.WriteFile(dir, export.FormatMarkdown, doc)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *PortfolioModel) open(url string) {
	if url == "" {
		return
	}
	if err := openURL(url); err != nil {
		m.SetStatus("Could not open browser: "+err.Error(), StatusError, statusDuration)
		return
	}
	m.SetStatus("Opened "+url, StatusInfo, statusDuration)
}

func (m *PortfolioModel) selected() (models.Repository, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.View) {
		return models.Repository{}, false
	}
	return m.state.View[m.cursor], true
}

func (m *PortfolioModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.syncTable()
}

func (m *PortfolioModel) clampCursor() {
	if m.cursor >= len(m.state.View) {
		m.cursor = len(m.state.View) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *PortfolioModel) syncTable() {
	rows := make([]table.Row, len(m.state.View))
	for i, r := range m.state.View {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		desc := r.Description
		if desc == "" {
			desc = noDescription
		}
		rows[i] = table.Row{
			r.Name,
			lang,
			portfolio.FormatCount(r.StargazersCount),
			portfolio.FormatCount(r.ForksCount),
			portfolio.FormatDate(r.UpdatedAt),
			desc,
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(m.cursor)
}

func (m *PortfolioModel) resize() {
	m.table.SetColumns(CalculateColumns(RepositoryColumns(), m.Layout.TableWidth))
	m.table.SetHeight(m.Layout.TableHeight)
	m.recent.SetColumns(CalculateColumns(RecentUserColumns(), m.Layout.TableWidth))
	m.recent.SetHeight(m.Layout.TableHeight)
	m.readme.Width = m.Layout.InnerWidth
	m.readme.Height = m.Layout.ViewportHeight - 8
	m.renderReadme()
}

func (m *PortfolioModel) renderReadme() {
	m.readme.SetContent(readme.Terminal(m.state.Readme, m.Layout.InnerWidth-4, m.theme))
}

// =============================================================================
// View
// =============================================================================

func (m PortfolioModel) View() string {
	if m.Quitting {
		return ""
	}
	st := m.styles
	layout := m.Layout

	switch m.screen {
	case screenReadme:
		title := "README"
		if m.state.Readme.Found {
			title = fmt.Sprintf("README · %s/%s", m.state.Readme.Owner, m.state.Readme.Repo)
		}
		content := ViewHeader(title, layout.InnerWidth, st) + m.readme.View()
		help := fmt.Sprintf("up/down: scroll | t: theme | esc: back   %3.f%%", m.readme.ScrollPercent()*100)
		return TwoBoxView(content, help, layout, st)
	case screenShare:
		return m.viewShare()
	case screenHelp:
		return TwoBoxView(m.viewHelp(), "press any key to return", layout, st)
	case screenUser:
		return m.viewUserInput()
	case screenRecent:
		content := ViewHeaderWithSubtitle("Recent users", "Previously loaded portfolios", layout.InnerWidth, st)
		content += RenderTableWithSelection(m.recent, layout, st)
		return TwoBoxView(content, "enter: load | D: forget | esc: back", layout, st)
	}
	return m.viewMain()
}

func (m PortfolioModel) viewMain() string {
	st := m.styles
	layout := m.Layout

	subtitle := "GitHub portfolio"
	if m.state.Username != "" {
		subtitle = "github.com/" + m.state.Username
	}
	var b strings.Builder
	b.WriteString(ViewHeaderWithSubtitle("gitfolio", subtitle, layout.InnerWidth, st))

	if m.loading {
		b.WriteString(m.spinner.View() + " " + st.Normal.Render("Loading @"+m.loadingFor+"..."))
		b.WriteString("\n")
	}

	if p := renderProfile(m.state.Profile, m.state.Fallback, layout, st); p != "" {
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString(renderStats(m.state.Stats, st))
	b.WriteString("\n\n")

	controls := []string{
		m.search.View(),
		st.Dim.Render("sort:") + " " + st.Accent.Render(m.state.Query.Sort.Label()),
		st.Dim.Render("view:") + " " + st.Accent.Render(string(m.state.Query.Mode)),
		st.Dim.Render(fmt.Sprintf("%d of %d", len(m.state.View), len(m.state.Full))),
	}
	b.WriteString(strings.Join(controls, "   "))
	b.WriteString("\n")
	b.WriteString(renderPills(m.state.FilterOptions(), m.state.Query.Filter, layout.InnerWidth, st))
	b.WriteString("\n")
	b.WriteString(st.Dim.Render(FullWidthDivider(layout.InnerWidth)))
	b.WriteString("\n")

	var body string
	switch {
	case len(m.state.View) == 0 && m.loading:
		body = ""
	case len(m.state.View) == 0:
		body = renderEmptyState(m.state, layout, st)
	case m.state.Query.Mode == models.ViewList:
		body = RenderTableWithSelection(m.table, layout, st)
	default:
		body = renderGrid(m.state.View, m.cursor, layout, st)
	}
	b.WriteString(PadToHeight(body, layout.BodyHeight))
	b.WriteString("\n")
	b.WriteString(m.RenderStatus(st))

	help := "/: search | tab: language | s: sort | v: view | t: theme | r: readme | x: share | e: export | ?: help | q: quit"
	if m.searching {
		help = "type to search | enter/esc: done"
	}
	return TwoBoxView(b.String(), ellipsize(help, layout.InnerWidth), layout, st)
}

func (m PortfolioModel) viewShare() string {
	st := m.styles
	var body string
	if m.state.ShareURL == "" {
		body = st.Title.Render("Share portfolio") + "\n\n" +
			st.Dim.Render("Load a GitHub user first; sample data cannot be shared.")
	} else {
		body = st.Title.Render("Share portfolio") + "\n\n" +
			st.Accent.Render(m.state.ShareURL) + "\n\n" +
			st.Hint.Render("c: copy link | o: open | any other key: close")
	}
	modal := st.Modal.Render(body)
	content := lipgloss.Place(m.Layout.InnerWidth, m.Layout.ViewportHeight-6,
		lipgloss.Center, lipgloss.Center, modal)
	return TwoBoxView(content, "c: copy | o: open | esc: close", m.Layout, st)
}

func (m PortfolioModel) viewUserInput() string {
	st := m.styles
	content := ViewHeaderWithSubtitle("Load a GitHub portfolio", "Enter a username to browse its public projects", m.Layout.InnerWidth, st)
	content += "\n" + m.userInput.View() + "\n\n"
	if m.HasStatus() {
		content += m.RenderStatus(st) + "\n"
	}
	return TwoBoxView(content, "enter: load | ctrl+r: recent users | esc: back", m.Layout, st)
}

func (m PortfolioModel) viewHelp() string {
	st := m.styles
	keys := [][2]string{
		{"/", "search names and descriptions"},
		{"tab / shift+tab", "next / previous language filter"},
		{"s", "cycle sort: stars, forks, updated, created, name"},
		{"v", "toggle grid / list view"},
		{"arrows / hjkl", "move selection"},
		{"enter / o", "open repository"},
		{"d", "open live demo"},
		{"p", "open profile"},
		{"r", "read profile README"},
		{"x", "share link"},
		{"e", "export view to markdown"},
		{"u", "load another user"},
		{"R", "recent users"},
		{"t", "toggle dark / light theme"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(ViewHeader("Keys", m.Layout.InnerWidth, st))
	for _, k := range keys {
		b.WriteString(st.Accent.Render(fmt.Sprintf("%-16s", k[0])))
		b.WriteString(st.Normal.Render(k[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// RunPortfolio runs the portfolio TUI until the user quits.
func RunPortfolio(opts Options) error {
	p := tea.NewProgram(NewPortfolioModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("portfolio TUI error: %w", err)
	}
	return nil
}
