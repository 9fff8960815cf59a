package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fogbound/paperscope/internal/catalog"
	"github.com/fogbound/paperscope/internal/config"
	"github.com/fogbound/paperscope/internal/logging"
	"github.com/fogbound/paperscope/internal/query"
	"github.com/fogbound/paperscope/internal/urlstate"
)

// SearchDebounce is how long search input must settle before a
// recompute runs. Trailing edge only: no recompute happens while
// keystrokes are still arriving.
const SearchDebounce = 250 * time.Millisecond

// maxFacetTags caps how many tags get number-key shortcuts.
const maxFacetTags = 9

// Model is the root Bubble Tea model for the catalog browser. All
// session state - the immutable catalog, the filter state and the
// pagination cursor - lives here and in the query engine it owns;
// nothing is read from globals, which keeps the core testable
// headlessly.
type Model struct {
	cat    *catalog.Catalog
	filter query.FilterState
	engine *query.Engine

	// visible holds the pages handed out so far for the current
	// filter state; any filter mutation rebuilds it from page zero.
	visible []catalog.Paper
	cursor  int
	detail  *catalog.Paper // open detail view, nil when closed

	search    textinput.Model
	searchGen int // debounce generation, bumped per keystroke

	cfg       *config.Config
	dataDir   string
	siteURL   string
	shareLink string
	styles    styleSet

	width  int
	height int
	ready  bool
	status string
}

// New creates the browser model. The initial filter state has already
// been restored from a shared link (or defaulted) by the caller, so
// the first recompute reproduces the linked view exactly.
func New(cat *catalog.Catalog, cfg *config.Config, dataDir, siteURL string, initial query.FilterState) Model {
	ti := textinput.New()
	ti.Placeholder = "search title, authors, abstract"
	ti.Prompt = "/ "
	ti.CharLimit = 200
	ti.SetValue(initial.Search)

	m := Model{
		cat:     cat,
		filter:  initial,
		engine:  query.NewEngine(),
		search:  ti,
		cfg:     cfg,
		dataDir: dataDir,
		siteURL: siteURL,
		styles:  newStyles(cfg.Theme),
	}
	m.applyFilter()
	return m
}

// Init starts cursor blinking for the search field.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// applyFilter recomputes the result sequence from scratch and only
// then rebuilds the share link, so the link always reflects the state
// that produced the visible results.
func (m *Model) applyFilter() {
	m.engine.Recompute(m.cat, m.filter)
	m.visible = m.engine.NextPage()
	m.cursor = 0
	m.shareLink = urlstate.ShareLink(m.siteURL, m.filter)
}

// loadMore appends the next page to the visible list.
func (m *Model) loadMore() {
	m.visible = append(m.visible, m.engine.NextPage()...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = msg.Width - 10
		return m, nil

	case searchSettled:
		// A newer keystroke invalidated this timer.
		if msg.Gen != m.searchGen {
			return m, nil
		}
		if m.filter.Search != m.search.Value() {
			m.filter.Search = m.search.Value()
			m.applyFilter()
		}
		return m, nil

	case linkCopied:
		if msg.Err != nil {
			m.status = "clipboard unavailable"
		} else {
			m.status = "link copied"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	// The cancel key closes an open detail view first; otherwise it
	// blurs the search field.
	if msg.Type == tea.KeyEsc {
		if m.detail != nil {
			m.detail = nil
			return m, nil
		}
		if m.search.Focused() {
			m.search.Blur()
			return m, nil
		}
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.detail = nil
		m.search.Focus()
		return m, textinput.Blink

	case "j", "down":
		if m.detail != nil {
			return m, nil
		}
		if m.cursor == len(m.visible)-1 && m.engine.HasMore() {
			m.loadMore()
		}
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.detail == nil && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}
		return m, nil

	case "enter":
		if m.detail == nil && m.cursor < len(m.visible) {
			p := m.visible[m.cursor]
			m.detail = &p
		}
		return m, nil

	case " ", "l":
		if m.engine.HasMore() {
			m.loadMore()
		}
		return m, nil

	case "s":
		m.filter.Sort = m.filter.Sort.Next()
		m.applyFilter()
		return m, nil

	case "y":
		m.cycleYear()
		m.applyFilter()
		return m, nil

	case "m":
		m.cycleMonth()
		m.applyFilter()
		return m, nil

	case "t":
		if len(m.filter.Tags) > 0 {
			m.filter.Tags = make(map[string]bool)
			m.applyFilter()
		}
		return m, nil

	case "x":
		m.filter = query.NewFilterState()
		m.search.SetValue("")
		m.applyFilter()
		return m, nil

	case "d":
		m.cfg.ToggleTheme()
		m.styles = newStyles(m.cfg.Theme)
		if err := m.cfg.Save(m.dataDir); err != nil {
			logging.Warn("Failed to save theme preference", "error", err)
		}
		return m, nil

	case "c":
		link := m.shareLink
		return m, func() tea.Msg {
			return linkCopied{Err: clipboard.WriteAll(link)}
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		tags := m.facetTags()
		if idx < len(tags) {
			m.filter.ToggleTag(tags[idx])
			m.applyFilter()
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey forwards input to the search field and schedules a
// debounced recompute. Every keystroke bumps the generation counter,
// so earlier pending timers become stale and are ignored when they
// fire.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.search.Blur()
		// Apply immediately rather than waiting out the debounce.
		if m.filter.Search != m.search.Value() {
			m.filter.Search = m.search.Value()
			m.applyFilter()
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != before {
		m.searchGen++
		gen := m.searchGen
		debounce := tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
			return searchSettled{Gen: gen}
		})
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

// cycleYear steps the year filter through "all" and every year
// present in the catalog, newest first.
func (m *Model) cycleYear() {
	options := append([]int{0}, m.cat.Years()...)
	m.filter.Year = nextOption(options, m.filter.Year)
}

// cycleMonth steps the month filter through "all" and every month
// present in the catalog.
func (m *Model) cycleMonth() {
	options := append([]int{0}, m.cat.Months()...)
	m.filter.Month = nextOption(options, m.filter.Month)
}

func nextOption(options []int, current int) int {
	for i, v := range options {
		if v == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// facetTags returns the tags that get number-key shortcuts: the most
// frequent catalog tags, capped at nine.
func (m Model) facetTags() []string {
	tags := m.cat.Tags()
	if len(tags) > maxFacetTags {
		tags = tags[:maxFacetTags]
	}
	return tags
}

// Filter exposes the current filter state (for testing).
func (m Model) Filter() query.FilterState {
	return m.filter
}

// Visible exposes the currently rendered results (for testing).
func (m Model) Visible() []catalog.Paper {
	return m.visible
}

// ShareLink exposes the current deep link (for testing).
func (m Model) ShareLink() string {
	return m.shareLink
}

// Cursor returns the current cursor position (for testing).
func (m Model) Cursor() int {
	return m.cursor
}

// DetailOpen reports whether the detail view is showing (for testing).
func (m Model) DetailOpen() bool {
	return m.detail != nil
}

// SearchFocused reports whether the search field has focus (for
// testing).
func (m Model) SearchFocused() bool {
	return m.search.Focused()
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.detail != nil {
		return m.renderDetail(*m.detail) + "\n" + m.renderStatusBar()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderFacetBar())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("PaperScope")
	meta := m.styles.HeaderMeta.Render(fmt.Sprintf(
		" %d papers · %d added today · updated %s",
		m.cat.TotalCount,
		m.cat.CountOnDate(time.Now()),
		shortInstant(m.cat.LastUpdated),
	))
	return title + meta
}

func (m Model) renderSearchBar() string {
	prompt := m.styles.SearchPrompt.Render("/")
	text := m.styles.SearchText.Render(m.search.View())
	count := m.styles.HeaderMeta.Render(fmt.Sprintf(" %d/%d", m.engine.Len(), m.cat.Len()))
	return prompt + " " + text + count
}

func (m Model) renderFacetBar() string {
	var parts []string

	for i, tag := range m.facetTags() {
		label := fmt.Sprintf("%d:%s(%d)", i+1, tag, m.cat.TagCount(tag))
		if m.filter.Tags[tag] {
			parts = append(parts, m.styles.FacetOn.Render(label))
		} else {
			parts = append(parts, m.styles.FacetOff.Render(label))
		}
	}

	year := "y:all"
	if m.filter.Year != 0 {
		year = fmt.Sprintf("y:%d", m.filter.Year)
	}
	month := "m:all"
	if m.filter.Month != 0 {
		month = fmt.Sprintf("m:%02d", m.filter.Month)
	}
	sortLabel := "s:" + m.filter.Sort.Label()

	state := m.styles.FacetOff.Render(year + " " + month + " " + sortLabel)
	return strings.Join(parts, "") + state
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return m.styles.Empty.Render("No papers match the current filters. Adjust the search or press x to clear.") + "\n"
	}

	// Reserve header, search, facets and status bar space.
	available := m.height - 5
	if available < 1 {
		available = 1
	}

	offset := 0
	if m.cursor >= available {
		offset = m.cursor - available + 1
	}

	var b strings.Builder
	rendered := 0
	for i := offset; i < len(m.visible) && rendered < available; i++ {
		b.WriteString(m.renderRow(&m.visible[i], i == m.cursor))
		b.WriteString("\n")
		rendered++
	}

	if m.engine.HasMore() && rendered < available {
		remaining := m.engine.Len() - len(m.visible)
		b.WriteString(m.styles.LoadMore.Render(fmt.Sprintf("… load more (space, %d remaining)", remaining)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(p *catalog.Paper, selected bool) string {
	badge := ""
	if p.ID == m.cat.LatestID() {
		badge = m.styles.LatestBadge.Render("● ")
	}

	date := ""
	if t, ok := p.PublishedAt(); ok {
		date = t.Local().Format("2006-01-02")
	}

	titleWidth := m.width - 16
	if titleWidth < 20 {
		titleWidth = 20
	}
	title := truncate(p.Title, titleWidth)

	style := m.styles.NormalItem
	if selected {
		style = m.styles.SelectedItem
	}

	meta := m.styles.ItemMeta.Render(" " + date)
	if len(p.Tags) > 0 {
		meta += m.styles.TagChip.Render(" [" + strings.Join(p.Tags, ",") + "]")
	}
	return badge + style.Render(title) + meta
}

// renderDetail shows the full single-paper projection: abstract, all
// authors, categories, id and both timestamps. Selection is transient
// and never feeds back into the filter state.
func (m Model) renderDetail(p catalog.Paper) string {
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	body := m.styles.DetailBody.Width(width)

	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(p.Title))
	b.WriteString("\n\n")

	b.WriteString(m.styles.DetailLabel.Render("Authors    "))
	b.WriteString(body.Render(strings.Join(p.Authors, ", ")))
	b.WriteString("\n")

	b.WriteString(m.styles.DetailLabel.Render("arXiv id   "))
	b.WriteString(body.Render(p.ID))
	b.WriteString("\n")

	b.WriteString(m.styles.DetailLabel.Render("Published  "))
	b.WriteString(body.Render(shortInstant(p.Published)))
	b.WriteString("\n")

	if p.Updated != "" {
		b.WriteString(m.styles.DetailLabel.Render("Updated    "))
		b.WriteString(body.Render(shortInstant(p.Updated)))
		b.WriteString("\n")
	}

	if len(p.Categories) > 0 {
		b.WriteString(m.styles.DetailLabel.Render("Categories "))
		b.WriteString(body.Render(strings.Join(p.Categories, ", ")))
		b.WriteString("\n")
	}

	if len(p.Tags) > 0 {
		b.WriteString(m.styles.DetailLabel.Render("Tags       "))
		b.WriteString(body.Render(strings.Join(p.Tags, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.DetailLabel.Render("Links      "))
	b.WriteString(body.Render(p.AbsLink() + "  " + p.PDFLink()))
	b.WriteString("\n\n")

	b.WriteString(body.Render(p.Abstract))
	b.WriteString("\n")

	if p.FigureURL != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ItemMeta.Render(p.FigureURL))
		if p.FigureCaption != "" {
			b.WriteString(m.styles.ItemMeta.Render(": " + p.FigureCaption))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.status != "":
		left = " " + m.status + " "
	case m.detail != nil:
		left = " esc:back "
	default:
		left = fmt.Sprintf(" %d/%d ", m.cursor+1, m.engine.Len())
	}

	keys := []string{
		m.styles.StatusKey.Render("/") + m.styles.StatusText.Render(":search"),
		m.styles.StatusKey.Render("1-9") + m.styles.StatusText.Render(":tags"),
		m.styles.StatusKey.Render("y/m") + m.styles.StatusText.Render(":date"),
		m.styles.StatusKey.Render("s") + m.styles.StatusText.Render(":sort"),
		m.styles.StatusKey.Render("c") + m.styles.StatusText.Render(":copy link"),
		m.styles.StatusKey.Render("d") + m.styles.StatusText.Render(":theme"),
		m.styles.StatusKey.Render("q") + m.styles.StatusText.Render(":quit"),
	}
	hints := strings.Join(keys, " ")

	link := ""
	if qs := m.shareLink; qs != m.siteURL {
		link = m.styles.ShareLink.Render(" " + truncate(qs, m.width/3) + " ")
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(link) - lipgloss.Width(hints)
	if padding < 0 {
		padding = 0
	}
	return m.styles.StatusBar.Width(m.width).Render(left + link + strings.Repeat(" ", padding) + hints)
}

func shortInstant(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local().Format("2006-01-02 15:04")
	}
	return s
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
