package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"teachfolio/internal/assets"
	"teachfolio/internal/card"
	"teachfolio/internal/content"
	"teachfolio/internal/schedule"
	"teachfolio/internal/semester"
	"teachfolio/internal/watch"
)

// Options configure the viewer. Only Resolver is commonly set; the rest
// have usable zero values.
type Options struct {
	Resolver assets.Resolver
	// Semester is shown first. Empty means the portfolio's default.
	Semester string
	Styles   *Styles
	Logger   *zap.Logger
	// WrapWidth caps the card width. Zero follows the terminal.
	WrapWidth int

	// Changes delivers content file changes; each one triggers Reload.
	Changes <-chan watch.Event
	Reload  func() (*content.Portfolio, error)

	Now func() time.Time
}

type contentChangedMsg struct{ event watch.Event }

type watchClosedMsg struct{}

// Model is the full-screen portfolio viewer.
type Model struct {
	opts   Options
	styles Styles
	logger *zap.Logger

	portfolio *content.Portfolio
	deck      *card.Deck
	selector  *semester.Selector

	focus      int
	scroll     map[string]int // expanded panel offset by activity ID
	panelLines map[string]int
	cardTops   []int

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	cards    *cardRenderer
	layout   LayoutConfig
	ready    bool
	status   string
}

// New builds a viewer for p. It fails when the requested semester is not
// in the portfolio.
func New(p *content.Portfolio, opts Options) (Model, error) {
	catalog, err := semester.NewCatalog(p.Semesters)
	if err != nil {
		return Model{}, err
	}
	start := opts.Semester
	if start == "" {
		start = p.DefaultKey()
	}
	selector, err := semester.NewSelector(catalog, start)
	if err != nil {
		return Model{}, err
	}

	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	keys := defaultKeyMap()
	vp := viewport.New(80, 20)
	vp.KeyMap = viewportKeys(keys)

	m := Model{
		opts:       opts,
		styles:     styles,
		logger:     logger,
		portfolio:  p,
		deck:       card.NewDeck(p.Activities),
		selector:   selector,
		scroll:     make(map[string]int),
		panelLines: make(map[string]int),
		keys:       keys,
		help:       help.New(),
		viewport:   vp,
		cards: &cardRenderer{
			styles:   styles,
			resolver: opts.Resolver,
			cache:    NewRenderCache(256),
		},
		layout: NewLayoutConfig(80, 24),
	}
	return m, nil
}

// Focus returns the index of the focused card.
func (m Model) Focus() int { return m.focus }

// Deck returns the card state arena.
func (m Model) Deck() *card.Deck { return m.deck }

// SemesterKey returns the selected semester key.
func (m Model) SemesterKey() string { return m.selector.Key() }

// Status returns the last status line message.
func (m Model) Status() string { return m.status }

// Init starts listening for content changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return contentChangedMsg{event: ev}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case contentChangedMsg:
		m.reload(msg.event)
		return m, m.waitForChange()

	case watchClosedMsg:
		m.logger.Debug("content watcher closed")
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setSize(width, height int) {
	m.layout = NewLayoutConfig(width, height)
	m.help.Width = width
	m.viewport.Width = m.layout.ContentWidth()
	m.resizeViewport()

	// Word wrap is fixed at construction, so the renderer is rebuilt.
	textWidth := PanelContentWidth(m.cardWidth())
	if !m.layout.IsCompact {
		textWidth, _ = SplitPaneWidths(textWidth)
	}
	m.cards.markdown = newMarkdownRenderer(m.styles.Theme, max(10, textWidth-markdownMargin))
	m.cards.cache.Clear()

	m.ready = true
	m.refresh()
}

func (m *Model) resizeViewport() {
	m.viewport.Height = m.layout.ContentHeight(lipgloss.Height(m.help.View(m.keys)))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.deck.At(m.focus)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeViewport()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
		m.refresh()
		m.ensureFocusVisible()

	case key.Matches(msg, m.keys.Down):
		if m.focus < m.deck.Len()-1 {
			m.focus++
		}
		m.refresh()
		m.ensureFocusVisible()

	case key.Matches(msg, m.keys.Prev):
		if c != nil {
			c.Carousel.Prev()
			m.refresh()
		}

	case key.Matches(msg, m.keys.Next):
		if c != nil {
			c.Carousel.Next()
			m.refresh()
		}

	case key.Matches(msg, m.keys.Toggle):
		if c != nil {
			c.Panel.Toggle()
			delete(m.scroll, c.Activity.ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.PanelDown):
		if c != nil && c.Panel.Expanded() {
			limit := max(0, m.panelLines[c.Activity.ID]-ExpandedLines)
			m.scroll[c.Activity.ID] = min(m.scroll[c.Activity.ID]+1, limit)
			m.refresh()
		}

	case key.Matches(msg, m.keys.PanelUp):
		if c != nil && c.Panel.Expanded() {
			m.scroll[c.Activity.ID] = max(m.scroll[c.Activity.ID]-1, 0)
			m.refresh()
		}

	case key.Matches(msg, m.keys.NextSemester):
		m.selector.Next()
		m.refresh()

	case key.Matches(msg, m.keys.PrevSemester):
		m.selector.Prev()
		m.refresh()

	case key.Matches(msg, m.keys.Semester):
		idx := int(msg.String()[0] - '1')
		if err := m.selector.SelectIndex(idx); err != nil {
			m.status = fmt.Sprintf("no semester %d", idx+1)
		} else {
			m.status = ""
		}
		m.refresh()

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) ensureFocusVisible() {
	if m.focus >= len(m.cardTops) {
		return
	}
	top := m.cardTops[m.focus]
	if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(top)
	}
}

// reload swaps in fresh content, keeping per-card state by activity ID and
// the selected semester when it still exists.
func (m *Model) reload(ev watch.Event) {
	if m.opts.Reload == nil {
		return
	}
	p, err := m.opts.Reload()
	if err != nil {
		m.status = "reload failed: " + err.Error()
		m.logger.Warn("content reload failed", zap.String("path", ev.Path), zap.Error(err))
		return
	}

	catalog, err := semester.NewCatalog(p.Semesters)
	if err != nil {
		m.status = "reload failed: " + err.Error()
		return
	}
	selector, err := semester.NewSelector(catalog, m.selector.Key())
	if err != nil {
		selector, err = semester.NewSelector(catalog, p.DefaultKey())
		if err != nil {
			m.status = "reload failed: " + err.Error()
			return
		}
	}

	m.portfolio = p
	m.selector = selector
	m.deck = m.deck.Reconcile(p.Activities)
	if m.focus >= m.deck.Len() {
		m.focus = max(0, m.deck.Len()-1)
	}
	for id := range m.scroll {
		if _, ok := m.deck.Get(id); !ok {
			delete(m.scroll, id)
		}
	}
	m.cards.cache.Clear()
	m.status = "reloaded " + m.opts.Now().Format("15:04:05")
	m.logger.Info("content reloaded",
		zap.String("path", ev.Path),
		zap.Int("activities", m.deck.Len()),
		zap.Int("semesters", catalog.Len()))
	m.refresh()
}

// refresh re-renders the page into the viewport, keeping the scroll offset.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderPage())
	m.viewport.SetYOffset(offset)
}

func (m *Model) cardWidth() int {
	w := m.layout.ContentWidth()
	if m.opts.WrapWidth > 0 && m.opts.WrapWidth < w {
		return max(MinimumTerminalWidth, m.opts.WrapWidth)
	}
	return w
}

// pageBuilder joins blocks with blank lines and tracks the line count so
// card positions are known for scrolling.
type pageBuilder struct {
	blocks []string
	lines  int
}

func (b *pageBuilder) add(block string) {
	if len(b.blocks) > 0 {
		b.lines++ // blank separator
	}
	b.blocks = append(b.blocks, block)
	b.lines += lipgloss.Height(block)
}

func (b *pageBuilder) next() int {
	if len(b.blocks) == 0 {
		return 0
	}
	return b.lines + 1
}

func (b *pageBuilder) String() string {
	return strings.Join(b.blocks, "\n\n")
}

func (m *Model) renderPage() string {
	width := m.layout.ContentWidth()
	var b pageBuilder

	b.add(m.renderProfile(width))

	b.add(m.styles.RenderSection("Activities", "Activities carried out during the practicum."))
	m.cardTops = m.cardTops[:0]
	for i, c := range m.deck.Cards() {
		m.cardTops = append(m.cardTops, b.next())
		view := m.cards.render(c, m.cardWidth(), m.layout.IsCompact, i == m.focus, m.scroll[c.Activity.ID])
		m.panelLines[c.Activity.ID] = view.panelLines
		b.add(view.body)
	}
	if m.deck.Len() == 0 {
		b.add(m.styles.Muted.Render("No activities yet"))
	}

	b.add(m.styles.RenderSection("Semester", "tab / shift+tab or 1-9 to switch."))
	b.add(m.renderTabs())

	sem := m.selector.Current()
	b.add(m.renderSchedule(sem, width))
	b.add(m.renderLessonPlans(sem, width))
	b.add(m.renderFooter(width))
	return b.String()
}

func (m *Model) renderProfile(width int) string {
	p := m.portfolio.Profile
	var lines []string
	if p.Role != "" {
		lines = append(lines, m.styles.Pill.Render("Portfolio")+" "+m.styles.Pill.Render(p.Role))
	}
	lines = append(lines, m.styles.Title.Render(orDash(p.SiteTitle, "Portfolio")))
	if p.Subtitle != "" {
		lines = append(lines, m.styles.Subtitle.Width(width).Render(p.Subtitle))
	}
	if p.Name != "" {
		author := m.styles.Bold.Render(p.Name)
		var extra []string
		for _, s := range []string{p.Program, p.Institution} {
			if s != "" {
				extra = append(extra, s)
			}
		}
		if len(extra) > 0 {
			author += "\n" + m.styles.Muted.Width(width).Render(strings.Join(extra, " · "))
		}
		lines = append(lines, "", author)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabs() string {
	catalog := m.selector.Catalog()
	tabs := make([]string, 0, catalog.Len())
	for i := 0; i < catalog.Len(); i++ {
		s := catalog.At(i)
		label := fmt.Sprintf("%d %s", i+1, orDash(s.Label, s.Key))
		style := m.styles.Tab
		if i == m.selector.Position() {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderSchedule(sem *content.Semester, width int) string {
	var parts []string
	parts = append(parts, m.styles.RenderSection("Class schedule", orDash(sem.Label, sem.Key)))

	if sem.TeachingProjectURL != "" {
		parts = append(parts, m.styles.Bold.Render("Teaching project:")+"\n"+
			m.documentLinks(sem.TeachingProjectURL))
	}

	meta := sem.Schedule.Meta
	metaBlock := strings.Join([]string{
		m.styles.Bold.Render(orDash(meta.School, "School")),
		"Term        " + orDash(meta.Term, "-"),
		"Teacher     " + orDash(meta.Teacher, "-"),
		"Group code  " + orDash(meta.GroupCode, "-"),
		"Group name  " + orDash(meta.GroupName, "-"),
	}, "\n")

	subjects := NewSimpleTable("Subjects", []string{"Code", "Subject", "T/P/N"})
	for _, s := range sem.Schedule.Subjects {
		subjects.AddRow(s.Code, s.Name, s.Hours)
	}
	subjectBlock := subjects.View(m.styles)
	if subjectBlock == "" {
		subjectBlock = m.styles.Bold.Render("Subjects") + "\n" + m.styles.Muted.Render("No subjects yet")
	}

	if m.layout.IsCompact {
		parts = append(parts, metaBlock, subjectBlock)
	} else {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, metaBlock, "    ", subjectBlock))
	}

	parts = append(parts, RenderSchedule(schedule.Layout(&sem.Schedule), m.styles))
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderLessonPlans(sem *content.Semester, width int) string {
	parts := []string{m.styles.RenderSection("Lesson plans", "Lesson plans for the subjects on the schedule.")}
	if len(sem.LessonPlans) == 0 {
		parts = append(parts, m.styles.Muted.Render("No lesson plans yet"))
	}
	for _, lp := range sem.LessonPlans {
		block := strings.Join([]string{
			m.styles.Bold.Render(lp.Subject),
			"Topic: " + lp.Topic,
			m.documentLinks(lp.DownloadURL),
			m.styles.Muted.Width(width).Render("Link: " + lp.DownloadURL),
		}, "\n")
		parts = append(parts, block)
	}
	return strings.Join(parts, "\n\n")
}

// documentLinks renders the view and download targets of a document. The
// terminal cannot open either, so both show the resolved URL.
func (m *Model) documentLinks(raw string) string {
	url := m.styles.Link.Render(m.opts.Resolver.Resolve(raw))
	return "View:     " + url + "\n" + "Download: " + url
}

func (m *Model) renderFooter(width int) string {
	p := m.portfolio.Profile
	lines := []string{fmt.Sprintf("© %d %s", m.opts.Now().Year(), p.FooterTitle)}
	if p.Name != "" {
		lines = append(lines, p.Name)
	}
	lines = append(lines, p.Contact...)
	return m.styles.Footer.Width(width).Render(strings.Join(lines, "\n"))
}

// View renders the viewer.
func (m Model) View() string {
	if !m.ready {
		return "Loading portfolio..."
	}

	title := m.styles.Header.Render(orDash(m.portfolio.Profile.SiteTitle, "Portfolio"))
	sem := m.selector.Current()
	header := title + m.styles.Muted.Render(" · "+orDash(sem.Label, sem.Key))
	if m.status != "" {
		header += "  " + m.styles.Muted.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.Content.Render(m.viewport.View()),
		m.help.View(m.keys),
	)
}

func orDash(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
