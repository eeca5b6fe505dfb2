package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/logging"
	"github.com/tatianab/ghostbook/internal/models"
)

type sessionState int

const (
	stateInvestigating sessionState = iota
	stateFiltering
	stateDetail
)

type pane int

const (
	paneEvidence pane = iota
	paneGhosts
)

// Advisor produces a free-text tip for the current investigation.
type Advisor interface {
	Advise(ctx context.Context, state models.EvidenceState, result engine.Result, hints []engine.Hint, summary engine.Summary) (string, error)
}

type model struct {
	state    sessionState
	focus    pane
	cache    *models.Cache
	catalog  *models.Catalog
	engine   *engine.Engine
	advisor  Advisor
	evidence models.EvidenceState

	result     engine.Result
	hints      []engine.Hint
	summary    engine.Summary
	validation engine.Validation

	evidenceCursor int
	ghostCursor    int
	filter         string
	textInput      textinput.Model
	viewport       viewport.Model

	advice string
	asking bool
	notice string
	width  int
	height int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			PaddingRight(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	issueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Italic(true)

	bandStyles = map[engine.Band]lipgloss.Style{
		engine.Definite:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FFF87")).Bold(true),
		engine.VeryLikely: lipgloss.NewStyle().Foreground(lipgloss.Color("#AFFF5F")),
		engine.Possible:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		engine.Unlikely:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		engine.Impossible: lipgloss.NewStyle().Foreground(lipgloss.Color("#5F5F5F")).Strikethrough(true),
	}

	statusMarks = map[models.EvidenceStatus]string{
		models.Absent:    "[ ]",
		models.Suspected: "[?]",
		models.Confirmed: "[x]",
	}
)

// NewModel builds the TUI over an already loaded catalog. cache and advisor may be nil.
func NewModel(catalog *models.Catalog, cache *models.Cache, advisor Advisor) model {
	ti := textinput.New()
	ti.Placeholder = "Filter ghosts by name..."
	ti.CharLimit = 40
	ti.Width = 30

	m := model{
		state:     stateInvestigating,
		cache:     cache,
		advisor:   advisor,
		evidence:  models.EvidenceState{},
		textInput: ti,
		viewport:  viewport.New(96, 24),
		width:     100,
		height:    30,
	}
	m.setCatalog(catalog)
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

type catalogLoadedMsg struct {
	catalog *models.Catalog
	at      time.Time
	err     error
}

type adviceMsg struct {
	text string
	err  error
}

func (m *model) setCatalog(c *models.Catalog) {
	m.catalog = c
	m.engine = engine.New(c)
	m.recompute()
}

func (m *model) recompute() {
	m.result = m.engine.Classify(m.evidence)
	m.hints = m.engine.SuggestNext(m.evidence, m.result)
	m.summary = m.engine.Summarize(m.evidence, m.result)
	m.validation = m.engine.Validate(m.evidence)
	if n := len(m.visibleGhosts()); m.ghostCursor >= n {
		m.ghostCursor = max(n-1, 0)
	}
}

// visibleGhosts is the ranked list narrowed by the name filter.
func (m model) visibleGhosts() []engine.Classification {
	q := strings.ToLower(strings.TrimSpace(m.filter))
	if q == "" {
		return m.result.Ranked
	}
	var out []engine.Classification
	for _, c := range m.result.Ranked {
		if strings.Contains(strings.ToLower(c.Ghost.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			logging.For("tui").Warn("catalog reload failed", "error", msg.err)
			m.notice = "Reload failed: " + msg.err.Error()
			if msg.catalog == nil {
				return m, nil
			}
		}
		if msg.catalog != m.catalog {
			m.setCatalog(msg.catalog)
		}
		if msg.err == nil {
			m.notice = fmt.Sprintf("Catalog reloaded at %s: %d ghosts", msg.at.Format("15:04"), msg.catalog.Len())
		}
		return m, nil

	case adviceMsg:
		m.asking = false
		if msg.err != nil {
			m.notice = "Guide unavailable: " + msg.err.Error()
			return m, nil
		}
		m.advice = msg.text
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateFiltering:
			return m.updateFilter(msg)
		case stateDetail:
			return m.updateDetail(msg)
		}
		return m.updateInvestigating(msg)
	}

	if m.state == stateFiltering {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateInvestigating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := m.engine.Universe()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "tab", "left", "right", "h", "l":
		if m.focus == paneEvidence {
			m.focus = paneGhosts
		} else {
			m.focus = paneEvidence
		}

	case "up", "k":
		if m.focus == paneEvidence {
			m.evidenceCursor = max(m.evidenceCursor-1, 0)
		} else {
			m.ghostCursor = max(m.ghostCursor-1, 0)
		}

	case "down", "j":
		if m.focus == paneEvidence {
			m.evidenceCursor = min(m.evidenceCursor+1, len(kinds)-1)
		} else {
			m.ghostCursor = min(m.ghostCursor+1, max(len(m.visibleGhosts())-1, 0))
		}

	case " ", "enter":
		if m.focus == paneEvidence && len(kinds) > 0 {
			k := kinds[m.evidenceCursor]
			m.setStatus(k, m.evidence.Status(k).Next())
			return m, nil
		}
		if m.focus == paneGhosts && len(m.visibleGhosts()) > 0 {
			m.openDetail(m.visibleGhosts()[m.ghostCursor])
		}

	case "x":
		if m.focus == paneEvidence && len(kinds) > 0 {
			m.setStatus(kinds[m.evidenceCursor], models.Confirmed)
		}

	case "?":
		if m.focus == paneEvidence && len(kinds) > 0 {
			m.setStatus(kinds[m.evidenceCursor], models.Suspected)
		}

	case "backspace", "delete":
		if m.focus == paneEvidence && len(kinds) > 0 {
			m.setStatus(kinds[m.evidenceCursor], models.Absent)
		}

	case "c":
		m.evidence = models.EvidenceState{}
		m.advice = ""
		m.notice = "Evidence cleared"
		m.recompute()

	case "/":
		m.state = stateFiltering
		m.focus = paneGhosts
		m.textInput.SetValue(m.filter)
		m.textInput.Focus()
		return m, textinput.Blink

	case "r":
		if m.cache != nil {
			m.notice = "Reloading catalog..."
			return m, m.reloadCatalog()
		}

	case "a":
		if m.advisor == nil {
			m.notice = "Set GEMINI_API_KEY to enable the guide"
			return m, nil
		}
		if !m.asking {
			m.asking = true
			return m, m.askGuide()
		}
	}
	return m, nil
}

func (m *model) setStatus(k models.EvidenceKind, status models.EvidenceStatus) {
	// Evidence is replaced, never mutated in place, so commands already
	// running keep the snapshot they were given.
	next := m.evidence.Clone()
	if status == models.Absent {
		delete(next, k)
	} else {
		next[k] = status
	}
	m.evidence = next
	m.advice = ""
	m.notice = ""
	m.recompute()
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEnter:
		m.state = stateInvestigating
		m.textInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filter = ""
		m.textInput.Reset()
		m.textInput.Blur()
		m.state = stateInvestigating
		m.recompute()
		return m, nil
	}
	m.textInput, cmd = m.textInput.Update(msg)
	m.filter = m.textInput.Value()
	m.ghostCursor = 0
	return m, cmd
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc", "q", "enter", "backspace":
		m.state = stateInvestigating
		return m, nil
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) openDetail(c engine.Classification) {
	m.viewport.SetContent(renderDetail(c, m.viewport.Width))
	m.viewport.GotoTop()
	m.state = stateDetail
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateInvestigating, stateFiltering:
		columns := lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderEvidence(),
			m.renderGhosts(),
			m.renderHints(),
		)
		footer := m.renderStatus()
		if m.state == stateFiltering {
			footer += "\n" + m.textInput.View()
		}
		help := helpStyle.Render("tab: switch pane  space: cycle evidence  x/?/del: confirm/suspect/clear  c: clear all  /: filter  enter: details  r: reload  a: ask guide  q: quit")
		s = lipgloss.JoinVertical(lipgloss.Left, columns, "", footer, "", help)

	case stateDetail:
		s = m.viewport.View() + "\n\n" + helpStyle.Render("esc: back  ↑/↓: scroll")
	}

	return "\n" + s + "\n"
}

func (m model) renderEvidence() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EVIDENCE") + "\n")
	for i, k := range m.engine.Universe() {
		line := fmt.Sprintf("%s %s", statusMarks[m.evidence.Status(k)], k)
		if m.focus == paneEvidence && i == m.evidenceCursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%d/%d confirmed\n", m.summary.Confirmed, m.summary.Total))
	return lipgloss.NewStyle().Width(m.width * 28 / 100).Render(b.String())
}

func (m model) renderGhosts() string {
	var b strings.Builder
	title := "GHOSTS"
	if m.filter != "" {
		title += fmt.Sprintf(" (%q)", m.filter)
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	visible := m.visibleGhosts()
	if len(visible) == 0 {
		b.WriteString("(no ghosts)\n")
	}
	// Keep the cursor on screen when the list is taller than the window.
	rows := max(m.height-10, 5)
	start := 0
	if m.ghostCursor >= rows {
		start = m.ghostCursor - rows + 1
	}
	for i := start; i < len(visible) && i < start+rows; i++ {
		c := visible[i]
		line := fmt.Sprintf("%3d%%  %s", c.Confidence, c.Ghost.Name)
		if m.focus == paneGhosts && i == m.ghostCursor {
			line = cursorStyle.Render(line)
		} else {
			line = bandStyles[c.Band].Render(line)
		}
		b.WriteString(line + "\n")
	}
	return panelStyle.Width(m.width * 30 / 100).Render(b.String())
}

func (m model) renderHints() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CHECK NEXT") + "\n")
	if len(m.hints) == 0 {
		b.WriteString("(nothing left to check)\n")
	}
	for i, h := range m.hints {
		if i == 3 {
			break
		}
		b.WriteString(fmt.Sprintf("%s  %s [%s]\n", h.Equipment, h.Evidence, h.Priority))
	}

	b.WriteString("\n" + titleStyle.Render("TOP MATCH") + "\n")
	if len(m.result.Ranked) > 0 {
		top := m.result.Ranked[0]
		b.WriteString(fmt.Sprintf("%s\n%s\n", top.Ghost.Name, top.Reason))
	}

	if m.asking {
		b.WriteString("\n" + adviceStyle.Render("Asking the guide...") + "\n")
	} else if m.advice != "" {
		b.WriteString("\n" + titleStyle.Render("GUIDE") + "\n" + adviceStyle.Render(m.advice) + "\n")
	}
	return panelStyle.Width(m.width * 38 / 100).Render(b.String())
}

func (m model) renderStatus() string {
	lines := []string{statusStyle.Render(m.summary.Message)}
	for _, issue := range m.validation.Issues {
		lines = append(lines, issueStyle.Render("! "+issue))
	}
	if m.notice != "" {
		lines = append(lines, helpStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func renderDetail(c engine.Classification, width int) string {
	text := lipgloss.NewStyle().Width(max(width, 20))
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(c.Ghost.Name)) + "\n\n")
	if c.Ghost.Description != "" {
		b.WriteString(text.Render(c.Ghost.Description) + "\n\n")
	}
	b.WriteString(fmt.Sprintf("Evidence:   %s\n", c.Ghost.Signature()))
	if c.Ghost.Difficulty != "" {
		b.WriteString(fmt.Sprintf("Difficulty: %s\n", c.Ghost.Difficulty))
	}
	if c.Ghost.HuntThreshold > 0 {
		b.WriteString(fmt.Sprintf("Hunts at:   %d%% average sanity\n", c.Ghost.HuntThreshold))
	}
	b.WriteString(fmt.Sprintf("\nConfidence: %d%% (%s)\n%s\n", c.Confidence, c.Band, c.Reason))
	if len(c.Missing) > 0 {
		b.WriteString(fmt.Sprintf("Still to find: %s\n", models.NewEvidenceSet(c.Missing...)))
	}
	if c.Ghost.Strength != "" {
		b.WriteString("\n" + titleStyle.Render("STRENGTH") + "\n" + text.Render(c.Ghost.Strength) + "\n")
	}
	if c.Ghost.Weakness != "" {
		b.WriteString("\n" + titleStyle.Render("WEAKNESS") + "\n" + text.Render(c.Ghost.Weakness) + "\n")
	}
	return b.String()
}

func (m model) reloadCatalog() tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		c, err := cache.Refresh(context.Background())
		return catalogLoadedMsg{catalog: c, at: cache.FetchedAt(), err: err}
	}
}

func (m model) askGuide() tea.Cmd {
	advisor, state, result, hints, summary := m.advisor, m.evidence, m.result, m.hints, m.summary
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := advisor.Advise(ctx, state, result, hints, summary)
		return adviceMsg{text: text, err: err}
	}
}

// Run loads the catalog through cache and starts the program. advisor may be nil.
func Run(ctx context.Context, cache *models.Cache, advisor Advisor) error {
	catalog, err := cache.Get(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logging.For("tui").Info("starting", "ghosts", catalog.Len(), "guide", advisor != nil)

	p := tea.NewProgram(NewModel(catalog, cache, advisor), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
