package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/render"
	"github.com/Aman-CERP/postsearch/internal/session"
	"github.com/Aman-CERP/postsearch/internal/source"
)

// Panel key bindings.
const (
	keyToggle     = "ctrl+f"
	keyOpen       = "/"
	keyQuit       = "ctrl+c"
	keyQuitClosed = "q"
	keySelect     = "enter"
)

// loader is implemented by retrievers that fetch their data up front.
type loader interface {
	Load(ctx context.Context) error
	Len() int
}

type (
	// debouncedMsg signals that typing paused. The payload is the value that
	// started the window; the live input is what gets searched.
	debouncedMsg string
	// outcomeMsg carries a finished query back to the event loop.
	outcomeMsg session.Outcome
	// indexLoadedMsg reports the one-time index load.
	indexLoadedMsg struct {
		records int
		err     error
	}
)

// Model is the bubbletea model of the search panel. It is also the panel
// the session drives, so every session call happens inside Update.
type Model struct {
	ctx     context.Context
	cfg     Config
	styles  Styles
	sess    *session.Session
	input   textinput.Model
	visible bool
	results render.ResultList
	cursor  int

	indexLoading bool
	indexRecords int
	indexErr     error

	width    int
	height   int
	selected string
	quitting bool
}

// NewModel creates the panel and its session over retriever.
func NewModel(ctx context.Context, retriever source.Retriever, cfg Config, opts session.Options) (*Model, error) {
	in := textinput.New()
	in.Placeholder = "Search posts"
	in.Prompt = "› "
	in.CharLimit = 256

	m := &Model{
		ctx:     ctx,
		cfg:     cfg,
		styles:  GetStyles(cfg.NoColor || DetectNoColor()),
		input:   in,
		results: render.Cleared(),
		width:   80,
		height:  24,
	}
	m.input.PromptStyle = m.styles.Prompt

	sess, err := session.New(m, retriever, opts)
	if err != nil {
		return nil, err
	}
	m.sess = sess

	if _, ok := retriever.(loader); ok {
		m.indexLoading = true
	}
	if cfg.StartOpen {
		sess.Toggle()
	}
	return m, nil
}

// InputValue implements session.Ports.
func (m *Model) InputValue() string { return m.input.Value() }

// SetInputValue implements session.Ports.
func (m *Model) SetInputValue(v string) { m.input.SetValue(v) }

// SetResults implements session.Ports.
func (m *Model) SetResults(list render.ResultList) {
	m.results = list
	m.cursor = 0
}

// SetPanelVisible implements session.Ports.
func (m *Model) SetPanelVisible(visible bool) {
	m.visible = visible
	if !visible {
		m.input.Blur()
	}
}

// FocusInput implements session.Ports.
func (m *Model) FocusInput() {
	_ = m.input.Focus()
}

// Selected returns the absolute URL of the chosen post, or "".
func (m *Model) Selected() string {
	return m.selected
}

// Results returns the list currently shown.
func (m *Model) Results() render.ResultList {
	return m.results
}

// Visible reports whether the panel is open.
func (m *Model) Visible() bool {
	return m.visible
}

// Close releases the session.
func (m *Model) Close() {
	m.sess.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitDebounced(), textinput.Blink}
	if l, ok := m.sess.Retriever().(loader); ok {
		cmds = append(cmds, func() tea.Msg {
			err := l.Load(m.ctx)
			return indexLoadedMsg{records: l.Len(), err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitDebounced() tea.Cmd {
	ch := m.sess.Debounced()
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return debouncedMsg(v)
	}
}

func (m *Model) run(q session.Query) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(m.sess.Run(m.ctx, q))
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-10)
		return m, nil

	case indexLoadedMsg:
		m.indexLoading = false
		m.indexRecords = msg.records
		m.indexErr = msg.err
		return m, nil

	case debouncedMsg:
		next := m.waitDebounced()
		// The value may have been queued before an Escape; the input as it
		// is now decides what to search.
		if !m.visible {
			return m, next
		}
		q, ok := m.sess.Dispatch(m.input.Value())
		if !ok {
			return m, next
		}
		return m, tea.Batch(next, m.run(q))

	case outcomeMsg:
		m.sess.Apply(session.Outcome(msg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keyQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.visible {
		switch key {
		case keyToggle, keyOpen:
			m.sess.Toggle()
			return m, textinput.Blink
		case keyQuitClosed:
			m.quitting = true
			return m, tea.Quit
		}
		m.sess.HandleKey(key)
		return m, nil
	}

	switch key {
	case keyToggle:
		m.sess.Toggle()
		return m, nil
	case session.KeyEscape:
		m.sess.HandleKey(key)
		return m, nil
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < m.results.Len()-1 {
			m.cursor++
		}
		return m, nil
	case keySelect:
		if m.cursor < m.results.Len() {
			m.selected = source.Absolute(m.cfg.BaseURL, m.results.Rows[m.cursor].Link)
			return m, tea.Quit
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.sess.InputChanged()
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	width := max(40, m.width-4)
	var sections []string
	sections = append(sections, m.styles.Header.Render(m.cfg.Title))

	if !m.visible {
		sections = append(sections, m.styles.Dim.Render("/ or ctrl+f search • q quit"))
		return strings.Join(sections, "\n") + "\n" + m.renderStatus()
	}

	sections = append(sections, m.input.View(), "")
	sections = append(sections, m.renderResults(width)...)

	panel := m.styles.Panel.Width(width).Render(strings.Join(sections, "\n"))
	return panel + "\n" + m.renderStatus()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func (m *Model) renderResults(width int) []string {
	switch m.results.State {
	case render.StateCleared:
		return nil
	case render.StateFailed:
		return []string{m.styles.Error.Render(m.results.Message)}
	case render.StateNoResults:
		return []string{m.styles.Placeholder.Render(m.results.Message)}
	}

	// Each row takes three lines: meta, excerpt, spacer.
	perPage := max(1, (m.height-8)/3)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(m.results.Len(), start+perPage)

	plain := func(s string) string { return lineBreaks.Replace(s) }
	mark := func(s string) string { return m.styles.Highlight.Render(lineBreaks.Replace(s)) }

	var lines []string
	for i := start; i < end; i++ {
		row := m.results.Rows[i]
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Selected.Render("▌ ")
		}
		meta := m.styles.Author.Render(row.Author) + "  " + m.styles.Date.Render(row.Date)
		excerpt := lipgloss.NewStyle().Width(width - 4).Render(row.Excerpt.Render(plain, mark))
		lines = append(lines, marker+meta)
		for _, l := range strings.Split(excerpt, "\n") {
			lines = append(lines, "  "+l)
		}
		if i < end-1 {
			lines = append(lines, "")
		}
	}
	return lines
}

func (m *Model) renderStatus() string {
	mode := string(m.sess.Retriever().Mode())
	var status string
	switch {
	case m.indexLoading:
		status = fmt.Sprintf("%s • loading index…", mode)
	case m.indexErr != nil:
		status = m.styles.Warning.Render(fmt.Sprintf("%s • index unavailable (%s)", mode, errors.GetCode(m.indexErr)))
	case m.indexRecords > 0:
		status = fmt.Sprintf("%s • %d posts", mode, m.indexRecords)
	default:
		status = mode
	}
	if m.visible {
		if n := m.results.Len(); n > 0 {
			status += fmt.Sprintf(" • %d/%d", m.cursor+1, n)
		}
		status += " • ↑/↓ move • enter open • esc close"
	}
	return m.styles.Dim.Render(status)
}

// Run shows the panel until the user quits or picks a post, and returns the
// picked post's URL.
func Run(ctx context.Context, m *Model) (string, error) {
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(m.cfg.Output),
	)
	if _, err := p.Run(); err != nil {
		return "", fmt.Errorf("search panel: %w", err)
	}
	return m.selected, nil
}
