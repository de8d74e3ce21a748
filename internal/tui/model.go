// Package tui provides the Bubble Tea dictionary browser.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidict/internal/dictionary"
	"github.com/verte-zerg/tuidict/internal/model"
	"github.com/verte-zerg/tuidict/internal/picker"
	"github.com/verte-zerg/tuidict/internal/session"
)

// Recorder receives every search and random draw.
type Recorder interface {
	Record(ctx context.Context, lookup model.Lookup) error
}

// Model implements the Bubble Tea browser UI.
type Model struct {
	dict     *dictionary.Dictionary
	picker   *picker.Picker
	recorder Recorder

	input    textinput.Model
	viewport viewport.Model

	width  int
	height int

	current *dictionary.Entry
	status  string
	misses  int
	hits    int
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a browser over dict. The recorder may be nil.
func NewModel(dict *dictionary.Dictionary, p *picker.Picker, recorder Recorder) *Model {
	input := textinput.New()
	input.Placeholder = "word"
	input.Prompt = "Search: "
	input.Focus()

	m := &Model{
		dict:     dict,
		picker:   p,
		recorder: recorder,
		input:    input,
		viewport: viewport.New(0, 0),
	}
	m.renderContent()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContent()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.search(m.input.Value())
			return m, nil
		case tea.KeyCtrlR:
			m.random()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	header := headerStyle.Render(m.dict.Header)
	parts := []string{header, m.input.View(), m.viewport.View()}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m *Model) search(term string) {
	term = strings.TrimSpace(term)
	entry, found := m.dict.Find(term)
	m.record(model.Lookup{Kind: model.LookupSearch, Term: term, Found: found, EntryName: entry.Name})
	if !found {
		m.misses++
		m.status = "Word not found."
		return
	}
	m.hits++
	m.show(entry)
}

func (m *Model) random() {
	entry, ok := m.picker.Pick(m.dict)
	if !ok {
		m.status = "Error Dictionary empty!!!"
		return
	}
	m.record(model.Lookup{Kind: model.LookupRandom, Found: true, EntryName: entry.Name})
	m.show(entry)
}

func (m *Model) show(entry dictionary.Entry) {
	m.current = &entry
	m.status = ""
	m.renderContent()
	m.viewport.GotoTop()
}

func (m *Model) record(lookup model.Lookup) {
	if m.recorder == nil {
		return
	}
	lookup.LookedUpAt = time.Now()
	lookup.DictionaryPath = m.dict.Path
	if err := m.recorder.Record(context.Background(), lookup); err != nil {
		logErrf("failed to record lookup: %v\n", err)
	}
}

func (m *Model) updateLayout() {
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	m.viewport.Width = contentWidth
	m.input.Width = contentWidth
	// header, input, status and footer lines
	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.viewport.Height = bodyHeight
}

func (m *Model) renderContent() {
	if m.current == nil {
		m.viewport.SetContent(fmt.Sprintf("%d entries loaded. Type a word and press Enter.", m.dict.Len()))
		return
	}
	content := session.FormatEntry(*m.current, m.viewport.Width, labelStyle)
	m.viewport.SetContent(strings.TrimPrefix(content, "\n"))
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Entries %d", m.dict.Len()),
		fmt.Sprintf("Found %d · Missed %d", m.hits, m.misses),
		"enter search · ctrl+r random · esc quit",
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
