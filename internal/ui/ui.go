package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/aziis98/trimlines"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Lipgloss styles
	docStyle = lipgloss.NewStyle().
			Margin(1, 2, 0, 2)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	optionOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)
	optionOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	lineEndStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
)

// UI handles the interactive terminal user interface
type UI struct {
	trim    trimlines.Config
	verbose bool
}

// New creates a new UI handler
func New(trim trimlines.Config, verbose bool) *UI {
	return &UI{
		trim:    trim,
		verbose: verbose,
	}
}

// HandleLiveCommand starts the interactive preview, seeded with initial
func (u *UI) HandleLiveCommand(initial string) error {
	model := u.initialLiveModel(initial)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// --- Bubble Tea Model for the live preview ---

type liveModel struct {
	input    textarea.Model
	output   viewport.Model
	trim     trimlines.Config
	verbose  bool
	width    int
	height   int
	lastText string
	trimmed  string
}

func (u *UI) initialLiveModel(initial string) liveModel {
	ta := textarea.New()
	ta.Placeholder = "Paste or type some indented text..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(40) // Initial size, will be updated
	ta.SetHeight(10)
	ta.SetValue(initial)
	ta.Focus()

	vp := viewport.New(40, 10)
	vp.Style = paneStyle

	m := liveModel{
		input:   ta,
		output:  vp,
		trim:    u.trim,
		verbose: u.verbose,
		width:   80,
	}
	m.refresh()
	return m
}

func (m liveModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Two panes side by side, reserve space for title, status and help
		paneWidth := max(20, (msg.Width-6)/2)
		paneHeight := max(5, msg.Height-7)
		m.input.SetWidth(paneWidth)
		m.input.SetHeight(paneHeight)
		m.output.Width = paneWidth
		m.output.Height = paneHeight + 2

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.trim.TrimLeftToLeastIndent = !m.trim.TrimLeftToLeastIndent
			m.refresh()
			return m, nil
		case "f2":
			m.trim.TrimVerticalStart = !m.trim.TrimVerticalStart
			m.refresh()
			return m, nil
		case "f3":
			m.trim.TrimVerticalEnd = !m.trim.TrimVerticalEnd
			m.refresh()
			return m, nil
		case "pgup":
			m.output.PageUp()
			return m, nil
		case "pgdown":
			m.output.PageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.input.Value() != m.lastText {
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

// refresh recomputes the trimmed output for the current input and options
func (m *liveModel) refresh() {
	m.lastText = m.input.Value()
	m.trimmed = m.trim.Trim(m.lastText)
	if m.verbose {
		log.Printf("refresh: %s, %d -> %d bytes", m.trim, len(m.lastText), len(m.trimmed))
	}
	m.output.SetContent(renderOutput(m.trimmed))
}

// renderOutput marks the end of every line so trailing blank lines stay visible
func renderOutput(out string) string {
	if out == "" {
		return helpStyle.Render("(empty)")
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, " ", "·") + lineEndStyle.Render("⏎")
	}
	return strings.Join(lines, "\n")
}

func renderOption(key, name string, on bool) string {
	if on {
		return fmt.Sprintf("%s %s", helpStyle.Render(key), optionOnStyle.Render("[x] "+name))
	}
	return fmt.Sprintf("%s %s", helpStyle.Render(key), optionOffStyle.Render("[ ] "+name))
}

func (m liveModel) View() string {
	content := titleStyle.Render("trimlines live preview") + "\n"

	content += strings.Join([]string{
		renderOption("F1", "least indent", m.trim.TrimLeftToLeastIndent),
		renderOption("F2", "leading blank lines", m.trim.TrimVerticalStart),
		renderOption("F3", "trailing blank lines", m.trim.TrimVerticalEnd),
	}, "  ") + "\n"

	content += lipgloss.JoinHorizontal(
		lipgloss.Top,
		paneStyle.Render(m.input.View()),
		" ",
		m.output.View(),
	)

	content += "\n" + helpStyle.Render("Press ctrl+c/esc to quit • pgup/pgdown to scroll the output")

	return docStyle.Render(content)
}
