package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"apextract/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseQuerying Phase = iota
	PhaseExporting
	PhaseDone
	PhaseError
)

// Messages for the TUI. The export runs in a goroutine outside the program
// and feeds these in via Program.Send.
type (
	RecordsReadyMsg struct {
		Total int
	}
	ProgressMsg struct {
		Current int
		Total   int
		Outcome domain.ExportOutcome
	}
	DoneMsg struct {
		Tally domain.Tally
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// Config for the TUI
type Config struct {
	LibraryPath string
	Destination string
	Year        int
}

// Model is the main TUI model
type Model struct {
	config   Config
	Phase    Phase
	Tally    domain.Tally
	spinner  spinner.Model
	progress progress.Model
	current  int
	total    int
	lastFile string
	lastSkip string
	Err      error
	Quitting bool
	width    int
	height   int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseQuerying,
		spinner:  s,
		progress: p,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case RecordsReadyMsg:
		m.total = msg.Total
		m.Phase = PhaseExporting
		return m, tickCmd()

	case ProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		switch msg.Outcome.Status {
		case domain.StatusSkipped:
			m.Tally.Skipped++
			m.lastSkip = fmt.Sprintf("%s %s: %s", iconSkipped, msg.Outcome.UUID, msg.Outcome.Reason)
		case domain.StatusError:
			m.Tally.Errors++
			m.lastSkip = fmt.Sprintf("%s %s: %s", iconError, msg.Outcome.UUID, msg.Outcome.Reason)
		default:
			m.Tally.Exported++
			m.lastFile = msg.Outcome.Destination
		}
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Tally = msg.Tally
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseQuerying || m.Phase == PhaseExporting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseExporting {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.current)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd(), m.spinner.Tick)
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseQuerying:
		b.WriteString(fmt.Sprintf("%s Reading library database...", m.spinner.View()))
	case PhaseExporting:
		b.WriteString(m.renderExport())
	case PhaseDone:
		b.WriteString(m.renderCompletion())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📷 apextract")
	subtitle := subtitleStyle.Render(fmt.Sprintf("Exporting %d", m.config.Year))

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Library:     %s", iconFolder, shortenPath(m.config.LibraryPath))),
		dimStyle.Render(fmt.Sprintf("%s Destination: %s", iconFolder, shortenPath(m.config.Destination))),
	)
}

func (m Model) renderExport() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Exporting Photos"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}

	b.WriteString(fmt.Sprintf("  %s Exporting...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d photos", m.current, m.total)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.lastFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(shortenPath(m.lastFile))))
	}
	if m.lastSkip != "" {
		b.WriteString(fmt.Sprintf("  %s\n", warningStyle.Render(m.lastSkip)))
	}

	return b.String()
}

func (m Model) renderCompletion() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Export Complete"))
	b.WriteString("\n\n")

	icon := successStyle.Render(iconExported)
	b.WriteString(fmt.Sprintf("  %s %s\n\n", icon, successStyle.Render("Export finished")))

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Exported:"), statValueStyle.Render(fmt.Sprintf("%d", m.Tally.Exported))))
	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.Tally.Skipped))))
	if m.Tally.Errors > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Errors:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, m.Tally.Errors))))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Total:"), statValueStyle.Render(fmt.Sprintf("%d photos", m.Tally.Total()))))

	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseQuerying:
		help = "Press q to quit"
	case PhaseExporting:
		help = "Exporting photos... Please wait"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
