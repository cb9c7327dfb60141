package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/solver"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type tickMsg time.Time
type progressMsg solver.Progress
type attemptMsg solver.AttemptResult
type doneMsg struct{ err error }

const barWidth = 30

// Model
type solveModel struct {
	cancel context.CancelFunc

	progress solver.Progress
	started  bool
	attempts []solver.AttemptResult

	startTime time.Time
	elapsed   time.Duration

	done     bool
	err      error
	quitting bool
}

func newSolveModel(cancel context.CancelFunc) *solveModel {
	return &solveModel{
		cancel:    cancel,
		startTime: time.Now(),
	}
}

func (m *solveModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *solveModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.startTime)
		return m, m.tickCmd()

	case progressMsg:
		m.progress = solver.Progress(msg)
		m.started = true

	case attemptMsg:
		m.attempts = append(m.attempts, solver.AttemptResult(msg))

	case doneMsg:
		m.done = true
		m.err = msg.err
		m.elapsed = time.Since(m.startTime)
	}

	return m, nil
}

func (m *solveModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Pocket Cube Genetic Solver"))
	b.WriteString("\n\n")

	if !m.started {
		b.WriteString(statusStyle.Render("Building population..."))
		b.WriteString("\n")
	} else {
		p := m.progress
		b.WriteString(fmt.Sprintf("Attempt:    %d   Elapsed: %s\n", p.Attempt, formatDuration(m.elapsed)))
		b.WriteString(fmt.Sprintf("Scramble:   %s\n", moveStyle.Render(pocketcube.FormatActions(p.Scramble))))
		b.WriteString(fmt.Sprintf("Generation: %d\n", p.Generation))
		b.WriteString(fmt.Sprintf("Turns:      %d of %d unlocked", p.Turns-p.RestrictedTurns, p.Turns))
		if p.Restarts > 0 {
			b.WriteString(statusStyle.Render(fmt.Sprintf("  (%d restarts)", p.Restarts)))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Stagnation: %d\n", p.Stagnation))
		b.WriteString("\n")

		b.WriteString(fmt.Sprintf("Fitness:    %s %d / %d\n", fitnessBar(p.BestFitness, p.PerfectScore, barWidth), p.BestFitness, p.PerfectScore))
		b.WriteString(fmt.Sprintf("Average:    %.1f\n", p.AverageFitness))
		b.WriteString(fmt.Sprintf("Phase:      %s", phaseStyle.Render(p.Phase.DisplayName())))
		if p.HighestPhase > p.Phase {
			b.WriteString(statusStyle.Render(fmt.Sprintf("  (reached %s)", p.HighestPhase.DisplayName())))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Best:       %s\n", moveStyle.Render(pocketcube.FormatActions(p.Best))))
	}

	if len(m.attempts) > 0 {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("Attempts"))
		b.WriteString("\n")
		for _, a := range m.attempts {
			status := "failed"
			if a.Solved {
				status = phaseStyle.Render("SOLVED")
			}
			b.WriteString(fmt.Sprintf("  #%d  %s  highest %d  %d gens  %s\n",
				a.Attempt, status, a.HighestFitness, a.Generations, formatDuration(a.Duration)))
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "q=stop"
	if m.done {
		help = "Finished | q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// fitnessBar renders best/perfect as a bar of width cells.
func fitnessBar(best, perfect, width int) string {
	filled := 0
	if perfect > 0 {
		filled = best * width / perfect
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
