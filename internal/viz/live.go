package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const historyCapacity = 2000

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Sample is one progress report from a running simulation.
type Sample struct {
	Index   int
	Time    float64
	EM      float64
	Kinetic float64
}

// DoneMsg ends the live view; Err is nil on a completed run.
type DoneMsg struct {
	Err error
}

// Monitor is a live terminal view of an in-flight run. Samples arrive
// on a channel fed by the simulation's progress hook; quitting the
// view cancels the run through the provided function.
type Monitor struct {
	title   string
	tMax    float64
	samples int

	ch     <-chan Sample
	cancel func()

	last    Sample
	total   []float64
	em      []float64
	done    bool
	err     error
	started bool
}

func NewMonitor(title string, tMax float64, samples int, ch <-chan Sample, cancel func()) Monitor {
	return Monitor{
		title:   title,
		tMax:    tMax,
		samples: samples,
		ch:      ch,
		cancel:  cancel,
		total:   make([]float64, 0, historyCapacity),
		em:      make([]float64, 0, historyCapacity),
	}
}

func (m Monitor) listen() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.ch
		if !ok {
			return DoneMsg{}
		}
		return s
	}
}

func (m Monitor) Init() tea.Cmd {
	return m.listen()
}

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			if m.done {
				return m, tea.Quit
			}
		}
	case Sample:
		m.started = true
		m.last = msg
		m.em = append(m.em, msg.EM)
		m.total = append(m.total, msg.EM+msg.Kinetic)
		if len(m.total) > historyCapacity {
			m.em = m.em[1:]
			m.total = m.total[1:]
		}
		return m, m.listen()
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Monitor) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := "RUNNING"
	if m.done {
		status = "DONE"
		if m.err != nil {
			status = errStyle.Render("FAILED: " + m.err.Error())
		}
	} else if !m.started {
		status = "STARTING"
	}
	s.WriteString(status + "\n\n")

	if len(m.total) > 1 {
		chart := asciigraph.Plot(m.total, asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("total energy"))
		s.WriteString(chartStyle.Render(chart) + "\n")
		chart = asciigraph.Plot(m.em, asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("EM energy"))
		s.WriteString(chartStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f / %.2f", m.last.Time, m.tMax)) + "\n")
	s.WriteString(labelStyle.Render("Sample") + valueStyle.Render(fmt.Sprintf("%d / %d", m.last.Index+1, m.samples)) + "\n")
	s.WriteString(labelStyle.Render("EM") + valueStyle.Render(fmt.Sprintf("%.6g", m.last.EM)) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.6g", m.last.Kinetic)) + "\n")
	s.WriteString(labelStyle.Render("Total") + valueStyle.Render(fmt.Sprintf("%.6g", m.last.EM+m.last.Kinetic)) + "\n")

	s.WriteString(helpStyle.Render("Q: cancel and quit"))
	return statsStyle.Render(s.String())
}
