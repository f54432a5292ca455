package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/emerge/internal/entropy"
)

const (
	liveWidth    = 70
	liveHeight   = 8
	historyLimit = 600
	stepsPerTick = 5
)

type tickMsg time.Time

// liveModel steps the simulation inside the bubbletea event loop and
// keeps a rolling window of the three channels.
type liveModel struct {
	sys    entropy.System
	integ  entropy.Integrator
	regime string

	state entropy.State
	x0    entropy.State
	t     float64
	dt    float64
	until float64

	infoHist    []float64
	meaningHist []float64
	consHist    []float64

	running bool
	failed  error
}

// NewLive builds the live view for one configured run.
func NewLive(sys entropy.System, integ entropy.Integrator, x0 entropy.State, cfg entropy.Config, regime string) tea.Model {
	return liveModel{
		sys:         sys,
		integ:       integ,
		regime:      regime,
		state:       x0,
		x0:          x0,
		dt:          cfg.Dt,
		until:       cfg.Duration,
		infoHist:    []float64{x0.Info},
		meaningHist: []float64{x0.Meaning},
		consHist:    []float64{0},
		running:     true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m liveModel) Init() tea.Cmd { return tick() }

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.x0
			m.t = 0
			m.infoHist = []float64{m.x0.Info}
			m.meaningHist = []float64{m.x0.Meaning}
			m.consHist = []float64{0}
			m.failed = nil
			m.running = true
		}
		return m, nil

	case tickMsg:
		if m.running && m.failed == nil && m.t < m.until {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *liveModel) advance() {
	harvester, coupled := m.sys.(entropy.Harvester)

	for i := 0; i < stepsPerTick && m.t < m.until; i++ {
		next := m.integ.Step(m.sys, m.state, m.t, m.dt)
		if coupled {
			next = harvester.Harvest(m.state, next)
		}
		if !next.Valid() {
			m.failed = &entropy.InstabilityError{Time: m.t + m.dt, State: next}
			m.running = false
			return
		}

		cons := (m.state.Meaning - next.Meaning) / m.dt
		if cons < 0 {
			cons = 0
		}

		m.state = next
		m.t += m.dt

		m.infoHist = trim(append(m.infoHist, next.Info))
		m.meaningHist = trim(append(m.meaningHist, next.Meaning))
		m.consHist = trim(append(m.consHist, cons))
	}
}

func trim(h []float64) []float64 {
	if len(h) > historyLimit {
		return h[len(h)-historyLimit:]
	}
	return h
}

func (m liveModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("emerge live — %s regime", m.regime)))
	b.WriteString("\n")

	status := "running"
	switch {
	case m.failed != nil:
		status = pausedStyle.Render(fmt.Sprintf("unstable: %v", m.failed))
	case !m.running:
		status = pausedStyle.Render("paused")
	case m.t >= m.until:
		status = "done"
	}

	rows := [][2]string{
		{"t", fmt.Sprintf("%.2f / %.2f", m.t, m.until)},
		{"info entropy", fmt.Sprintf("%.4f", m.state.Info)},
		{"meaning", fmt.Sprintf("%.4f", m.state.Meaning)},
		{"status", status},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]))
		b.WriteString(valueStyle.Render(row[1]))
		b.WriteString("\n")
	}

	for _, g := range []struct {
		caption string
		data    []float64
	}{
		{"informational entropy", m.infoHist},
		{"meaning entropy", m.meaningHist},
		{"construction signal", m.consHist},
	} {
		if len(g.data) < 2 {
			continue
		}
		b.WriteString(graphStyle.Render(asciigraph.Plot(g.data,
			asciigraph.Height(liveHeight),
			asciigraph.Width(liveWidth),
			asciigraph.Caption(g.caption),
		)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	return b.String()
}

// RunLive blocks in the live view until the user quits.
func RunLive(sys entropy.System, integ entropy.Integrator, x0 entropy.State, cfg entropy.Config, regime string) error {
	_, err := tea.NewProgram(NewLive(sys, integ, x0, cfg, regime), tea.WithAltScreen()).Run()
	return err
}
