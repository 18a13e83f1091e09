package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// State represents the current state of the TUI
type State int

const (
	StateMenu State = iota
	StateSizes
	StateRunning
	StateResults
)

// Styles for the TUI
type Styles struct {
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Item      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Dim       lipgloss.Style
	Checkmark lipgloss.Style
	Cross     lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // Magenta
		Item:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // White
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		Checkmark: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Cross:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Model is the bubbletea model for pairbench
type Model struct {
	spinner spinner.Model
	styles  *Styles

	state     State
	cursor    int
	sizeIndex int

	algorithms []Algorithm
	selected   Algorithm

	cfg    *Config
	engine *Engine
	agg    *Aggregator
	hooks  exportHooks
	closer func()

	running   RunConfig
	results   []*Result
	statusMsg string
	lastErr   error

	// For async operations
	ctx      context.Context
	cancelFn context.CancelFunc
}

// Messages for async operations
type configDoneMsg struct {
	result *Result
	err    error
}

// NewModel creates the TUI model with exporters wired from cfg.
func NewModel(cfg *Config) (Model, error) {
	env := CaptureEnvironment()
	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel) // keep the alt screen clean

	hooks, closer, err := buildExporters(cfg, env, logger)
	if err != nil {
		return Model{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))

	ctx, cancel := context.WithCancel(context.Background())

	agg := NewAggregator(env)
	agg.OnRunComplete = hooks.onRunComplete

	return Model{
		spinner:    sp,
		styles:     NewStyles(),
		state:      StateMenu,
		algorithms: Algorithms(),
		cfg:        cfg,
		engine:     NewEngine(hooks.onResult, logger),
		agg:        agg,
		hooks:      hooks,
		closer:     closer,
		ctx:        ctx,
		cancelFn:   cancel,
	}, nil
}

// RunTUI starts the interactive interface.
func RunTUI(cfg *Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer m.shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m Model) shutdown() {
	m.cancelFn()
	if m.closer != nil {
		m.closer()
	}
	_ = m.agg.Finish()
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.agg.Append(FailedResult(m.running, msg.err))
			m.state = StateResults
			return m, nil
		}
		m.agg.Append(msg.result)
		m.results = append(m.results, msg.result)

		// Advance to the next size of the selected algorithm
		m.sizeIndex++
		if m.sizeIndex < len(m.selected.Sizes) {
			return m.startConfiguration()
		}
		m.state = StateResults
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelFn()
		return m, tea.Quit

	case "q", "esc":
		switch m.state {
		case StateMenu:
			return m, tea.Quit
		case StateResults:
			m.state = StateMenu
			m.results = nil
			m.lastErr = nil
			return m, nil
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 && (m.state == StateMenu || m.state == StateSizes) {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		limit := len(m.algorithms)
		if m.state == StateSizes {
			limit = len(m.selected.Sizes)
		}
		if m.cursor < limit-1 && (m.state == StateMenu || m.state == StateSizes) {
			m.cursor++
		}
		return m, nil

	case "enter":
		switch m.state {
		case StateMenu:
			m.selected = m.algorithms[m.cursor]
			m.results = nil
			m.sizeIndex = 0
			return m.startConfiguration()
		case StateResults:
			m.state = StateMenu
			m.results = nil
			m.lastErr = nil
			return m, nil
		}
		return m, nil
	}

	return m, nil
}

func (m Model) startConfiguration() (tea.Model, tea.Cmd) {
	size := m.selected.Sizes[m.sizeIndex]
	m.running = m.selected.Configuration(size, m.cfg.Trials)
	m.state = StateRunning
	m.statusMsg = fmt.Sprintf("Running %s (%s), %d trials...", m.selected.Name, size.Label, m.cfg.Trials)

	cfg := m.running
	ctx := m.ctx
	engine := m.engine
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := engine.RunConfiguration(ctx, cfg)
		return configDoneMsg{result: result, err: err}
	})
}

func (m Model) View() string {
	switch m.state {
	case StateMenu:
		return m.viewMenu()
	case StateRunning:
		return m.viewRunning()
	case StateResults:
		return m.viewResults()
	default:
		return ""
	}
}

func (m Model) viewMenu() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("pairbench") + m.styles.Dim.Render("  native vs managed, head to head") + "\n\n")

	for i, alg := range m.algorithms {
		cursor := "  "
		line := fmt.Sprintf("%-12s %s", alg.Name, m.styles.Dim.Render(alg.Description))
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
			line = m.styles.Item.Render(fmt.Sprintf("%-12s ", alg.Name)) + m.styles.Dim.Render(alg.Description)
		}
		sb.WriteString(cursor + line + "\n")
	}

	sb.WriteString("\n" + m.styles.Dim.Render("enter: run all sizes · ↑/↓: move · q: quit") + "\n")
	return sb.String()
}

func (m Model) viewRunning() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("pairbench") + "\n\n")

	for _, r := range m.results {
		sb.WriteString(m.resultLine(r) + "\n")
	}

	sb.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.statusMsg))
	sb.WriteString("\n" + m.styles.Dim.Render("ctrl+c: abort") + "\n")
	return sb.String()
}

func (m Model) viewResults() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("pairbench") + m.styles.Dim.Render("  results: "+m.selected.Name) + "\n\n")

	for _, r := range m.results {
		sb.WriteString(m.resultLine(r) + "\n")
		if !r.Validation.Success {
			for _, d := range r.Validation.Discrepancies {
				sb.WriteString("      " + m.styles.Warning.Render(d) + "\n")
			}
		}
	}

	if m.lastErr != nil {
		sb.WriteString("\n" + m.styles.Error.Render("Error: "+m.lastErr.Error()) + "\n")
	}

	sb.WriteString("\n" + m.styles.Dim.Render("enter/q: back to menu") + "\n")
	return sb.String()
}

func (m Model) resultLine(r *Result) string {
	if r.Failed {
		return fmt.Sprintf("  %s %-8s %s", m.styles.Cross.Render("✗"), r.SizeLabel, m.styles.Error.Render(r.Error))
	}

	mark := m.styles.Checkmark.Render("✓")
	if !r.Validation.Success {
		mark = m.styles.Cross.Render("✗")
	}

	speedupStyle := m.styles.Success
	if r.Speedup < 1.0 {
		// Managed path was faster; unusual enough to highlight
		speedupStyle = m.styles.Warning
	}

	return fmt.Sprintf("  %s %-8s native %s · managed %s · %s",
		mark,
		r.SizeLabel,
		m.styles.Info.Render(formatMs(r.Native.Stats.Mean)),
		m.styles.Info.Render(formatMs(r.Managed.Stats.Mean)),
		speedupStyle.Render(fmt.Sprintf("%.2fx", r.Speedup)))
}

func formatMs(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2fs", ms/1000)
	}
	if ms < 1 {
		return fmt.Sprintf("%.0fµs", ms*1000)
	}
	return fmt.Sprintf("%.1fms", ms)
}
