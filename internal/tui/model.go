package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/springbar/internal/logger"
	"github.com/san-kum/springbar/internal/progress"
)

const (
	historyLen = 48
	nameWidth  = 10
)

type tickMsg time.Time

type Option func(*Model)

// WithDt sets the simulated seconds advanced per frame.
func WithDt(dt float64) Option {
	return func(m *Model) { m.dt = dt }
}

func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

func WithLogger(l logger.Logger) Option {
	return func(m *Model) { m.log = l }
}

// ExitOnComplete quits once every bar has completed.
func ExitOnComplete() Option {
	return func(m *Model) { m.exitOnComplete = true }
}

// Model drives a progress group at a fixed frame rate and lets the user
// push individual bars around with the keyboard.
type Model struct {
	group *progress.Group
	names []string

	cursor         int
	paused         bool
	quitting       bool
	exitOnComplete bool
	dt             float64
	title          string

	history   map[string][]float64
	lastFrame time.Time
	fps       float64
	lastErr   error

	help    help.Model
	spinner spinner.Model
	log     logger.Logger

	width int
}

func New(group *progress.Group, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = cyan

	m := Model{
		group:   group,
		names:   group.Names(),
		dt:      1.0 / 60,
		title:   "springbar",
		history: make(map[string][]float64),
		help:    help.New(),
		spinner: sp,
		log:     logger.Noop(),
		width:   80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func tick(dt float64) tea.Cmd {
	return tea.Tick(time.Duration(dt*float64(time.Second)), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.dt), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if d := now.Sub(m.lastFrame).Seconds(); d > 0 {
				m.fps = 1 / d
			}
		}
		m.lastFrame = now
		if !m.paused {
			m.step()
		}
		if m.exitOnComplete && m.group.IsAllComplete() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick(m.dt)
	}
	return m, nil
}

func (m *Model) step() {
	if _, err := m.group.TickAll(m.dt); err != nil {
		m.lastErr = err
		m.log.Warn("tick failed: %v", err)
	}
	for _, name := range m.names {
		b, ok := m.group.Get(name)
		if !ok {
			continue
		}
		h := append(m.history[name], b.Position())
		if len(h) > historyLen {
			h = h[len(h)-historyLen:]
		}
		m.history[name] = h
	}
}

func (m Model) selected() (*progress.Bar, string) {
	if len(m.names) == 0 {
		return nil, ""
	}
	name := m.names[m.cursor]
	b, _ := m.group.Get(name)
	return b, name
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keys.ResetAll):
		m.group.ResetAll()
		m.history = make(map[string][]float64)
		return m, nil
	}

	b, name := m.selected()
	if b == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Incr):
		b.Incr()
	case key.Matches(msg, keys.Decr):
		b.Decr()
	case key.Matches(msg, keys.Finish):
		b.Update(1)
	case key.Matches(msg, keys.Zero):
		b.Update(0)
	case key.Matches(msg, keys.Cancel):
		b.Cancel()
		m.log.Info("cancelled %s", name)
	case key.Matches(msg, keys.Reset):
		b.Reset()
		delete(m.history, name)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")

	for i, r := range m.group.RenderAll() {
		bar, _ := m.group.Get(r.Name)
		cursor := "  "
		name := dim.Render(fmt.Sprintf("%-*s", nameWidth, r.Name))
		if i == m.cursor {
			cursor = cyan.Render("▸ ")
			name = white.Render(fmt.Sprintf("%-*s", nameWidth, r.Name))
		}
		b.WriteString(cursor + name + " " + r.Line.ANSI() + " " + m.badge(bar.State()) + "\n")
	}

	if bar, name := m.selected(); bar != nil {
		b.WriteString("\n")
		detail := fmt.Sprintf("%s  pos %s  vel %s  target %s\n%s",
			cyan.Render(name),
			white.Render(fmt.Sprintf("%.3f", bar.Position())),
			white.Render(fmt.Sprintf("%+.3f", bar.Velocity())),
			magenta.Render(fmt.Sprintf("%.2f", bar.Target())),
			sparkline(m.history[name], historyLen))
		b.WriteString(panel.Render(detail) + "\n")
	}

	status := green.Render("● running")
	if m.paused {
		status = yellow.Render("○ paused")
	}
	b.WriteString(fmt.Sprintf("\n%s  %s\n", status, dim.Render(fmt.Sprintf("%.0ffps", m.fps))))
	if m.lastErr != nil {
		b.WriteString(red.Render(m.lastErr.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(keys) + "\n")
	return b.String()
}

func (m Model) badge(s progress.State) string {
	switch s {
	case progress.Animating:
		return m.spinner.View()
	case progress.Completed:
		return green.Render("✓")
	case progress.Cancelled:
		return red.Render("✗")
	default:
		return dimmer.Render("·")
	}
}

// Run takes over the terminal until the user quits.
func Run(group *progress.Group, opts ...Option) error {
	p := tea.NewProgram(New(group, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
