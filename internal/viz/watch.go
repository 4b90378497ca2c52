package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/physics"
	"github.com/san-kum/metaballs/internal/sim"
)

const (
	historyCapacity = 240
	cursorStep      = 0.05
)

type TickMsg time.Time

type WatchOptions struct {
	Title      string
	FrameDt    float64
	MaxElapsed float64
	Speed      float64
	Threshold  float64
	Cols, Rows int
	Palette    string
}

func DefaultWatchOptions() WatchOptions {
	cfg := sim.DefaultConfig()
	return WatchOptions{
		Title:      "metaballs",
		FrameDt:    cfg.FrameDt,
		MaxElapsed: cfg.MaxElapsed,
		Speed:      cfg.Speed,
		Threshold:  1,
		Cols:       50,
		Rows:       25,
		Palette:    "classic",
	}
}

// WatchModel animates a scene in the terminal.
type WatchModel struct {
	sim     *sim.Simulator
	opts    WatchOptions
	scene   dynamo.Scene
	initial dynamo.Scene

	running       bool
	frames        int
	t             float64
	speed         float64
	cursorX       float64
	cursorY       float64
	palette       int
	energyHistory []float64
	err           error
}

func NewWatchModel(s *sim.Simulator, scene dynamo.Scene, opts WatchOptions) WatchModel {
	if s == nil {
		s = sim.New(nil, nil)
	}
	palette := 0
	for i, p := range Palettes {
		if p.Name == opts.Palette {
			palette = i
		}
	}
	m := WatchModel{
		sim:           s,
		opts:          opts,
		scene:         scene.Clone(),
		initial:       scene.Clone(),
		running:       true,
		speed:         opts.Speed,
		palette:       palette,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	s.Mesher().Weights(m.scene.Sources())
	return m
}

func (m WatchModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.speed *= 1.25
		case "-", "_":
			m.speed *= 0.8
		case "up", "k":
			m.moveCursor(0, cursorStep)
		case "down", "j":
			m.moveCursor(0, -cursorStep)
		case "left", "h":
			m.moveCursor(-cursorStep, 0)
		case "right", "l":
			m.moveCursor(cursorStep, 0)
		case "m":
			if _, _, pinned := m.sim.Cursor(); pinned {
				m.sim.ReleaseCursor()
			} else {
				m.sim.SetCursor(m.cursorX, m.cursorY)
			}
		case "t":
			m.palette = (m.palette + 1) % len(Palettes)
		}
	case TickMsg:
		if m.running {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *WatchModel) step() error {
	elapsed := sim.ClampElapsed(m.opts.FrameDt, m.opts.MaxElapsed) * m.speed
	if _, err := m.sim.Frame(m.scene, elapsed); err != nil {
		return &dynamo.StepError{Step: m.frames, Time: m.t, Wrapped: err}
	}
	m.frames++
	m.t += elapsed

	m.energyHistory = append(m.energyHistory, physics.KineticEnergy(m.scene))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	return nil
}

func (m *WatchModel) moveCursor(dx, dy float64) {
	m.cursorX = min(max(m.cursorX+dx, -1), 1)
	m.cursorY = min(max(m.cursorY+dy, -1), 1)
	if _, _, pinned := m.sim.Cursor(); pinned {
		m.sim.SetCursor(m.cursorX, m.cursorY)
	}
}

func (m *WatchModel) reset() {
	m.scene = m.initial.Clone()
	m.frames = 0
	m.t = 0
	m.speed = m.opts.Speed
	m.energyHistory = m.energyHistory[:0]
	m.sim.Mesher().Weights(m.scene.Sources())
}

// Err reports the step error that ended the program, if any.
func (m WatchModel) Err() error { return m.err }

func (m WatchModel) Frames() int         { return m.frames }
func (m WatchModel) Scene() dynamo.Scene { return m.scene }
func (m WatchModel) Running() bool       { return m.running }
func (m WatchModel) Speed() float64      { return m.speed }

func (m WatchModel) View() string {
	grid := m.sim.Mesher().Grid()
	canvasView := canvasStyle.Render(RenderField(grid, m.opts.Threshold, m.opts.Cols, m.opts.Rows, Palettes[m.palette]))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.opts.Title)) + "\n")
	if m.running {
		s.WriteString(activeStyle.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.frames))
	row("Time", fmt.Sprintf("%.2fs", m.t/1000))
	row("Speed", fmt.Sprintf("%.2fx", m.speed))
	row("Circles", fmt.Sprintf("%d", len(m.scene)))
	row("Min separation", fmt.Sprintf("%.3f", physics.MinSeparation(m.scene)))
	cx, cy, pinned := m.sim.Cursor()
	if !pinned {
		cx, cy = m.cursorX, m.cursorY
	}
	cursor := fmt.Sprintf("(%+.2f, %+.2f)", cx, cy)
	if pinned {
		cursor += " pinned"
	}
	row("Cursor", cursor)
	row("Palette", Palettes[m.palette].Name)
	row("Backend", m.sim.Mesher().Sampler.BackendName())

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed ←↑↓→:Cursor\nM:Pin  T:Palette"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Watch runs the model full-screen until the user quits.
func Watch(m WatchModel) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if wm, ok := final.(WatchModel); ok {
		return wm.Err()
	}
	return nil
}
