package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/render"
)

const (
	panelWidth  = 36
	defaultCols = 80
	defaultRows = 24
)

// GraphCapacity is the number of frames the live energy chart shows.
const GraphCapacity = 240

// NewRecorder returns a recorder sized for the live view.
func NewRecorder() *metrics.Recorder {
	return metrics.NewRecorder(GraphCapacity)
}

type frameMsg time.Time

// LiveModel is the bubbletea model of the live view. The driver is ticked
// from Update, so bubbletea's event loop is the frame scheduler.
type LiveModel struct {
	d        *driver.Driver
	doc      *render.Document
	rec      *metrics.Recorder
	canvas   *Canvas
	scale    float64
	interval time.Duration
	elapsed  float64
	running  bool
	showHelp bool
	theme    int
	styles   styles
	err      error
}

// NewLiveModel builds a live view over an attached driver. doc must be the
// surface d was attached to; rec must be registered as d's observer.
func NewLiveModel(d *driver.Driver, doc *render.Document, rec *metrics.Recorder, fps, scale float64) *LiveModel {
	if fps <= 0 {
		fps = 30
	}
	if scale <= 0 {
		scale = 4
	}
	if rec == nil {
		rec = NewRecorder()
	}
	m := &LiveModel{
		d:        d,
		doc:      doc,
		rec:      rec,
		canvas:   NewCanvas(defaultCols-panelWidth, defaultRows),
		scale:    scale,
		interval: time.Duration(float64(time.Second) / fps),
		running:  true,
		styles:   newStyles(Themes[0]),
	}
	m.resizeField()
	return m
}

// SetTheme selects a theme by name.
func (m *LiveModel) SetTheme(name string) {
	for i, t := range Themes {
		if t.Name == name {
			m.theme = i
			m.styles = newStyles(t)
			return
		}
	}
}

func (m *LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "r":
			m.d.Resize()
			m.rec.Reset()
		}
	case tea.MouseMsg:
		x, y := m.cellToField(msg.X, msg.Y)
		b := m.doc.Bounds()
		m.d.PointerMove(x+b.Left, y+b.Top)
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width-panelWidth, msg.Height-1)
		m.resizeField()
	case frameMsg:
		if m.running {
			m.elapsed += float64(m.interval) / float64(time.Millisecond)
			if err := m.d.Tick(m.elapsed); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// cellToField maps a terminal cell to the field point under its center.
func (m *LiveModel) cellToField(col, row int) (float64, float64) {
	return (float64(col)*2 + 1) * m.scale, (float64(row)*4 + 2) * m.scale
}

func (m *LiveModel) resizeField() {
	m.doc.SetSize(float64(m.canvas.Width*2)*m.scale, float64(m.canvas.Height*4)*m.scale)
	m.d.Resize()
}

// Err reports why the view stopped, if it stopped on its own.
func (m *LiveModel) Err() error { return m.err }

func (m *LiveModel) View() string {
	m.canvas.Clear()
	m.canvas.Plot(m.d.Grid(), m.scale)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.canvas.Render(m.canvas.String()),
		m.styles.panel.Render(m.panel()),
	)
}

func (m *LiveModel) panel() string {
	st := m.styles
	var s strings.Builder

	s.WriteString(st.header.Render("WAVEFIELD") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	g := m.d.Grid()
	c := m.d.Cursor()
	row("Status", status)
	row("Time", fmt.Sprintf("%.1fs", m.elapsed/1000))
	row("Frames", fmt.Sprintf("%d", m.d.Frames()))
	row("Grid", fmt.Sprintf("%dx%d", g.Columns(), g.Rows()))
	row("Seed", fmt.Sprintf("%.6f", m.d.Noise().Seed()))
	row("Cursor", fmt.Sprintf("%.0f, %.0f", c.SmoothX, c.SmoothY))
	row("Speed", fmt.Sprintf("%.1f", c.SmoothVel))
	row("Theme", Themes[m.theme].Name)

	if last, ok := m.rec.Last(); ok {
		row("Offset", fmt.Sprintf("%.1f max", last.MaxOffset))
		row("Energy", fmt.Sprintf("%.2f", last.Energy))
	}

	if energy := m.rec.Series("energy"); len(energy) > 1 {
		if len(energy) > GraphCapacity {
			energy = energy[len(energy)-GraphCapacity:]
		}
		chart := asciigraph.Plot(energy,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(st.help.Render("mouse  move cursor\nspace  pause\nt      theme\nr      rebuild grid\nq      quit"))
	} else {
		s.WriteString(st.help.Render("? help"))
	}
	return s.String()
}

// RunLive runs the live view until the user quits.
func RunLive(m *LiveModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}
