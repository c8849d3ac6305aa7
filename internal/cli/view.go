package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trailblazer/pkg/config"
	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/projection"
	"github.com/matzehuels/trailblazer/pkg/render"
	"github.com/matzehuels/trailblazer/pkg/route"
	"github.com/matzehuels/trailblazer/pkg/viewport"
)

// Keyboard steps of the interactive map.
const (
	panStep    = 40.0         // device pixels per arrow press
	zoomStep   = 1.25         // scale factor per +/- press
	rotateStep = math.Pi / 36 // radians per [ or ] press
)

// viewCommand creates the view command, an interactive terminal map.
func (c *CLI) viewCommand() *cobra.Command {
	var from, to string
	var debug bool

	cmd := &cobra.Command{
		Use:   "view [network]",
		Short: "Explore a network on an interactive terminal map",
		Long: `Explore a network on an interactive terminal map.

Keys:
  arrows   pan (rotate with the modifier on)
  + / -    zoom around the panel center
  [ / ]    rotate
  m        toggle the rotate modifier
  d        toggle the focus box readout
  0        reset the view
  q        quit

The mouse wheel zooms around the pointer and dragging pans.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			g, err := c.loadNetwork(args[0])
			if err != nil {
				return err
			}
			if from != "" || to != "" {
				if _, err := route.NewRouter(g).FindShortestPath(from, to); err != nil {
					return err
				}
			}
			return runViewer(g, cfg.View, debug)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "highlight the route starting here")
	cmd.Flags().StringVar(&to, "to", "", "highlight the route ending here")
	cmd.Flags().BoolVar(&debug, "debug", false, "show the focus bounding box")

	return cmd
}

// runViewer opens the terminal map of g until the user quits.
func runViewer(g *geo.Graph, cfg config.View, debug bool) error {
	p := projection.NewWebMercator(float64(cfg.Width), float64(cfg.Height), cfg.Zoom)
	m := newMapModel(mapview.New(g, p), cfg.MinPixelWidth, debug)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// =============================================================================
// mapModel - Interactive map
// =============================================================================

// mapModel is the bubbletea model of the terminal map.
type mapModel struct {
	view       *mapview.View
	controller *viewport.Controller
	cols, rows int
	debug      bool

	dragging         bool
	lastCol, lastRow int
	minPixelWidth    float64
	initialZoom      float64
}

// newMapModel resets v and remembers its starting zoom for the reset key.
func newMapModel(v *mapview.View, minPixelWidth float64, debug bool) *mapModel {
	m := &mapModel{
		view:          v,
		controller:    viewport.NewController(v.Viewport()),
		cols:          80,
		rows:          22,
		debug:         debug,
		minPixelWidth: minPixelWidth,
		initialZoom:   v.Projection().ZoomLevel(),
	}
	v.ResetView(minPixelWidth)
	return m
}

func (m *mapModel) Init() tea.Cmd {
	return nil
}

func (m *mapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		m.rows = max(msg.Height-2, 1)
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *mapModel) handleKey(key string) tea.Cmd {
	center := m.panelCenter()
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "left", "h":
		m.controller.OnDrag(panStep, 0)
	case "right", "l":
		m.controller.OnDrag(-panStep, 0)
	case "up", "k":
		m.controller.OnDrag(0, panStep)
	case "down", "j":
		m.controller.OnDrag(0, -panStep)
	case "+", "=":
		m.controller.OnZoomGesture(zoomStep, center)
	case "-", "_":
		m.controller.OnZoomGesture(1/zoomStep, center)
	case "[":
		m.view.Viewport().Rotate(-rotateStep)
	case "]":
		m.view.Viewport().Rotate(rotateStep)
	case "m":
		m.controller.OnRotateModifierChanged(!m.controller.Rotating())
	case "d":
		m.debug = !m.debug
	case "0":
		m.view.Viewport().Reset()
		m.view.Projection().SetZoomLevel(m.initialZoom)
		m.view.ResetView(m.minPixelWidth)
	}
	return nil
}

func (m *mapModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.controller.OnScroll(-1, m.devicePoint(msg.X, msg.Y))
		return
	case tea.MouseButtonWheelDown:
		m.controller.OnScroll(1, m.devicePoint(msg.X, msg.Y))
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.dragging = msg.Button == tea.MouseButtonLeft
		m.lastCol, m.lastRow = msg.X, msg.Y
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		p0 := m.devicePoint(m.lastCol, m.lastRow)
		p1 := m.devicePoint(msg.X, msg.Y)
		m.controller.OnDrag(p1.X-p0.X, p1.Y-p0.Y)
		m.lastCol, m.lastRow = msg.X, msg.Y
	case tea.MouseActionRelease:
		m.dragging = false
	}
}

// devicePoint maps the center of a terminal cell to panel pixels.
func (m *mapModel) devicePoint(col, row int) viewport.Point {
	w, h := m.view.Viewport().PanelSize()
	return viewport.Point{
		X: (float64(col) + 0.5) * w / float64(m.cols),
		Y: (float64(row) + 0.5) * h / float64(m.rows),
	}
}

func (m *mapModel) panelCenter() viewport.Point {
	w, h := m.view.Viewport().PanelSize()
	return viewport.Point{X: w / 2, Y: h / 2}
}

func (m *mapModel) View() string {
	var b strings.Builder

	grid := render.RenderGrid(m.view, m.cols, m.rows)
	highlight := string(render.Glyphs[render.CellHighlight])
	for _, line := range grid.Lines() {
		b.WriteString(strings.ReplaceAll(line, highlight, StyleRoute.Render(highlight)))
		b.WriteString("\n")
	}

	vp := m.view.Viewport()
	mode := "pan"
	if m.controller.Rotating() {
		mode = "rotate"
	}
	status := fmt.Sprintf("zoom %.2f  scale %.2f  angle %.0f°  drag: %s",
		m.view.Projection().ZoomLevel(), vp.Scale(), vp.Angle()*180/math.Pi, mode)
	if m.debug {
		f := vp.Focus()
		status += fmt.Sprintf("  focus %.0f,%.0f %.0fx%.0f", f.X, f.Y, f.W, f.H)
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows pan  +/- zoom  [/] rotate  m modifier  0 reset  q quit"))

	return b.String()
}
