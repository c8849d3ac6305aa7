package cli

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/trailblazer/pkg/geo"
	"github.com/matzehuels/trailblazer/pkg/mapview"
)

func testModel(t *testing.T) *mapModel {
	t.Helper()
	g := geo.New()
	g.AddIntersection("A", 43.1300, -77.6300)
	g.AddIntersection("B", 43.1310, -77.6250)
	if _, err := g.AddRoad("AB", "A", "B"); err != nil {
		t.Fatal(err)
	}
	return newMapModel(mapview.NewDefault(g), mapview.DefaultMinPixelWidth, false)
}

func press(m *mapModel, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "left", "right", "up", "down":
		msg = tea.KeyMsg{Type: map[string]tea.KeyType{
			"left": tea.KeyLeft, "right": tea.KeyRight, "up": tea.KeyUp, "down": tea.KeyDown,
		}[key]}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestMapModelPanAndZoom(t *testing.T) {
	m := testModel(t)
	vp := m.view.Viewport()
	tx0, ty0 := vp.Translate()

	press(m, "left")
	if tx, ty := vp.Translate(); tx != tx0+panStep || ty != ty0 {
		t.Errorf("left arrow translate = (%v, %v), want (%v, %v)", tx, ty, tx0+panStep, ty0)
	}

	press(m, "+")
	if math.Abs(vp.Scale()-zoomStep) > 1e-12 {
		t.Errorf("scale after + = %v, want %v", vp.Scale(), zoomStep)
	}
	press(m, "-")
	if math.Abs(vp.Scale()-1) > 1e-12 {
		t.Errorf("scale after +- = %v, want 1", vp.Scale())
	}
}

func TestMapModelRotate(t *testing.T) {
	m := testModel(t)
	vp := m.view.Viewport()

	press(m, "]")
	if math.Abs(vp.Angle()-rotateStep) > 1e-12 {
		t.Errorf("angle after ] = %v", vp.Angle())
	}

	press(m, "m")
	if !m.controller.Rotating() {
		t.Fatal("m should hold the rotate modifier")
	}
	tx0, ty0 := vp.Translate()
	press(m, "up")
	if tx, ty := vp.Translate(); tx != tx0 || ty != ty0 {
		t.Error("arrows should rotate, not pan, while the modifier is held")
	}
	if want := rotateStep + panStep*math.Pi/500; math.Abs(vp.Angle()-want) > 1e-12 {
		t.Errorf("angle = %v, want %v", vp.Angle(), want)
	}
}

func TestMapModelReset(t *testing.T) {
	m := testModel(t)
	want := m.view.Viewport().State()

	press(m, "+")
	press(m, "]")
	press(m, "left")
	press(m, "0")

	if got := m.view.Viewport().State(); got != want {
		t.Errorf("state after reset = %+v, want %+v", got, want)
	}
}

func TestMapModelScroll(t *testing.T) {
	m := testModel(t)
	m.Update(tea.MouseMsg{X: 40, Y: 11, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if math.Abs(m.view.Viewport().Scale()-1.1) > 1e-12 {
		t.Errorf("scale after wheel up = %v, want 1.1", m.view.Viewport().Scale())
	}
}

func TestMapModelDrag(t *testing.T) {
	m := testModel(t)
	vp := m.view.Viewport()
	tx0, _ := vp.Translate()

	m.Update(tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{X: 12, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m.Update(tea.MouseMsg{X: 12, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if tx, _ := vp.Translate(); math.Abs(tx-tx0-2*1280.0/80) > 1e-9 {
		t.Errorf("drag moved x by %v, want %v", tx-tx0, 2*1280.0/80)
	}
}

func TestMapModelViewAndQuit(t *testing.T) {
	m := testModel(t)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.cols != 60 || m.rows != 18 {
		t.Errorf("grid = %dx%d, want 60x18", m.cols, m.rows)
	}

	out := m.View()
	if !strings.Contains(out, "o") || !strings.Contains(out, "q quit") {
		t.Errorf("view output missing map or help:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 19 {
		t.Errorf("view has %d newlines, want 19", lines)
	}

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
