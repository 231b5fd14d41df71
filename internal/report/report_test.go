package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/qdyn/internal/store"
)

func sineSeries(n int) ([]float64, []float64, []float64) {
	times := make([]float64, n)
	sin := make([]float64, n)
	cos := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) * 0.1
		times[i] = t
		sin[i] = math.Sin(t)
		cos[i] = math.Cos(t)
	}
	return times, sin, cos
}

func TestRenderFigure(t *testing.T) {
	times, sin, cos := sineSeries(100)
	series := map[string][]float64{
		"population": sin,
		"coherence":  cos,
		"entropy":    sin,
		"photons":    cos,
	}

	path := filepath.Join(t.TempDir(), "figure.png")
	err := RenderFigure(path, times, series, []string{"population", "coherence", "entropy", "photons"}, 10, 8)
	if err != nil {
		t.Fatalf("render figure: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat figure: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty figure file")
	}
}

func TestRenderFigureMissingSeries(t *testing.T) {
	times, sin, _ := sineSeries(10)
	series := map[string][]float64{"population": sin}

	path := filepath.Join(t.TempDir(), "figure.png")
	err := RenderFigure(path, times, series, []string{"population", "coherence", "entropy", "photons"}, 10, 8)
	if err == nil {
		t.Fatal("expected error for missing series")
	}
}

func TestRenderFigureWrongPanelCount(t *testing.T) {
	err := RenderFigure("ignored.png", nil, nil, []string{"population"}, 10, 8)
	if err == nil {
		t.Fatal("expected error for wrong panel count")
	}
}

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}

	if c.Grid[0][0] == 0x2800 {
		t.Error("expected dot at (0,0)")
	}
	if c.Grid[1][3] == 0x2800 {
		t.Error("expected dot at (7,7)")
	}

	// Out of range is a no-op.
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected lit cells along the line")
	}
}

func TestPhasePortrait(t *testing.T) {
	_, sin, cos := sineSeries(200)
	c := PhasePortrait(cos, sin, 40, 12)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	// A full circle should touch a good fraction of the canvas border.
	if lit < 20 {
		t.Errorf("expected a dense orbit, got %d lit cells", lit)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 1)

	svg := CanvasToSVG(c, 4)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("expected at least one dot circle")
	}
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should yield empty string")
	}
}

func TestPlotSeries(t *testing.T) {
	_, sin, _ := sineSeries(50)

	out := PlotSeries("population", sin, 60, 10)
	if out == "" {
		t.Fatal("empty plot")
	}
	if PlotSeries("empty", nil, 60, 10) != "" {
		t.Error("empty series should yield empty string")
	}
}

func TestSummary(t *testing.T) {
	meta := &store.RunMetadata{
		ID:         "two_qubit_1",
		Model:      "two_qubit",
		Integrator: "rk4",
		Dt:         0.005,
		Duration:   10,
		StepsTaken: 2000,
		TraceDrift: 2.5e-10,
		Metrics:    map[string]float64{"final_purity": 0.82},
	}

	out := Summary(meta)
	for _, want := range []string{"two_qubit_1", "rk4", "final_purity"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if strings.Contains(out, "warning") {
		t.Error("unexpected drift warning")
	}

	meta.TraceDrift = 0.01
	if !strings.Contains(Summary(meta), "warning") {
		t.Error("expected drift warning")
	}
}
