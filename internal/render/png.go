package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"datavista/internal/chart"
)

// WritePNG rasterizes the spec to a PNG under dir and returns the written
// path. Only the cartesian kinds (bar, scatter, line) have a raster
// backend; Gantt and heatmap exports are HTML-only.
func WritePNG(spec *chart.Spec, dir, filename string) (string, error) {
	var render func(w io.Writer) error

	switch spec.Kind {
	case chart.KindBar:
		render = barPNG(spec)
	case chart.KindScatter:
		render = cartesianPNG(spec, true)
	case chart.KindLine:
		render = cartesianPNG(spec, false)
	default:
		return "", chart.NewCollaboratorError("renderer",
			fmt.Errorf("PNG export is not supported for %s charts", spec.Kind))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", chart.NewCollaboratorError("renderer", fmt.Errorf("failed to create output dir %q: %w", dir, err))
	}
	if filename == "" {
		filename = defaultFilename(spec, ".png")
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", chart.NewCollaboratorError("renderer", err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return "", chart.NewCollaboratorError("renderer", err)
	}
	return path, nil
}

func barPNG(spec *chart.Spec) func(w io.Writer) error {
	s := spec.Series
	bars := make([]gochart.Value, len(s.X))
	for i := range s.X {
		bars[i] = gochart.Value{Label: s.X[i], Value: s.Y[i]}
	}
	graph := gochart.BarChart{
		Title:    spec.Title,
		Width:    960,
		Height:   600,
		BarWidth: 40,
		Bars:     bars,
	}
	return func(w io.Writer) error {
		return graph.Render(gochart.PNG, w)
	}
}

func cartesianPNG(spec *chart.Spec, dots bool) func(w io.Writer) error {
	s := spec.Series

	// The raster backend needs numeric X values; category labels fall back
	// to their row index.
	xs := make([]float64, len(s.X))
	numericX := true
	for i, cell := range s.X {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			numericX = false
			break
		}
		xs[i] = v
	}
	if !numericX {
		for i := range xs {
			xs[i] = float64(i)
		}
	}

	series := gochart.ContinuousSeries{
		Name:    s.YName,
		XValues: xs,
		YValues: s.Y,
	}
	if dots {
		series.Style = gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    5,
		}
	}

	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  960,
		Height: 600,
		XAxis:  gochart.XAxis{Name: s.XName},
		YAxis:  gochart.YAxis{Name: s.YName},
		Series: []gochart.Series{series},
	}
	return func(w io.Writer) error {
		return graph.Render(gochart.PNG, w)
	}
}
