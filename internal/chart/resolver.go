package chart

import (
	"fmt"
	"strings"
	"time"

	"datavista/internal/dataset"
)

// Resolve validates a chart request against a dataset and produces the Spec
// the renderer consumes. It is pure: the dataset is never mutated, and the
// same (dataset, request) pair always resolves to an identical Spec.
//
// Validation order is fixed: empty dataset, missing required selections,
// unknown columns, color scale membership, then kind-specific coercion.
func Resolve(ds *dataset.Dataset, req *Request) (*Spec, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, req.Kind)
	}
	if ds.NumRows() == 0 {
		return nil, ErrEmptyDataset
	}

	selections := req.requiredSelections()
	for _, sel := range selections {
		if strings.TrimSpace(sel.column) == "" {
			return nil, &MissingSelectionError{Role: sel.role}
		}
	}
	for _, sel := range selections {
		if !ds.HasColumn(sel.column) {
			return nil, &UnknownColumnError{Column: sel.column}
		}
	}
	if req.Color.Valid && !ds.HasColumn(req.Color.Name) {
		return nil, &UnknownColumnError{Column: req.Color.Name}
	}
	if req.ColorScale != "" && !ValidColorScale(req.ColorScale) {
		return nil, &UnsupportedColorScaleError{Scale: req.ColorScale}
	}

	spec := &Spec{
		Kind:       req.Kind,
		Dataset:    ds.Name,
		ColorScale: req.ColorScale,
		Roles:      make(map[string]string, len(selections)+1),
	}
	for _, sel := range selections {
		spec.Roles[sel.role] = sel.column
	}

	switch req.Kind {
	case KindGantt:
		gantt, err := deriveGantt(ds, req)
		if err != nil {
			return nil, err
		}
		spec.Gantt = gantt
		spec.Title = "Gantt Chart"
	case KindHeatmap:
		xs, _ := ds.Column(req.X)
		ys, _ := ds.Column(req.Y)
		values, _ := ds.Column(req.Value)
		spec.Pivot = derivePivot(req.X, req.Y, req.Value, xs, ys, values)
		spec.Title = "Heatmap"
	default:
		spec.Series = deriveSeries(ds, req)
		if req.Color.Valid {
			spec.Roles[RoleColor] = req.Color.Name
		}
		switch req.Kind {
		case KindBar:
			spec.Title = fmt.Sprintf("%s vs %s", req.Y, req.X)
		case KindScatter:
			spec.Title = "Scatter Plot"
		case KindLine:
			spec.Title = "Line Chart"
		}
	}

	return spec, nil
}

// temporalLayouts are the accepted date and timestamp forms for Gantt
// columns, in the order they are tried. The short forms cover the default
// display formats excelize produces for date-styled cells.
var temporalLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/06",
	"1/2/06 15:04",
	"01-02-06",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// parseTemporal parses a cell under the supported temporal layouts.
func parseTemporal(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// deriveGantt coerces the start and end columns to instants and collects the
// task rows. Rows whose start and end cells are both blank are skipped; any
// other unparseable cell fails the whole column. When every row is skipped
// there is no timeline to draw and the request fails as an empty dataset.
// Per-row start/end ordering is deliberately not checked.
func deriveGantt(ds *dataset.Dataset, req *Request) (*GanttData, error) {
	starts, _ := ds.Column(req.Start)
	ends, _ := ds.Column(req.End)
	tasks, _ := ds.Column(req.Task)

	gantt := &GanttData{}
	for i := range starts {
		if strings.TrimSpace(starts[i]) == "" && strings.TrimSpace(ends[i]) == "" {
			continue
		}
		start, ok := parseTemporal(starts[i])
		if !ok {
			return nil, &InvalidTemporalColumnError{Column: req.Start, Value: starts[i]}
		}
		end, ok := parseTemporal(ends[i])
		if !ok {
			return nil, &InvalidTemporalColumnError{Column: req.End, Value: ends[i]}
		}
		task := GanttTask{
			Label:    tasks[i],
			Start:    start,
			End:      end,
			StartRaw: starts[i],
			EndRaw:   ends[i],
		}
		if len(gantt.Tasks) == 0 {
			gantt.Begin, gantt.Finish = start, end
		} else {
			if start.Before(gantt.Begin) {
				gantt.Begin = start
			}
			if end.After(gantt.Finish) {
				gantt.Finish = end
			}
		}
		gantt.Tasks = append(gantt.Tasks, task)
	}
	if len(gantt.Tasks) == 0 {
		return nil, fmt.Errorf("%w: no rows carry a value in %q or %q", ErrEmptyDataset, req.Start, req.End)
	}
	return gantt, nil
}

// deriveSeries extracts the bound columns for bar, scatter and line charts.
func deriveSeries(ds *dataset.Dataset, req *Request) *SeriesData {
	xs, _ := ds.Column(req.X)
	yRaw, _ := ds.Column(req.Y)

	ys := make([]float64, len(yRaw))
	for i, cell := range yRaw {
		ys[i] = parseNumeric(cell)
	}

	series := &SeriesData{
		XName: req.X,
		YName: req.Y,
		X:     xs,
		Y:     ys,
		YRaw:  yRaw,
	}
	if req.Color.Valid {
		series.ColorName = req.Color.Name
		series.Color, _ = ds.Column(req.Color.Name)
	}
	return series
}
