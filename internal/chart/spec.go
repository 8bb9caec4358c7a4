package chart

import "time"

// Spec is the resolved, validated binding of dataset columns to a chart
// kind's roles, plus any derived structure the kind needs. A Spec is derived
// fresh from the current dataset and request, handed to the renderer and
// then discarded; it is never persisted unless explicitly exported.
type Spec struct {
	Kind       Kind
	Dataset    string
	Title      string
	ColorScale string            // validated scale name, or "" for the default palette
	Roles      map[string]string // role name -> bound column name

	Gantt  *GanttData  // set for KindGantt
	Series *SeriesData // set for KindBar, KindScatter, KindLine
	Pivot  *PivotTable // set for KindHeatmap
}

// GanttTask is one row of a Gantt timeline. StartRaw/EndRaw keep the cell
// text as uploaded; Start/End are the parsed instants.
type GanttTask struct {
	Label    string
	Start    time.Time
	End      time.Time
	StartRaw string
	EndRaw   string
}

// GanttData is the derived timeline for a Gantt chart. Begin and Finish are
// the earliest start and latest end across all tasks. Rows where the start
// postdates the end are passed through untouched; ordering concerns belong
// to the renderer.
type GanttData struct {
	Tasks  []GanttTask
	Begin  time.Time
	Finish time.Time
}

// SeriesData is the extracted column data for bar, scatter and line charts.
// Y holds the numeric coercion of YRaw, with unparseable cells carried as 0.
// Color is nil when no color column was selected.
type SeriesData struct {
	XName     string
	YName     string
	ColorName string
	X         []string
	Y         []float64
	YRaw      []string
	Color     []string
}

// Colored reports whether the series carries a color encoding column.
func (s *SeriesData) Colored() bool {
	return s.ColorName != ""
}
