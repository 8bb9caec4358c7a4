package render

import (
	"encoding/json"
	"fmt"

	"datavista/internal/chart"
)

// Options builds the ECharts option document for a resolved chart spec.
// The result marshals deterministically (maps serialize with sorted keys),
// so the same spec always produces the same JSON.
func Options(spec *chart.Spec) (map[string]interface{}, error) {
	switch spec.Kind {
	case chart.KindGantt:
		return ganttOptions(spec), nil
	case chart.KindBar:
		return barOptions(spec), nil
	case chart.KindScatter:
		return cartesianOptions(spec, "scatter"), nil
	case chart.KindLine:
		return cartesianOptions(spec, "line"), nil
	case chart.KindHeatmap:
		return heatmapOptions(spec), nil
	default:
		return nil, fmt.Errorf("%w: %q", chart.ErrUnsupportedKind, spec.Kind)
	}
}

// OptionsJSON marshals the option document for embedding in a page or API
// response.
func OptionsJSON(spec *chart.Spec) ([]byte, error) {
	opts, err := Options(spec)
	if err != nil {
		return nil, err
	}
	return json.Marshal(opts)
}

func titleBlock(spec *chart.Spec) map[string]interface{} {
	return map[string]interface{}{
		"text": spec.Title,
		"left": "center",
	}
}

// visualMapBlock maps a continuous value range onto the spec's color ramp.
func visualMapBlock(spec *chart.Spec, min, max float64) map[string]interface{} {
	if min == max {
		max = min + 1
	}
	return map[string]interface{}{
		"min":        min,
		"max":        max,
		"calculable": true,
		"orient":     "horizontal",
		"left":       "center",
		"bottom":     0,
		"inRange": map[string]interface{}{
			"color": rampFor(spec.ColorScale),
		},
	}
}

func barOptions(spec *chart.Spec) map[string]interface{} {
	s := spec.Series
	min, max := minMax(s.Y)

	option := map[string]interface{}{
		"title":   titleBlock(spec),
		"tooltip": map[string]interface{}{},
		"xAxis": map[string]interface{}{
			"type": "category",
			"name": s.XName,
			"data": s.X,
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": s.YName,
		},
		"series": []interface{}{
			map[string]interface{}{
				"type": "bar",
				"name": s.YName,
				"data": s.Y,
			},
		},
		// Bars are shaded by their own value, matching the interactive
		// tool's default bar coloring.
		"visualMap": visualMapBlock(spec, min, max),
	}
	return option
}

// cartesianOptions covers scatter and line charts. With a color column the
// rows are split into one series per distinct color value; without one a
// single default-colored series is produced.
func cartesianOptions(spec *chart.Spec, seriesType string) map[string]interface{} {
	s := spec.Series

	option := map[string]interface{}{
		"title":   titleBlock(spec),
		"tooltip": map[string]interface{}{},
		"xAxis": map[string]interface{}{
			"type": "category",
			"name": s.XName,
			"data": s.X,
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": s.YName,
		},
	}

	if !s.Colored() {
		option["series"] = []interface{}{
			map[string]interface{}{
				"type": seriesType,
				"name": s.YName,
				"data": s.Y,
			},
		}
		if spec.ColorScale != "" {
			min, max := minMax(s.Y)
			option["visualMap"] = visualMapBlock(spec, min, max)
		}
		return option
	}

	// Group rows by color value, preserving first-seen group order.
	var groups []string
	grouped := map[string][]interface{}{}
	for i, cv := range s.Color {
		if _, ok := grouped[cv]; !ok {
			groups = append(groups, cv)
		}
		grouped[cv] = append(grouped[cv], []interface{}{s.X[i], s.Y[i]})
	}

	series := make([]interface{}, 0, len(groups))
	for _, g := range groups {
		series = append(series, map[string]interface{}{
			"type": seriesType,
			"name": g,
			"data": grouped[g],
		})
	}
	option["series"] = series
	option["legend"] = map[string]interface{}{
		"data": groups,
		"top":  30,
	}
	option["color"] = paletteFor(spec.ColorScale, len(groups))
	return option
}

func heatmapOptions(spec *chart.Spec) map[string]interface{} {
	p := spec.Pivot

	data := make([]interface{}, 0, len(p.XKeys)*len(p.YKeys))
	min, max := 0.0, 0.0
	first := true
	for yi := range p.YKeys {
		for xi := range p.XKeys {
			v := p.Cells[yi][xi]
			if first {
				min, max = v, v
				first = false
			} else {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			data = append(data, []interface{}{xi, yi, v})
		}
	}

	return map[string]interface{}{
		"title": titleBlock(spec),
		"tooltip": map[string]interface{}{
			"position": "top",
		},
		"xAxis": map[string]interface{}{
			"type": "category",
			"name": p.XName,
			"data": p.XKeys,
		},
		"yAxis": map[string]interface{}{
			"type": "category",
			"name": p.YName,
			"data": p.YKeys,
		},
		"series": []interface{}{
			map[string]interface{}{
				"type": "heatmap",
				"name": p.ValueName,
				"data": data,
				"label": map[string]interface{}{
					"show": true,
				},
			},
		},
		"visualMap": visualMapBlock(spec, min, max),
	}
}

// ganttOptions renders the timeline as the standard ECharts bar-offset
// construction: a transparent series carries each task to its start, and a
// stacked duration series draws the visible bar.
func ganttOptions(spec *chart.Spec) map[string]interface{} {
	g := spec.Gantt

	labels := make([]string, len(g.Tasks))
	offsets := make([]interface{}, len(g.Tasks))
	durations := make([]interface{}, len(g.Tasks))
	for i, task := range g.Tasks {
		labels[i] = task.Label
		offsets[i] = task.Start.UnixMilli()
		durations[i] = task.End.UnixMilli() - task.Start.UnixMilli()
	}

	return map[string]interface{}{
		"title":   titleBlock(spec),
		"tooltip": map[string]interface{}{},
		"xAxis": map[string]interface{}{
			"type": "value",
			"name": "Timeline",
			"min":  g.Begin.UnixMilli(),
			"max":  g.Finish.UnixMilli(),
		},
		"yAxis": map[string]interface{}{
			"type": "category",
			"name": "Tasks",
			"data": labels,
		},
		"series": []interface{}{
			map[string]interface{}{
				"type":  "bar",
				"stack": "timeline",
				"name":  "offset",
				"data":  offsets,
				"itemStyle": map[string]interface{}{
					"color": "transparent",
				},
				"tooltip": map[string]interface{}{
					"show": false,
				},
			},
			map[string]interface{}{
				"type":  "bar",
				"stack": "timeline",
				"name":  "duration",
				"data":  durations,
			},
		},
		"color": paletteFor(spec.ColorScale, len(g.Tasks)),
	}
}

// paletteFor picks n discrete colors spread across the scale's ramp, for
// charts that color by category rather than by continuous value.
func paletteFor(scale string, n int) []string {
	ramp := rampFor(scale)
	if n <= 0 || n >= len(ramp) {
		return ramp
	}
	out := make([]string, n)
	for i := range out {
		out[i] = ramp[i*(len(ramp)-1)/maxInt(n-1, 1)]
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
