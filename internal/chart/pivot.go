package chart

import (
	"sort"
	"strconv"
	"strings"
)

// PivotTable is a two-dimensional aggregate: rows are the distinct values of
// the y column, columns the distinct values of the x column, and each cell
// the sum of the value column over matching (x, y) pairs. Combinations that
// never occur hold 0.
//
// Axis keys are ordered by a stable lexicographic sort, so deriving the same
// pivot twice, or after shuffling the input rows, yields an identical table.
type PivotTable struct {
	XName     string
	YName     string
	ValueName string
	XKeys     []string
	YKeys     []string
	Cells     [][]float64 // Cells[yi][xi]
}

// Cell returns the aggregated value for the (x, y) pair. The second return
// value is false when either key is not part of the table.
func (p *PivotTable) Cell(x, y string) (float64, bool) {
	xi := indexOf(p.XKeys, x)
	yi := indexOf(p.YKeys, y)
	if xi < 0 || yi < 0 {
		return 0, false
	}
	return p.Cells[yi][xi], true
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

// derivePivot aggregates the value column over (x, y) pairs by summation.
// Value cells that do not parse as numbers contribute 0.
func derivePivot(xName, yName, valueName string, xs, ys, values []string) *PivotTable {
	sums := make(map[[2]string]float64, len(xs))
	xSeen := make(map[string]bool)
	ySeen := make(map[string]bool)
	for i := range xs {
		key := [2]string{xs[i], ys[i]}
		sums[key] += parseNumeric(values[i])
		xSeen[xs[i]] = true
		ySeen[ys[i]] = true
	}

	xKeys := sortedKeys(xSeen)
	yKeys := sortedKeys(ySeen)

	cells := make([][]float64, len(yKeys))
	for yi, y := range yKeys {
		row := make([]float64, len(xKeys))
		for xi, x := range xKeys {
			row[xi] = sums[[2]string{x, y}]
		}
		cells[yi] = row
	}

	return &PivotTable{
		XName:     xName,
		YName:     yName,
		ValueName: valueName,
		XKeys:     xKeys,
		YKeys:     yKeys,
		Cells:     cells,
	}
}

func sortedKeys(seen map[string]bool) []string {
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseNumeric coerces a cell to a float64, tolerating surrounding
// whitespace and thousands separators. Unparseable cells coerce to 0.
func parseNumeric(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}
