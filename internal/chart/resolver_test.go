package chart

import (
	"errors"
	"testing"
	"time"

	"datavista/internal/dataset"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Name:    "test.csv",
		Columns: []string{"x", "y"},
		Rows: [][]string{
			{"a", "1"},
			{"b", "2"},
			{"c", "3"},
		},
	}
}

func TestResolveBar(t *testing.T) {
	ds := testDataset()
	spec, err := Resolve(ds, &Request{Kind: KindBar, X: "x", Y: "y"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if spec.Kind != KindBar {
		t.Errorf("Expected kind bar, got %s", spec.Kind)
	}
	if spec.Series == nil {
		t.Fatal("Expected series data for bar chart")
	}
	if spec.Series.Colored() {
		t.Error("Expected uncolored series without a color selection")
	}
	want := []float64{1, 2, 3}
	for i, v := range want {
		if spec.Series.Y[i] != v {
			t.Errorf("Y[%d]: expected %v, got %v", i, v, spec.Series.Y[i])
		}
	}
	// Every bound column must be part of the dataset schema.
	for role, col := range spec.Roles {
		if !ds.HasColumn(col) {
			t.Errorf("Role %q bound to column %q not in schema", role, col)
		}
	}
}

func TestResolveDoesNotMutateDataset(t *testing.T) {
	ds := testDataset()
	before := ds.NumRows()
	if _, err := Resolve(ds, &Request{Kind: KindLine, X: "x", Y: "y"}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ds.NumRows() != before {
		t.Errorf("Resolve mutated the dataset: %d rows before, %d after", before, ds.NumRows())
	}
	if ds.Rows[0][0] != "a" || ds.Rows[0][1] != "1" {
		t.Error("Resolve mutated dataset cells")
	}
}

func TestResolveUnknownColumn(t *testing.T) {
	ds := testDataset()
	_, err := Resolve(ds, &Request{Kind: KindBar, X: "x", Y: "price"})
	var unknown *UnknownColumnError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownColumnError, got %v", err)
	}
	if unknown.Column != "price" {
		t.Errorf("Expected error to name column \"price\", got %q", unknown.Column)
	}
}

func TestResolveUnknownColorColumn(t *testing.T) {
	ds := testDataset()
	_, err := Resolve(ds, &Request{Kind: KindScatter, X: "x", Y: "y", Color: Column("missing")})
	var unknown *UnknownColumnError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownColumnError, got %v", err)
	}
	if unknown.Column != "missing" {
		t.Errorf("Expected error to name column \"missing\", got %q", unknown.Column)
	}
}

func TestResolveUnsupportedColorScale(t *testing.T) {
	ds := testDataset()
	_, err := Resolve(ds, &Request{Kind: KindBar, X: "x", Y: "y", ColorScale: "Foobar"})
	var badScale *UnsupportedColorScaleError
	if !errors.As(err, &badScale) {
		t.Fatalf("Expected UnsupportedColorScaleError, got %v", err)
	}
	if badScale.Scale != "Foobar" {
		t.Errorf("Expected error to name scale \"Foobar\", got %q", badScale.Scale)
	}
}

func TestResolveEmptyDataset(t *testing.T) {
	ds := &dataset.Dataset{Name: "empty.csv", Columns: []string{"x", "y"}}
	for _, kind := range Kinds {
		_, err := Resolve(ds, &Request{
			Kind: kind,
			Task: "x", Start: "x", End: "y",
			X: "x", Y: "y", Value: "y",
		})
		if !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("%s: expected ErrEmptyDataset, got %v", kind, err)
		}
	}
}

func TestResolveMissingSelection(t *testing.T) {
	ds := testDataset()
	_, err := Resolve(ds, &Request{Kind: KindBar, X: "x"})
	var missing *MissingSelectionError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingSelectionError, got %v", err)
	}
	if missing.Role != RoleY {
		t.Errorf("Expected missing role %q, got %q", RoleY, missing.Role)
	}
}

func ganttDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Name:    "plan.csv",
		Columns: []string{"task", "start", "end"},
		Rows: [][]string{
			{"A", "2024-01-01", "2024-01-05"},
		},
	}
}

func TestResolveGantt(t *testing.T) {
	spec, err := Resolve(ganttDataset(), &Request{
		Kind: KindGantt, Task: "task", Start: "start", End: "end",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if spec.Gantt == nil {
		t.Fatal("Expected gantt data")
	}
	if len(spec.Gantt.Tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(spec.Gantt.Tasks))
	}
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !spec.Gantt.Begin.Equal(wantStart) {
		t.Errorf("Timeline begin: expected %v, got %v", wantStart, spec.Gantt.Begin)
	}
	if !spec.Gantt.Finish.Equal(wantEnd) {
		t.Errorf("Timeline finish: expected %v, got %v", wantEnd, spec.Gantt.Finish)
	}
}

func TestResolveGanttInvalidTemporal(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "plan.csv",
		Columns: []string{"task", "start", "end"},
		Rows: [][]string{
			{"A", "not a date", "2024-01-05"},
		},
	}
	_, err := Resolve(ds, &Request{Kind: KindGantt, Task: "task", Start: "start", End: "end"})
	var invalid *InvalidTemporalColumnError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidTemporalColumnError, got %v", err)
	}
	if invalid.Column != "start" {
		t.Errorf("Expected error to name column \"start\", got %q", invalid.Column)
	}
}

func TestResolveGanttReversedRowPassesThrough(t *testing.T) {
	// A row whose start postdates its end is not rejected; ordering
	// concerns belong to the renderer.
	ds := &dataset.Dataset{
		Name:    "plan.csv",
		Columns: []string{"task", "start", "end"},
		Rows: [][]string{
			{"A", "2024-02-01", "2024-01-05"},
		},
	}
	spec, err := Resolve(ds, &Request{Kind: KindGantt, Task: "task", Start: "start", End: "end"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(spec.Gantt.Tasks) != 1 {
		t.Fatalf("Expected the reversed row to pass through, got %d tasks", len(spec.Gantt.Tasks))
	}
}

func TestResolveGanttSkipsBlankRows(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "plan.csv",
		Columns: []string{"task", "start", "end"},
		Rows: [][]string{
			{"A", "2024-01-01", "2024-01-05"},
			{"B", "", ""},
		},
	}
	spec, err := Resolve(ds, &Request{Kind: KindGantt, Task: "task", Start: "start", End: "end"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(spec.Gantt.Tasks) != 1 {
		t.Errorf("Expected blank row to be skipped, got %d tasks", len(spec.Gantt.Tasks))
	}
}

func TestResolveGanttAllRowsBlank(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "plan.csv",
		Columns: []string{"task", "start", "end"},
		Rows: [][]string{
			{"A", "", ""},
			{"B", "", ""},
		},
	}
	_, err := Resolve(ds, &Request{Kind: KindGantt, Task: "task", Start: "start", End: "end"})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Expected ErrEmptyDataset when no row has a start or end, got %v", err)
	}
}

func TestResolveScatterWithColor(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "test.csv",
		Columns: []string{"x", "y", "group"},
		Rows: [][]string{
			{"1", "10", "g1"},
			{"2", "20", "g2"},
		},
	}
	spec, err := Resolve(ds, &Request{
		Kind: KindScatter, X: "x", Y: "y",
		Color: Column("group"), ColorScale: "Plasma",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !spec.Series.Colored() {
		t.Fatal("Expected colored series")
	}
	if spec.Roles[RoleColor] != "group" {
		t.Errorf("Expected color role bound to \"group\", got %q", spec.Roles[RoleColor])
	}
	if spec.ColorScale != "Plasma" {
		t.Errorf("Expected color scale Plasma, got %q", spec.ColorScale)
	}
}

func TestResolveUnsupportedKind(t *testing.T) {
	_, err := Resolve(testDataset(), &Request{Kind: "pie", X: "x", Y: "y"})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("Expected ErrUnsupportedKind, got %v", err)
	}
}
