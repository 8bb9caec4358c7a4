package dataset

import (
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFromCSV(t *testing.T) {
	csvText := "task,start,end\nA,2024-01-01,2024-01-05\nB,2024-01-03,2024-01-10\n"
	ds, err := FromCSV(strings.NewReader(csvText), "plan.csv")
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"task", "start", "end"}) {
		t.Errorf("Unexpected columns: %v", ds.Columns)
	}
	if ds.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", ds.NumRows())
	}
	if ds.Rows[1][2] != "2024-01-10" {
		t.Errorf("Unexpected cell: %q", ds.Rows[1][2])
	}
}

func TestFromCSVRaggedRows(t *testing.T) {
	csvText := "a,b,c\n1,2\n1,2,3,4\n"
	ds, err := FromCSV(strings.NewReader(csvText), "ragged.csv")
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	for i, row := range ds.Rows {
		if len(row) != 3 {
			t.Errorf("Row %d: expected width 3, got %d", i, len(row))
		}
	}
	if ds.Rows[0][2] != "" {
		t.Errorf("Expected short row padded with empty cell, got %q", ds.Rows[0][2])
	}
}

func TestFromCSVEmpty(t *testing.T) {
	ds, err := FromCSV(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	if ds.NumRows() != 0 {
		t.Errorf("Expected 0 rows, got %d", ds.NumRows())
	}
}

// buildWorkbook creates an in-memory xlsx payload with the given sheets.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("Failed to rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("Failed to add sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("Failed to build cell name: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("Failed to set row: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func TestOpenWorkbook(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Sales": {
			{"region", "amount"},
			{"North", 10},
			{"South", 20},
		},
	})

	src, err := Open("report.xlsx", data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.Format != FormatXLSX {
		t.Fatalf("Expected xlsx format, got %s", src.Format)
	}
	if !reflect.DeepEqual(src.SheetNames(), []string{"Sales"}) {
		t.Errorf("Unexpected sheets: %v", src.SheetNames())
	}

	ds, err := src.Dataset("")
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"region", "amount"}) {
		t.Errorf("Unexpected columns: %v", ds.Columns)
	}
	if ds.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", ds.NumRows())
	}
	if ds.Rows[0][0] != "North" {
		t.Errorf("Unexpected cell: %q", ds.Rows[0][0])
	}
}

func TestOpenWorkbookSelectsNamedSheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"First":  {{"a"}, {"1"}},
		"Second": {{"b"}, {"2"}},
	})

	src, err := Open("book.xlsx", data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if len(src.SheetNames()) != 2 {
		t.Fatalf("Expected 2 sheets, got %v", src.SheetNames())
	}
	ds, err := src.Dataset("Second")
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	if ds.Columns[0] != "b" {
		t.Errorf("Expected sheet Second, got columns %v", ds.Columns)
	}
}

func TestOpenCSVWithoutExtension(t *testing.T) {
	src, err := Open("upload", []byte("x,y\n1,2\n"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()
	if src.Format != FormatCSV {
		t.Fatalf("Expected csv format, got %s", src.Format)
	}
	ds, err := src.Dataset("")
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	if ds.NumRows() != 1 {
		t.Errorf("Expected 1 row, got %d", ds.NumRows())
	}
}

func TestOpenXLSXWithoutExtension(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"Sheet": {{"a"}, {"1"}},
	})
	src, err := Open("upload", data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()
	if src.Format != FormatXLSX {
		t.Fatalf("Expected sniffed xlsx format, got %s", src.Format)
	}
}
