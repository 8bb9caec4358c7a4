package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

// Format identifies the upload format a Source was parsed from.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Source is a parsed upload. A CSV upload carries a single Dataset; an xlsx
// upload exposes its sheet list and parses a Dataset per selected sheet.
type Source struct {
	Name   string
	Format Format

	csvData *Dataset
	book    *excelize.File
}

// Open sniffs the payload and parses it as CSV or xlsx. The file name is
// consulted first; when the extension is ambiguous the content type decides.
func Open(name string, data []byte) (*Source, error) {
	switch detectFormat(name, data) {
	case FormatXLSX:
		book, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse workbook %q: %w", name, err)
		}
		return &Source{Name: name, Format: FormatXLSX, book: book}, nil
	default:
		ds, err := FromCSV(bytes.NewReader(data), name)
		if err != nil {
			return nil, err
		}
		return &Source{Name: name, Format: FormatCSV, csvData: ds}, nil
	}
}

// detectFormat picks the parser for an upload. mimetype detection covers
// files uploaded without a useful extension.
func detectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	}
	mtype := mimetype.Detect(data)
	if mtype.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet") ||
		mtype.Is("application/zip") {
		return FormatXLSX
	}
	return FormatCSV
}

// SheetNames returns the workbook's sheet names in workbook order.
// A CSV source has no sheets and returns nil.
func (s *Source) SheetNames() []string {
	if s.book == nil {
		return nil
	}
	return s.book.GetSheetList()
}

// Dataset parses the named sheet into a Dataset. For CSV sources the sheet
// name is ignored and the single parsed Dataset is returned. For workbooks
// an empty sheet name selects the first sheet.
func (s *Source) Dataset(sheet string) (*Dataset, error) {
	if s.csvData != nil {
		return s.csvData, nil
	}

	sheets := s.book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", s.Name)
	}
	if sheet == "" {
		sheet = sheets[0]
	}

	rows, err := s.book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return fromRows(sheet, rows), nil
}

// Close releases the underlying workbook, if any.
func (s *Source) Close() error {
	if s.book != nil {
		return s.book.Close()
	}
	return nil
}

// FromCSV parses CSV content into a Dataset. The first record is the header;
// short records are padded to the header width and long records truncated,
// mirroring how ragged spreadsheet rows are normalized.
func FromCSV(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %q: %w", name, err)
	}
	return fromRows(name, records), nil
}

// fromRows builds a Dataset from raw records, treating the first record as
// the header row and normalizing every data row to the header width.
func fromRows(name string, records [][]string) *Dataset {
	ds := &Dataset{Name: name}
	if len(records) == 0 {
		return ds
	}
	ds.Columns = records[0]
	width := len(ds.Columns)
	ds.Rows = make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, width)
		copy(row, rec)
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}
