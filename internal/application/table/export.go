package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportFormat selects the file format for a dataset export
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat validates an export format name. Empty input means
// no export was requested.
func ParseExportFormat(s string) (ExportFormat, bool, error) {
	switch ExportFormat(s) {
	case "":
		return "", false, nil
	case FormatCSV, FormatXLSX:
		return ExportFormat(s), true, nil
	default:
		return "", false, fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type for the format
func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename builds a download filename for the format
func (f ExportFormat) Filename(base string) string {
	return fmt.Sprintf("%s.%s", base, f)
}

// Export writes the current view of the table in the given format:
// the rows produced by the query's filters and sort, visible columns
// only, one header row of column titles.
func (t *Table[T]) Export(w io.Writer, q Query, format ExportFormat) error {
	// Export ignores pagination: the whole filtered view is written
	view := t.View(q)
	columns := t.VisibleColumns()

	switch format {
	case FormatCSV:
		return writeCSV(w, columns, view)
	case FormatXLSX:
		return writeXLSX(w, columns, view)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeCSV[T any](w io.Writer, columns []Column[T], rows []T) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Title
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = c.Value(row)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeXLSX[T any](w io.Writer, columns []Column[T], rows []T) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open XLSX stream writer: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.Title
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := sw.SetRow(cell, header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}

	for r, row := range rows {
		record := make([]interface{}, len(columns))
		for i, c := range columns {
			record[i] = c.Value(row)
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, record); err != nil {
			return fmt.Errorf("failed to write XLSX row: %w", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush XLSX stream: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return nil
}
