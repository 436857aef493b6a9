// Package spreadsheet encodes export sheets as Office Open XML workbooks.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

// ContentTypeXLSX is the MIME type of an .xlsx workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// defaultSheet is the sheet excelize creates with a new workbook.
const defaultSheet = "Sheet1"

// Excel writes a single-sheet workbook.
type Excel struct {
	boldHeader bool
}

// Option configures the encoder.
type Option func(*Excel)

// WithBoldHeader renders the header row in bold.
func WithBoldHeader(bold bool) Option {
	return func(e *Excel) {
		e.boldHeader = bold
	}
}

// NewExcel creates an encoder. Headers are bold unless disabled.
func NewExcel(opts ...Option) *Excel {
	e := &Excel{boldHeader: true}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ContentType implements ports.SpreadsheetEncoder.
func (e *Excel) ContentType() string {
	return ContentTypeXLSX
}

// Encode implements ports.SpreadsheetEncoder. The header is row 1 and data
// rows follow in order.
func (e *Excel) Encode(w io.Writer, sheet ports.Sheet) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	name := sheet.Name
	if name == "" {
		name = defaultSheet
	}

	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}

	if err := e.writeHeader(f, name, sheet.Headers); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}

	for i, width := range sheet.Widths {
		if width <= 0 {
			continue
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}

		if err := f.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func (e *Excel) writeHeader(f *excelize.File, sheet string, headers []string) error {
	if len(headers) == 0 {
		return nil
	}

	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	if !e.boldHeader {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	return nil
}

// setRow writes values as strings starting at column A of the given row.
func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}

	return nil
}
