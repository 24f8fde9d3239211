package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const statsSheet = "Stats"

// WriteXLSX は表データと集計値を2シートのブックとして書き出します。
func (r Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := r.Data.Name
	if sheet == "" {
		sheet = "Data"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, 0, len(r.Data.Header))
	for _, h := range r.Data.Header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for i, row := range r.Data.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		return fmt.Errorf("failed to create stats sheet: %w", err)
	}
	if err := f.SetSheetRow(statsSheet, "A1", &[]any{"Metric", "Value"}); err != nil {
		return fmt.Errorf("failed to write stats header: %w", err)
	}
	if err := f.SetRowStyle(statsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style stats header: %w", err)
	}
	for i, s := range r.Stats {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(statsSheet, cell, &[]any{s.Label, s.Value}); err != nil {
			return fmt.Errorf("failed to write stat %s: %w", s.Label, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "I", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(statsSheet, "A", "A", 28); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the records table as UTF-8 CSV with a BOM so spreadsheet
// apps detect the encoding.
func (r Report) WriteCSV(w io.Writer) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(r.Data.Header); err != nil {
		return err
	}
	for _, row := range r.Data.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			switch x := v.(type) {
			case float64:
				rec[i] = fmt.Sprintf("%.2f", x)
			default:
				rec[i] = fmt.Sprint(x)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
