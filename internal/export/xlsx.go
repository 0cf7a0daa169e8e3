package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

const sheetName = "Water Quality Data"

// XLSX renders the readings as a spreadsheet with a styled header row.
func XLSX(rs []reading.Reading) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header cell: %w", err)
		}
	}

	for i, r := range rs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute row cell: %w", err)
		}
		values := row(r)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSXFilename returns the conventional download name for a spreadsheet
// export taken at the given time.
func XLSXFilename(t time.Time) string {
	return "water_quality_data_" + t.Format("2006-01-02_15-04-05") + ".xlsx"
}
