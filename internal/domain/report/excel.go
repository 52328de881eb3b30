package report

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/renaltrack/renaltrack/internal/domain/labresult"
)

const labSheet = "Lab Results"

// RenderLabWorkbook exports the patient's panel draws as an XLSX workbook,
// one row per draw, with the full analyte column set regardless of what was
// measured.
func RenderLabWorkbook(d *Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", labSheet); err != nil {
		return nil, err
	}

	headers := make([]string, 0, len(labresult.AnalyteKeys)+1)
	headers = append(headers, "Test Date")
	for _, key := range labresult.AnalyteKeys {
		headers = append(headers, labresult.AnalyteLabel(key))
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(labSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, lr := range d.LabResults {
		values := append([]string{lr.TestDate}, lr.Values()...)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(labSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
