package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderPDF renders the assembled report as a single PDF document:
// header, patient information, medications table, laboratory values grouped
// by draw date, diagnostics table, then the generated-by footer.
func RenderPDF(d *Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetAutoPageBreak(true, 15)

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Patient Monthly Medical Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Generated on: "+d.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	writePatientInfo(pdf, d)
	writeMedications(pdf, d)
	writeLabResults(pdf, d)
	writeDiagnostics(pdf, d)
	writeFooter(pdf, d)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePatientInfo(pdf *fpdf.Fpdf, d *Data) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Patient Information", "", 1, "L", false, 0, "")

	birth := "Not specified"
	if d.Patient.BirthDate != "" {
		birth = fmt.Sprintf("%s (%d years)", d.Patient.BirthDate, d.Patient.CurrentAge(d.GeneratedAt))
	}
	diagnosis := d.Patient.Diagnosis
	if diagnosis == "" {
		diagnosis = "Not specified"
	}

	rows := [][2]string{
		{"Full Name", d.Patient.FullName},
		{"Date of Birth", birth},
		{"Primary Diagnosis", diagnosis},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 8, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 8, row[1], "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(10)
}

func writeMedications(pdf *fpdf.Fpdf, d *Data) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Current Medications", "", 1, "L", false, 0, "")
	pdf.Ln(5)

	if len(d.Medications) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, "No medications recorded", "", 1, "L", false, 0, "")
		pdf.Ln(15)
		return
	}

	colWidths := []float64{60, 30, 30, 30, 30}
	headers := []string{"Medication", "Dosage", "Frequency", "Start Date", "End Date"}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, m := range d.Medications {
		end := "Ongoing"
		if !m.Ongoing() {
			end = *m.EndDate
		}
		cells := []string{m.Name, m.Dosage, m.Frequency, m.StartDate, end}
		for i, v := range cells {
			pdf.CellFormat(colWidths[i], 8, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		if m.Notes != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(180, 6, "Notes: "+m.Notes, "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
		}
	}
	pdf.Ln(15)
}

func writeLabResults(pdf *fpdf.Fpdf, d *Data) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Laboratory Values", "", 1, "L", false, 0, "")
	pdf.Ln(5)

	if len(d.LabResults) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, "No laboratory results recorded", "", 1, "L", false, 0, "")
		pdf.Ln(10)
		return
	}

	for _, lr := range d.LabResults {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Test Date: "+lr.TestDate, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, a := range lr.NonEmptyAnalytes() {
			pdf.CellFormat(60, 8, a.Label+": ", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 8, a.Value, "", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}
	pdf.Ln(10)
}

func writeDiagnostics(pdf *fpdf.Fpdf, d *Data) {
	if len(d.Diagnostics) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, "No diagnostic tests recorded", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 8, "Test Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Test Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Results", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, dg := range d.Diagnostics {
		results := dg.Results
		if results == "" {
			results = "No results"
		}
		pdf.CellFormat(70, 8, dg.TestName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, dg.TestDate, "1", 0, "L", false, 0, "")
		pdf.MultiCell(0, 8, results, "1", "L", false)

		if dg.Notes != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(20, 6, "Notes:", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 6, dg.Notes, "", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}
}

func writeFooter(pdf *fpdf.Fpdf, d *Data) {
	pdf.SetFont("Arial", "I", 8)
	footer := fmt.Sprintf("Generated by: %s (%s) | Renal Tracker Pro",
		d.GeneratedBy.FullName, d.GeneratedBy.Username)
	pageWidth, _ := pdf.GetPageSize()
	pdf.SetX((pageWidth - pdf.GetStringWidth(footer)) / 2)
	pdf.CellFormat(pdf.GetStringWidth(footer), 10, footer, "", 0, "L", false, 0, "")
}
