package report

import (
	"bytes"
	"compress/zlib"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/renaltrack/renaltrack/internal/domain/patient"
)

// pdfText inflates the document's flate streams so tests can assert on the
// drawn text. Core fonts keep ASCII bytes as-is inside the content stream.
func pdfText(t *testing.T, pdf []byte) string {
	t.Helper()
	var out bytes.Buffer
	rest := pdf
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		data := bytes.TrimSuffix(rest[:j], []byte("\n"))
		rest = rest[j+len("endstream"):]
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			continue
		}
		raw, err := io.ReadAll(zr)
		zr.Close()
		if err != nil {
			continue
		}
		out.Write(raw)
	}
	return out.String()
}

func TestRenderPDF_FullChart(t *testing.T) {
	svc, pr, mr, lr, dr := newReportService()
	patientID := seedChart(t, pr, mr, lr, dr)

	data, err := svc.Build(context.Background(), patientID, reporter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pdfBytes, err := RenderPDF(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", pdfBytes[:8])
	}

	text := pdfText(t, pdfBytes)
	for _, want := range []string{
		"Patient Monthly Medical Report",
		"Maria Santos",
		"Calcitriol",
		"Losartan",
		"Renal Ultrasound",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report text missing %q", want)
		}
	}
}

func TestRenderPDF_EmptyChart(t *testing.T) {
	data := &Data{
		Patient:     &patient.Patient{FullName: "Ana Cruz"},
		GeneratedBy: reporter,
		GeneratedAt: time.Date(2026, time.February, 14, 10, 0, 0, 0, time.UTC),
	}

	pdfBytes, err := RenderPDF(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("empty chart must still render a valid PDF")
	}

	text := pdfText(t, pdfBytes)
	for _, want := range []string{
		"No medications recorded",
		"No laboratory results recorded",
		"No diagnostic tests recorded",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("empty chart must state %q", want)
		}
	}
}

func TestRenderLabWorkbook(t *testing.T) {
	svc, pr, mr, lr, dr := newReportService()
	patientID := seedChart(t, pr, mr, lr, dr)

	data, err := svc.Build(context.Background(), patientID, reporter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	xlsxBytes, err := RenderLabWorkbook(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(xlsxBytes))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(labSheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one draw, got %d rows", len(rows))
	}
	if rows[0][0] != "Test Date" || rows[0][1] != "Rbc" {
		t.Errorf("unexpected header: %v", rows[0][:2])
	}
	if rows[1][0] != "2026-02-14" {
		t.Errorf("unexpected draw date: %v", rows[1][0])
	}
}
