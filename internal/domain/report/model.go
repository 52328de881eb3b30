package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/renaltrack/renaltrack/internal/domain/diagnostic"
	"github.com/renaltrack/renaltrack/internal/domain/labresult"
	"github.com/renaltrack/renaltrack/internal/domain/medication"
	"github.com/renaltrack/renaltrack/internal/domain/patient"
	"github.com/renaltrack/renaltrack/internal/platform/auth"
)

// Data is a fully assembled report: one patient's chart snapshot plus the
// identity of whoever requested it. Rendering is a separate step so the
// assembly can be tested without touching PDF output.
type Data struct {
	Patient     *patient.Patient
	Medications []*medication.Medication
	LabResults  []*labresult.LabResult
	Diagnostics []*diagnostic.Diagnostic
	GeneratedBy auth.Identity
	GeneratedAt time.Time
}

// Filename is the download name for the PDF, derived from the patient name
// and the generation date.
func (d *Data) Filename() string {
	return fmt.Sprintf("Renal_Report_%s_%s.pdf",
		strings.ReplaceAll(d.Patient.FullName, " ", "_"),
		d.GeneratedAt.Format("20060102"))
}

// LabExportFilename is the download name for the lab workbook.
func (d *Data) LabExportFilename() string {
	return fmt.Sprintf("Lab_Results_%s_%s.xlsx",
		strings.ReplaceAll(d.Patient.FullName, " ", "_"),
		d.GeneratedAt.Format("20060102"))
}
