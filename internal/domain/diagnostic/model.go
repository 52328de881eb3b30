package diagnostic

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("diagnostic test not found")
	ErrValidation = errors.New("invalid diagnostic test")
)

// Diagnostic maps to the diagnostics table: one imaging or procedure record
// such as an ultrasound or biopsy.
type Diagnostic struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	TestName  string    `db:"test_name" json:"test_name"`
	TestDate  string    `db:"test_date" json:"test_date"`
	Results   string    `db:"results" json:"results,omitempty"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
}
