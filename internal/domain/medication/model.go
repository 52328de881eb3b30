package medication

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("medication not found")
	ErrValidation = errors.New("invalid medication")
)

// Medication maps to the medications table. A nil EndDate means the course is
// ongoing.
type Medication struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Name      string    `db:"name" json:"name"`
	Dosage    string    `db:"dosage" json:"dosage"`
	Frequency string    `db:"frequency" json:"frequency"`
	StartDate string    `db:"start_date" json:"start_date"`
	EndDate   *string   `db:"end_date" json:"end_date,omitempty"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
}

func (m *Medication) Ongoing() bool {
	return m.EndDate == nil || *m.EndDate == ""
}
