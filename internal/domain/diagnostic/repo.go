package diagnostic

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Diagnostic) error
	GetByID(ctx context.Context, id uuid.UUID) (*Diagnostic, error)
	Update(ctx context.Context, d *Diagnostic) error
	// ListByPatient returns the patient's diagnostic tests newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Diagnostic, error)
}
