package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	// ListByPatient returns the patient's medications newest course first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
}
