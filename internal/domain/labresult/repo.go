package labresult

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, lr *LabResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabResult, error)
	Update(ctx context.Context, lr *LabResult) error
	// ListByPatient returns the patient's panel draws newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LabResult, error)
}
