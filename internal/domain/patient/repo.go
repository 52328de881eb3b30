package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	// Search matches term case-insensitively against name or diagnosis,
	// ordered by name ascending. An empty term returns all patients.
	Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error)
	Count(ctx context.Context) (int, error)
	// CountActive counts patients with at least one medication whose end date
	// is null or on/after asOf.
	CountActive(ctx context.Context, asOf time.Time) (int, error)
	// CountRecent counts patients registered within the last windowDays.
	CountRecent(ctx context.Context, windowDays int) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*RecentEntry, error)
}
