package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renaltrack/renaltrack/internal/domain/diagnostic"
	"github.com/renaltrack/renaltrack/internal/domain/labresult"
	"github.com/renaltrack/renaltrack/internal/domain/medication"
	"github.com/renaltrack/renaltrack/internal/domain/patient"
	"github.com/renaltrack/renaltrack/internal/platform/auth"
)

type Service struct {
	patients *patient.Service
	meds     *medication.Service
	labs     *labresult.Service
	diags    *diagnostic.Service
	now      func() time.Time
}

func NewService(patients *patient.Service, meds *medication.Service,
	labs *labresult.Service, diags *diagnostic.Service) *Service {
	return &Service{
		patients: patients,
		meds:     meds,
		labs:     labs,
		diags:    diags,
		now:      time.Now,
	}
}

// Build assembles the report data for one patient. Clinical records come back
// newest first, matching the section order they render in.
func (s *Service) Build(ctx context.Context, patientID uuid.UUID, by auth.Identity) (*Data, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	meds, err := s.meds.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	labs, err := s.labs.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	diags, err := s.diags.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return &Data{
		Patient:     p,
		Medications: meds,
		LabResults:  labs,
		Diagnostics: diags,
		GeneratedBy: by,
		GeneratedAt: s.now(),
	}, nil
}
