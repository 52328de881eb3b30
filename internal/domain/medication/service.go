package medication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renaltrack/renaltrack/pkg/isodate"
)

// Input carries the mutable medication fields for create and update.
type Input struct {
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	Frequency string  `json:"frequency"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     string  `json:"notes"`
}

func (in *Input) validate() error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.Dosage == "":
		return fmt.Errorf("%w: dosage is required", ErrValidation)
	case in.Frequency == "":
		return fmt.Errorf("%w: frequency is required", ErrValidation)
	case in.StartDate == "":
		return fmt.Errorf("%w: start_date is required", ErrValidation)
	}
	if !isodate.Valid(in.StartDate) {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD, got %q", ErrValidation, in.StartDate)
	}
	if in.EndDate != nil && *in.EndDate != "" && !isodate.Valid(*in.EndDate) {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD, got %q", ErrValidation, *in.EndDate)
	}
	return nil
}

// normalizedEnd maps an empty end date to nil so "ongoing" is stored one way.
func (in *Input) normalizedEnd() *string {
	if in.EndDate == nil || *in.EndDate == "" {
		return nil
	}
	return in.EndDate
}

type Service struct {
	meds Repository
}

func NewService(meds Repository) *Service {
	return &Service{meds: meds}
}

func (s *Service) Create(ctx context.Context, patientID uuid.UUID, in *Input) (*Medication, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m := &Medication{
		PatientID: patientID,
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		StartDate: in.StartDate,
		EndDate:   in.normalizedEnd(),
		Notes:     in.Notes,
	}
	if err := s.meds.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces all mutable fields; the owning patient never changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*Medication, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m, err := s.meds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Name = in.Name
	m.Dosage = in.Dosage
	m.Frequency = in.Frequency
	m.StartDate = in.StartDate
	m.EndDate = in.normalizedEnd()
	m.Notes = in.Notes

	if err := s.meds.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.meds.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	return s.meds.ListByPatient(ctx, patientID)
}
