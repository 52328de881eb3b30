package diagnostic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renaltrack/renaltrack/pkg/isodate"
)

type Input struct {
	TestName string `json:"test_name"`
	TestDate string `json:"test_date"`
	Results  string `json:"results"`
	Notes    string `json:"notes"`
}

func (in *Input) validate() error {
	if in.TestName == "" {
		return fmt.Errorf("%w: test_name is required", ErrValidation)
	}
	if in.TestDate == "" {
		return fmt.Errorf("%w: test_date is required", ErrValidation)
	}
	if !isodate.Valid(in.TestDate) {
		return fmt.Errorf("%w: test_date must be YYYY-MM-DD, got %q", ErrValidation, in.TestDate)
	}
	return nil
}

type Service struct {
	diags Repository
}

func NewService(diags Repository) *Service {
	return &Service{diags: diags}
}

func (s *Service) Create(ctx context.Context, patientID uuid.UUID, in *Input) (*Diagnostic, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	d := &Diagnostic{
		PatientID: patientID,
		TestName:  in.TestName,
		TestDate:  in.TestDate,
		Results:   in.Results,
		Notes:     in.Notes,
	}
	if err := s.diags.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*Diagnostic, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	d, err := s.diags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.TestName = in.TestName
	d.TestDate = in.TestDate
	d.Results = in.Results
	d.Notes = in.Notes

	if err := s.diags.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Diagnostic, error) {
	return s.diags.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Diagnostic, error) {
	return s.diags.ListByPatient(ctx, patientID)
}
