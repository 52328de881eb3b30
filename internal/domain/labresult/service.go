package labresult

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renaltrack/renaltrack/pkg/isodate"
)

// Input carries one panel draw. Every analyte is optional; a draw recording
// only the values actually measured is the normal case.
type Input struct {
	TestDate      string `json:"test_date"`
	RBC           string `json:"rbc"`
	Hematocrit    string `json:"hematocrit"`
	Hemoglobin    string `json:"hemoglobin"`
	WBC           string `json:"wbc"`
	PlateletCount string `json:"platelet_count"`
	Neutrophils   string `json:"neutrophils"`
	Lymphocytes   string `json:"lymphocytes"`
	Monocytes     string `json:"monocytes"`
	Basophils     string `json:"basophils"`
	Eosinophils   string `json:"eosinophils"`
	MCV           string `json:"mcv"`
	MCH           string `json:"mch"`
	MCHC          string `json:"mchc"`
	Sodium        string `json:"sodium"`
	Potassium     string `json:"potassium"`
	Creatinine    string `json:"creatinine"`
	Calcium       string `json:"calcium"`
	Phosphorus    string `json:"phosphorus"`
	UreaNitrogen  string `json:"urea_nitrogen"`
	Albumin       string `json:"albumin"`
}

func (in *Input) validate() error {
	if in.TestDate == "" {
		return fmt.Errorf("%w: test_date is required", ErrValidation)
	}
	if !isodate.Valid(in.TestDate) {
		return fmt.Errorf("%w: test_date must be YYYY-MM-DD, got %q", ErrValidation, in.TestDate)
	}
	return nil
}

func (in *Input) apply(lr *LabResult) {
	lr.TestDate = in.TestDate
	lr.RBC = in.RBC
	lr.Hematocrit = in.Hematocrit
	lr.Hemoglobin = in.Hemoglobin
	lr.WBC = in.WBC
	lr.PlateletCount = in.PlateletCount
	lr.Neutrophils = in.Neutrophils
	lr.Lymphocytes = in.Lymphocytes
	lr.Monocytes = in.Monocytes
	lr.Basophils = in.Basophils
	lr.Eosinophils = in.Eosinophils
	lr.MCV = in.MCV
	lr.MCH = in.MCH
	lr.MCHC = in.MCHC
	lr.Sodium = in.Sodium
	lr.Potassium = in.Potassium
	lr.Creatinine = in.Creatinine
	lr.Calcium = in.Calcium
	lr.Phosphorus = in.Phosphorus
	lr.UreaNitrogen = in.UreaNitrogen
	lr.Albumin = in.Albumin
}

type Service struct {
	labs Repository
}

func NewService(labs Repository) *Service {
	return &Service{labs: labs}
}

func (s *Service) Create(ctx context.Context, patientID uuid.UUID, in *Input) (*LabResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	lr := &LabResult{PatientID: patientID}
	in.apply(lr)
	if err := s.labs.Create(ctx, lr); err != nil {
		return nil, err
	}
	return lr, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*LabResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	lr, err := s.labs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(lr)
	if err := s.labs.Update(ctx, lr); err != nil {
		return nil, err
	}
	return lr, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*LabResult, error) {
	return s.labs.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LabResult, error) {
	return s.labs.ListByPatient(ctx, patientID)
}
