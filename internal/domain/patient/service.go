package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renaltrack/renaltrack/pkg/isodate"
)

// Input carries the mutable patient fields for create and update; id,
// creator and the registration timestamp are owned by the registry.
type Input struct {
	FullName         string `json:"full_name"`
	BirthDate        string `json:"birth_date"`
	Sex              string `json:"sex"`
	Address          string `json:"address"`
	ContactNo        string `json:"contact_no"`
	EmergencyContact string `json:"emergency_contact"`
	Diagnosis        string `json:"diagnosis"`
}

func (in *Input) validate() error {
	if in.FullName == "" {
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	}
	if in.BirthDate != "" && !isodate.Valid(in.BirthDate) {
		return fmt.Errorf("%w: birth_date must be YYYY-MM-DD, got %q", ErrValidation, in.BirthDate)
	}
	return nil
}

type Service struct {
	patients Repository
	now      func() time.Time
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients, now: time.Now}
}

// Create registers a new patient. The stored age is computed from the birth
// date at this moment and not recomputed on read.
func (s *Service) Create(ctx context.Context, in *Input, createdBy string) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &Patient{
		FullName:         in.FullName,
		BirthDate:        in.BirthDate,
		Sex:              in.Sex,
		Age:              isodate.Age(in.BirthDate, s.now()),
		Address:          in.Address,
		ContactNo:        in.ContactNo,
		EmergencyContact: in.EmergencyContact,
		Diagnosis:        in.Diagnosis,
		CreatedBy:        createdBy,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces all mutable fields of an existing patient. ID and creator
// are immutable; the stored age snapshot is recomputed from the submitted
// birth date.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *Input) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.FullName = in.FullName
	p.BirthDate = in.BirthDate
	p.Sex = in.Sex
	p.Age = isodate.Age(in.BirthDate, s.now())
	p.Address = in.Address
	p.ContactNo = in.ContactNo
	p.EmergencyContact = in.EmergencyContact
	p.Diagnosis = in.Diagnosis

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.Search(ctx, term, limit, offset)
}

// Stats gathers the dashboard counters. Active means at least one medication
// that is ongoing or ends on/after today; recent means registered within the
// last windowDays.
func (s *Service) Stats(ctx context.Context, windowDays int) (*Stats, error) {
	total, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.patients.CountActive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	recent, err := s.patients.CountRecent(ctx, windowDays)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalPatients: total, ActivePatients: active, RecentPatients: recent}, nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]*RecentEntry, error) {
	return s.patients.ListRecent(ctx, limit)
}
