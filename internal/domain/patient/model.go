package patient

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/renaltrack/renaltrack/pkg/isodate"
)

var (
	ErrNotFound   = errors.New("patient not found")
	ErrValidation = errors.New("invalid patient")
)

// Patient maps to the patients table. Age is computed from the birth date at
// write time and stored; CurrentAge derives the present-day value for callers
// that need it fresh.
type Patient struct {
	ID               uuid.UUID `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"full_name"`
	BirthDate        string    `db:"birth_date" json:"birth_date,omitempty"`
	Sex              string    `db:"sex" json:"sex,omitempty"`
	Age              int       `db:"age" json:"age"`
	Address          string    `db:"address" json:"address,omitempty"`
	ContactNo        string    `db:"contact_no" json:"contact_no,omitempty"`
	EmergencyContact string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	Diagnosis        string    `db:"diagnosis" json:"diagnosis,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	CreatedBy        string    `db:"created_by" json:"created_by,omitempty"`
}

// CurrentAge derives the patient's age from the birth date as of the given
// time, independent of the stored Age snapshot.
func (p *Patient) CurrentAge(asOf time.Time) int {
	return isodate.Age(p.BirthDate, asOf)
}

// Stats are the practice dashboard counters.
type Stats struct {
	TotalPatients  int `json:"total_patients"`
	ActivePatients int `json:"active_patients"`
	RecentPatients int `json:"recent_patients"`
}

// RecentEntry is one row of the dashboard's recent-activity feed: a newly
// registered patient joined with the display name of whoever registered them.
type RecentEntry struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
}
