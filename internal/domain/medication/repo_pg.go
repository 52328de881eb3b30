package medication

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renaltrack/renaltrack/internal/domain/patient"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const medicationCols = `id, patient_id, name, dosage, frequency, start_date,
	end_date, COALESCE(notes, '')`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dosage, &m.Frequency,
		&m.StartDate, &m.EndDate, &m.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medications (id, patient_id, name, dosage, frequency,
			start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.PatientID, m.Name, m.Dosage, m.Frequency,
		m.StartDate, m.EndDate, m.Notes)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return patient.ErrNotFound
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return scanMedication(r.pool.QueryRow(ctx,
		`SELECT `+medicationCols+` FROM medications WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, m *Medication) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medications SET name = $2, dosage = $3, frequency = $4,
			start_date = $5, end_date = $6, notes = $7
		WHERE id = $1`,
		m.ID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.EndDate, m.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+medicationCols+` FROM medications
		WHERE patient_id = $1
		ORDER BY start_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}
