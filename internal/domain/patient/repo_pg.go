package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renaltrack/renaltrack/pkg/isodate"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const patientCols = `id, full_name, COALESCE(birth_date, ''), COALESCE(sex, ''),
	COALESCE(age, 0), COALESCE(address, ''), COALESCE(contact_no, ''),
	COALESCE(emergency_contact, ''), COALESCE(diagnosis, ''), created_at,
	COALESCE(created_by, '')`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.BirthDate, &p.Sex, &p.Age,
		&p.Address, &p.ContactNo, &p.EmergencyContact, &p.Diagnosis,
		&p.CreatedAt, &p.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, full_name, birth_date, sex, age, address,
			contact_no, emergency_contact, diagnosis, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.FullName, p.BirthDate, p.Sex, p.Age, p.Address,
		p.ContactNo, p.EmergencyContact, p.Diagnosis, p.CreatedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET full_name = $2, birth_date = $3, sex = $4, age = $5,
			address = $6, contact_no = $7, emergency_contact = $8, diagnosis = $9
		WHERE id = $1`,
		p.ID, p.FullName, p.BirthDate, p.Sex, p.Age,
		p.Address, p.ContactNo, p.EmergencyContact, p.Diagnosis)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + term + "%"

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM patients
		WHERE full_name ILIKE $1 OR diagnosis ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+patientCols+` FROM patients
		WHERE full_name ILIKE $1 OR diagnosis ILIKE $1
		ORDER BY full_name ASC
		LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *repoPG) CountActive(ctx context.Context, asOf time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT patient_id) FROM medications
		WHERE end_date IS NULL OR end_date >= $1`, isodate.Format(asOf)).Scan(&n)
	return n, err
}

func (r *repoPG) CountRecent(ctx context.Context, windowDays int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM patients
		WHERE created_at >= NOW() - ($1 || ' days')::interval`, windowDays).Scan(&n)
	return n, err
}

func (r *repoPG) ListRecent(ctx context.Context, limit int) ([]*RecentEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.full_name, COALESCE(p.diagnosis, ''), COALESCE(u.full_name, '')
		FROM patients p
		LEFT JOIN users u ON p.created_by = u.username
		ORDER BY p.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*RecentEntry
	for rows.Next() {
		var e RecentEntry
		if err := rows.Scan(&e.ID, &e.FullName, &e.Diagnosis, &e.CreatedByName); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
