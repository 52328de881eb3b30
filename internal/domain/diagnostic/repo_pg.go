package diagnostic

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

const diagnosticCols = `id, patient_id, test_name, test_date,
	COALESCE(results, ''), COALESCE(notes, '')`

func scanDiagnostic(row pgx.Row) (*Diagnostic, error) {
	var d Diagnostic
	err := row.Scan(&d.ID, &d.PatientID, &d.TestName, &d.TestDate, &d.Results, &d.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Diagnostic) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO diagnostics (id, patient_id, test_name, test_date, results, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.PatientID, d.TestName, d.TestDate, d.Results, d.Notes)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return patient.ErrNotFound
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Diagnostic, error) {
	return scanDiagnostic(r.pool.QueryRow(ctx,
		`SELECT `+diagnosticCols+` FROM diagnostics WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Diagnostic) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE diagnostics SET test_name = $2, test_date = $3, results = $4, notes = $5
		WHERE id = $1`,
		d.ID, d.TestName, d.TestDate, d.Results, d.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Diagnostic, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+diagnosticCols+` FROM diagnostics
		WHERE patient_id = $1
		ORDER BY test_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diags []*Diagnostic
	for rows.Next() {
		d, err := scanDiagnostic(rows)
		if err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
