package labresult

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

const labResultCols = `id, patient_id, test_date,
	COALESCE(rbc, ''), COALESCE(hematocrit, ''), COALESCE(hemoglobin, ''),
	COALESCE(wbc, ''), COALESCE(platelet_count, ''), COALESCE(neutrophils, ''),
	COALESCE(lymphocytes, ''), COALESCE(monocytes, ''), COALESCE(basophils, ''),
	COALESCE(eosinophils, ''), COALESCE(mcv, ''), COALESCE(mch, ''),
	COALESCE(mchc, ''), COALESCE(sodium, ''), COALESCE(potassium, ''),
	COALESCE(creatinine, ''), COALESCE(calcium, ''), COALESCE(phosphorus, ''),
	COALESCE(urea_nitrogen, ''), COALESCE(albumin, '')`

func scanLabResult(row pgx.Row) (*LabResult, error) {
	var lr LabResult
	err := row.Scan(&lr.ID, &lr.PatientID, &lr.TestDate,
		&lr.RBC, &lr.Hematocrit, &lr.Hemoglobin,
		&lr.WBC, &lr.PlateletCount, &lr.Neutrophils,
		&lr.Lymphocytes, &lr.Monocytes, &lr.Basophils,
		&lr.Eosinophils, &lr.MCV, &lr.MCH,
		&lr.MCHC, &lr.Sodium, &lr.Potassium,
		&lr.Creatinine, &lr.Calcium, &lr.Phosphorus,
		&lr.UreaNitrogen, &lr.Albumin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repoPG) Create(ctx context.Context, lr *LabResult) error {
	lr.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_results (id, patient_id, test_date,
			rbc, hematocrit, hemoglobin, wbc, platelet_count, neutrophils,
			lymphocytes, monocytes, basophils, eosinophils, mcv, mch, mchc,
			sodium, potassium, creatinine, calcium, phosphorus, urea_nitrogen, albumin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		lr.ID, lr.PatientID, lr.TestDate,
		lr.RBC, lr.Hematocrit, lr.Hemoglobin, lr.WBC, lr.PlateletCount, lr.Neutrophils,
		lr.Lymphocytes, lr.Monocytes, lr.Basophils, lr.Eosinophils, lr.MCV, lr.MCH, lr.MCHC,
		lr.Sodium, lr.Potassium, lr.Creatinine, lr.Calcium, lr.Phosphorus, lr.UreaNitrogen, lr.Albumin)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return patient.ErrNotFound
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabResult, error) {
	return scanLabResult(r.pool.QueryRow(ctx,
		`SELECT `+labResultCols+` FROM lab_results WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, lr *LabResult) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE lab_results SET test_date = $2,
			rbc = $3, hematocrit = $4, hemoglobin = $5, wbc = $6,
			platelet_count = $7, neutrophils = $8, lymphocytes = $9,
			monocytes = $10, basophils = $11, eosinophils = $12, mcv = $13,
			mch = $14, mchc = $15, sodium = $16, potassium = $17,
			creatinine = $18, calcium = $19, phosphorus = $20,
			urea_nitrogen = $21, albumin = $22
		WHERE id = $1`,
		lr.ID, lr.TestDate,
		lr.RBC, lr.Hematocrit, lr.Hemoglobin, lr.WBC,
		lr.PlateletCount, lr.Neutrophils, lr.Lymphocytes,
		lr.Monocytes, lr.Basophils, lr.Eosinophils, lr.MCV,
		lr.MCH, lr.MCHC, lr.Sodium, lr.Potassium,
		lr.Creatinine, lr.Calcium, lr.Phosphorus,
		lr.UreaNitrogen, lr.Albumin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LabResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+labResultCols+` FROM lab_results
		WHERE patient_id = $1
		ORDER BY test_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*LabResult
	for rows.Next() {
		lr, err := scanLabResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, lr)
	}
	return results, rows.Err()
}
