package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/models"
)

type MeasurementRepository struct {
	DB *pgxpool.Pool
}

func NewMeasurementRepository(db *pgxpool.Pool) *MeasurementRepository {
	return &MeasurementRepository{DB: db}
}

func scanMeasurement(row pgx.Row) (*models.Measurement, error) {
	var m models.Measurement
	if err := row.Scan(&m.ID, &m.Type, &m.Temp1, &m.Temp2, &m.Remark, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeasurementRepository) List(ctx context.Context) ([]*models.Measurement, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, type, temp1, temp2, remark, created_at, updated_at FROM measurements ORDER BY id`)
	if err != nil {
		return nil, mapError("list measurements", err)
	}
	defer rows.Close()

	measurements := make([]*models.Measurement, 0)
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, mapError("scan measurement", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, mapError("list measurements", rows.Err())
}

func (r *MeasurementRepository) Get(ctx context.Context, id int) (*models.Measurement, error) {
	m, err := scanMeasurement(r.DB.QueryRow(ctx,
		`SELECT id, type, temp1, temp2, remark, created_at, updated_at FROM measurements WHERE id=$1`, id))
	if err != nil {
		return nil, mapError("get measurement", err)
	}
	return m, nil
}

func (r *MeasurementRepository) Create(ctx context.Context, m *models.Measurement) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO measurements(type, temp1, temp2, remark) VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		m.Type, m.Temp1, m.Temp2, m.Remark,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return mapError("create measurement", err)
}

func (r *MeasurementRepository) Update(ctx context.Context, m *models.Measurement) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE measurements SET type=$1, temp1=$2, temp2=$3, remark=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5 RETURNING created_at, updated_at`,
		m.Type, m.Temp1, m.Temp2, m.Remark, m.ID,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapError("update measurement", err)
}

func (r *MeasurementRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM measurements WHERE id=$1`, id)
	if err != nil {
		return false, mapError("delete measurement", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MeasurementRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&n)
	return n, mapError("count measurements", err)
}
