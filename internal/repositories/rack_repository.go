package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/models"
)

type RackRepository struct {
	DB *pgxpool.Pool
}

func NewRackRepository(db *pgxpool.Pool) *RackRepository {
	return &RackRepository{DB: db}
}

func scanRack(row pgx.Row) (*models.Rack, error) {
	var rack models.Rack
	if err := row.Scan(&rack.ID, &rack.Number, &rack.Temp1, &rack.Temp2, &rack.Remark,
		&rack.CreatedAt, &rack.UpdatedAt); err != nil {
		return nil, err
	}
	return &rack, nil
}

func (r *RackRepository) List(ctx context.Context) ([]*models.Rack, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, number, temp1, temp2, remark, created_at, updated_at FROM racks ORDER BY id`)
	if err != nil {
		return nil, mapError("list racks", err)
	}
	defer rows.Close()

	racks := make([]*models.Rack, 0)
	for rows.Next() {
		rack, err := scanRack(rows)
		if err != nil {
			return nil, mapError("scan rack", err)
		}
		racks = append(racks, rack)
	}
	return racks, mapError("list racks", rows.Err())
}

func (r *RackRepository) Get(ctx context.Context, id int) (*models.Rack, error) {
	rack, err := scanRack(r.DB.QueryRow(ctx,
		`SELECT id, number, temp1, temp2, remark, created_at, updated_at FROM racks WHERE id=$1`, id))
	if err != nil {
		return nil, mapError("get rack", err)
	}
	return rack, nil
}

func (r *RackRepository) Create(ctx context.Context, rack *models.Rack) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO racks(number, temp1, temp2, remark) VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		rack.Number, rack.Temp1, rack.Temp2, rack.Remark,
	).Scan(&rack.ID, &rack.CreatedAt, &rack.UpdatedAt)
	return mapError("create rack", err)
}

func (r *RackRepository) Update(ctx context.Context, rack *models.Rack) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE racks SET number=$1, temp1=$2, temp2=$3, remark=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5 RETURNING created_at, updated_at`,
		rack.Number, rack.Temp1, rack.Temp2, rack.Remark, rack.ID,
	).Scan(&rack.CreatedAt, &rack.UpdatedAt)
	return mapError("update rack", err)
}

func (r *RackRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM racks WHERE id=$1`, id)
	if err != nil {
		return false, mapError("delete rack", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RackRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM racks`).Scan(&n)
	return n, mapError("count racks", err)
}
