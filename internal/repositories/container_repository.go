package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/models"
)

type ContainerRepository struct {
	DB *pgxpool.Pool
}

func NewContainerRepository(db *pgxpool.Pool) *ContainerRepository {
	return &ContainerRepository{DB: db}
}

func scanContainer(row pgx.Row) (*models.Container, error) {
	var c models.Container
	if err := row.Scan(&c.ID, &c.Type, &c.Weight, &c.Remark, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContainerRepository) List(ctx context.Context) ([]*models.Container, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, type, weight, remark, created_at, updated_at FROM containers ORDER BY id`)
	if err != nil {
		return nil, mapError("list containers", err)
	}
	defer rows.Close()

	containers := make([]*models.Container, 0)
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, mapError("scan container", err)
		}
		containers = append(containers, c)
	}
	return containers, mapError("list containers", rows.Err())
}

func (r *ContainerRepository) Get(ctx context.Context, id int) (*models.Container, error) {
	c, err := scanContainer(r.DB.QueryRow(ctx,
		`SELECT id, type, weight, remark, created_at, updated_at FROM containers WHERE id=$1`, id))
	if err != nil {
		return nil, mapError("get container", err)
	}
	return c, nil
}

func (r *ContainerRepository) Create(ctx context.Context, c *models.Container) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO containers(type, weight, remark) VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		c.Type, c.Weight, c.Remark,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError("create container", err)
}

func (r *ContainerRepository) Update(ctx context.Context, c *models.Container) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE containers SET type=$1, weight=$2, remark=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4 RETURNING created_at, updated_at`,
		c.Type, c.Weight, c.Remark, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapError("update container", err)
}

func (r *ContainerRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM containers WHERE id=$1`, id)
	if err != nil {
		return false, mapError("delete container", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ContainerRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM containers`).Scan(&n)
	return n, mapError("count containers", err)
}
