package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/models"
)

const productColumns = `id, name, rack, weight_per_piece, measurement, temp1, temp2, temp3, remark,
	opening_stock, created_at, updated_at`

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Rack, &p.WeightPerPiece, &p.Measurement,
		&p.Temp1, &p.Temp2, &p.Temp3, &p.Remark, &p.OpeningStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		products = append(products, p)
	}
	return products, mapError("list products", rows.Err())
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		return nil, mapError("get product", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO products(name, rack, weight_per_piece, measurement, temp1, temp2, temp3, remark, opening_stock)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Rack, p.WeightPerPiece, p.Measurement, p.Temp1, p.Temp2, p.Temp3, p.Remark, p.OpeningStock,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError("create product", err)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE products SET name=$1, rack=$2, weight_per_piece=$3, measurement=$4, temp1=$5, temp2=$6,
         temp3=$7, remark=$8, opening_stock=$9, updated_at=CURRENT_TIMESTAMP
         WHERE id=$10
         RETURNING created_at, updated_at`,
		p.Name, p.Rack, p.WeightPerPiece, p.Measurement, p.Temp1, p.Temp2, p.Temp3, p.Remark, p.OpeningStock, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError("update product", err)
}

func (r *ProductRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, mapError("delete product", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, mapError("count products", err)
}

func (r *ProductRepository) CountByRackLabel(ctx context.Context, rack string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE rack=$1`, rack).Scan(&n)
	return n, mapError("count products by rack", err)
}

func (r *ProductRepository) CountByMeasurement(ctx context.Context, measurement string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE measurement=$1`, measurement).Scan(&n)
	return n, mapError("count products by measurement", err)
}
