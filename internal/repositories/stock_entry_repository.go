package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var entryColumns = []string{
	"id", "product_id", "quantity", "entry_date::text", "COALESCE(rack_id, 0)", "COALESCE(container_id, 0)",
	"container_quantity", "gross_weight", "net_weight", "remark1", "remark2", "remark3", "created_at", "updated_at",
}

// StockEntryRepository stores one direction of movements. Inward and outward
// entries have identical columns and live in inward_entries / outward_entries.
type StockEntryRepository struct {
	DB        *pgxpool.Pool
	table     string
	direction models.Direction
}

func NewStockEntryRepository(db *pgxpool.Pool, direction models.Direction) *StockEntryRepository {
	table := "inward_entries"
	if direction == models.DirectionOutward {
		table = "outward_entries"
	}
	return &StockEntryRepository{DB: db, table: table, direction: direction}
}

func (r *StockEntryRepository) scan(row pgx.Row) (*models.StockEntry, error) {
	e := models.StockEntry{Direction: r.direction}
	err := row.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.Date, &e.RackID, &e.ContainerID,
		&e.ContainerQuantity, &e.GrossWeight, &e.NetWeight, &e.Remark1, &e.Remark2, &e.Remark3,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *StockEntryRepository) List(ctx context.Context, filter models.EntryFilter) ([]*models.StockEntry, error) {
	q := psql.Select(entryColumns...).From(r.table).OrderBy("entry_date", "id")
	if filter.ProductID > 0 {
		q = q.Where(sq.Eq{"product_id": filter.ProductID})
	}
	if filter.From != "" {
		q = q.Where("entry_date >= ?::text::date", filter.From)
	}
	if filter.To != "" {
		q = q.Where("entry_date <= ?::text::date", filter.To)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", r.table, err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list "+r.table, err)
	}
	defer rows.Close()

	entries := make([]*models.StockEntry, 0)
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, mapError("scan "+r.table, err)
		}
		entries = append(entries, e)
	}
	return entries, mapError("list "+r.table, rows.Err())
}

func (r *StockEntryRepository) Get(ctx context.Context, id int) (*models.StockEntry, error) {
	query, args, err := psql.Select(entryColumns...).From(r.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", r.table, err)
	}
	e, err := r.scan(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError("get "+r.table, err)
	}
	return e, nil
}

func (r *StockEntryRepository) Create(ctx context.Context, e *models.StockEntry) error {
	query := fmt.Sprintf(`INSERT INTO %s(product_id, quantity, entry_date, rack_id, container_id,
         container_quantity, gross_weight, net_weight, remark1, remark2, remark3)
         VALUES($1, $2, $3::text::date, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id, created_at, updated_at`, r.table)
	err := r.DB.QueryRow(ctx, query,
		e.ProductID, e.Quantity, e.Date, nullableID(e.RackID), nullableID(e.ContainerID),
		e.ContainerQuantity, e.GrossWeight, e.NetWeight, e.Remark1, e.Remark2, e.Remark3,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	e.Direction = r.direction
	return mapError("create "+r.table, err)
}

func (r *StockEntryRepository) Update(ctx context.Context, e *models.StockEntry) error {
	query := fmt.Sprintf(`UPDATE %s SET product_id=$1, quantity=$2, entry_date=$3::text::date, rack_id=$4,
         container_id=$5, container_quantity=$6, gross_weight=$7, net_weight=$8, remark1=$9, remark2=$10,
         remark3=$11, updated_at=CURRENT_TIMESTAMP
         WHERE id=$12 RETURNING created_at, updated_at`, r.table)
	err := r.DB.QueryRow(ctx, query,
		e.ProductID, e.Quantity, e.Date, nullableID(e.RackID), nullableID(e.ContainerID),
		e.ContainerQuantity, e.GrossWeight, e.NetWeight, e.Remark1, e.Remark2, e.Remark3, e.ID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	e.Direction = r.direction
	return mapError("update "+r.table, err)
}

func (r *StockEntryRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, r.table), id)
	if err != nil {
		return false, mapError("delete "+r.table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *StockEntryRepository) countWhere(ctx context.Context, column string, id int) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(r.table).Where(sq.Eq{column: id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", r.table, err)
	}
	var n int
	err = r.DB.QueryRow(ctx, query, args...).Scan(&n)
	return n, mapError("count "+r.table, err)
}

func (r *StockEntryRepository) CountByProduct(ctx context.Context, productID int) (int, error) {
	return r.countWhere(ctx, "product_id", productID)
}

func (r *StockEntryRepository) CountByRack(ctx context.Context, rackID int) (int, error) {
	return r.countWhere(ctx, "rack_id", rackID)
}

func (r *StockEntryRepository) CountByContainer(ctx context.Context, containerID int) (int, error) {
	return r.countWhere(ctx, "container_id", containerID)
}

// NewPostgresStore wires the pgx repositories into a Store
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Products:     NewProductRepository(pool),
		Racks:        NewRackRepository(pool),
		Containers:   NewContainerRepository(pool),
		Measurements: NewMeasurementRepository(pool),
		Inward:       NewStockEntryRepository(pool, models.DirectionInward),
		Outward:      NewStockEntryRepository(pool, models.DirectionOutward),
		Pinger:       pool,
	}
}
