package repositories

import (
	"context"

	"stock-backend/internal/models"
)

// ProductStore persists products. Delete reports whether a row was removed.
type ProductStore interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByRackLabel(ctx context.Context, rack string) (int, error)
	CountByMeasurement(ctx context.Context, measurement string) (int, error)
}

type RackStore interface {
	List(ctx context.Context) ([]*models.Rack, error)
	Get(ctx context.Context, id int) (*models.Rack, error)
	Create(ctx context.Context, r *models.Rack) error
	Update(ctx context.Context, r *models.Rack) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}

type ContainerStore interface {
	List(ctx context.Context) ([]*models.Container, error)
	Get(ctx context.Context, id int) (*models.Container, error)
	Create(ctx context.Context, c *models.Container) error
	Update(ctx context.Context, c *models.Container) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}

type MeasurementStore interface {
	List(ctx context.Context) ([]*models.Measurement, error)
	Get(ctx context.Context, id int) (*models.Measurement, error)
	Create(ctx context.Context, m *models.Measurement) error
	Update(ctx context.Context, m *models.Measurement) error
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}

// EntryStore persists one direction of stock movements (inward or outward)
type EntryStore interface {
	List(ctx context.Context, filter models.EntryFilter) ([]*models.StockEntry, error)
	Get(ctx context.Context, id int) (*models.StockEntry, error)
	Create(ctx context.Context, e *models.StockEntry) error
	Update(ctx context.Context, e *models.StockEntry) error
	Delete(ctx context.Context, id int) (bool, error)
	CountByProduct(ctx context.Context, productID int) (int, error)
	CountByRack(ctx context.Context, rackID int) (int, error)
	CountByContainer(ctx context.Context, containerID int) (int, error)
}

// Pinger reports whether the backing engine is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the six collections of one storage engine. It is built once
// per process and handed to the services that need it.
type Store struct {
	Products     ProductStore
	Racks        RackStore
	Containers   ContainerStore
	Measurements MeasurementStore
	Inward       EntryStore
	Outward      EntryStore
	Pinger       Pinger
}

// Entries returns the entry collection for a direction
func (s *Store) Entries(direction models.Direction) EntryStore {
	if direction == models.DirectionOutward {
		return s.Outward
	}
	return s.Inward
}
