package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stock-backend/internal/models"
)

// memTable is one in-memory collection. Rows are stored by value so callers
// only ever see copies. Ids come from a counter that never goes backwards, so
// a deleted id is never handed out again.
type memTable[T any] struct {
	mu     *sync.RWMutex
	name   string
	rows   map[int]T
	order  []int
	nextID int
	id     func(*T) int
	// stamp assigns id and timestamps; prev is nil on create
	stamp func(v *T, id int, now time.Time, prev *T)
}

func newMemTable[T any](mu *sync.RWMutex, name string, id func(*T) int, stamp func(*T, int, time.Time, *T)) *memTable[T] {
	return &memTable[T]{mu: mu, name: name, rows: make(map[int]T), id: id, stamp: stamp}
}

func (t *memTable[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep != nil && !keep(&row) {
			continue
		}
		out = append(out, &row)
	}
	return out
}

func (t *memTable[T]) get(id int) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("get %s %d: %w", t.name, id, models.ErrNotFound)
	}
	return &row, nil
}

// create stores v under a fresh id. unique, when set, runs under the write lock.
func (t *memTable[T]) create(v *T, unique func(*T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if unique != nil {
		if err := unique(v); err != nil {
			return err
		}
	}
	t.nextID++
	t.stamp(v, t.nextID, time.Now(), nil)
	t.rows[t.nextID] = *v
	t.order = append(t.order, t.nextID)
	return nil
}

func (t *memTable[T]) update(v *T, unique func(*T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	prev, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("update %s %d: %w", t.name, id, models.ErrNotFound)
	}
	if unique != nil {
		if err := unique(v); err != nil {
			return err
		}
	}
	t.stamp(v, id, time.Now(), &prev)
	t.rows[id] = *v
	return nil
}

func (t *memTable[T]) delete(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *memTable[T]) count(keep func(*T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if keep == nil {
		return len(t.rows)
	}
	n := 0
	for _, row := range t.rows {
		if keep(&row) {
			n++
		}
	}
	return n
}

// NewMemoryStore returns a Store kept entirely in process memory. All six
// collections share one mutex, so operations never interleave.
func NewMemoryStore() *Store {
	mu := &sync.RWMutex{}
	return &Store{
		Products:     &memProducts{t: newMemTable(mu, "product", func(p *models.Product) int { return p.ID }, stampProduct)},
		Racks:        &memRacks{t: newMemTable(mu, "rack", func(r *models.Rack) int { return r.ID }, stampRack)},
		Containers:   &memContainers{t: newMemTable(mu, "container", func(c *models.Container) int { return c.ID }, stampContainer)},
		Measurements: &memMeasurements{t: newMemTable(mu, "measurement", func(m *models.Measurement) int { return m.ID }, stampMeasurement)},
		Inward:       newMemEntries(mu, models.DirectionInward),
		Outward:      newMemEntries(mu, models.DirectionOutward),
		Pinger:       memPinger{},
	}
}

type memPinger struct{}

func (memPinger) Ping(context.Context) error { return nil }

func stampProduct(v *models.Product, id int, now time.Time, prev *models.Product) {
	v.ID, v.UpdatedAt, v.CreatedAt = id, now, now
	if prev != nil {
		v.CreatedAt = prev.CreatedAt
	}
}

func stampRack(v *models.Rack, id int, now time.Time, prev *models.Rack) {
	v.ID, v.UpdatedAt, v.CreatedAt = id, now, now
	if prev != nil {
		v.CreatedAt = prev.CreatedAt
	}
}

func stampContainer(v *models.Container, id int, now time.Time, prev *models.Container) {
	v.ID, v.UpdatedAt, v.CreatedAt = id, now, now
	if prev != nil {
		v.CreatedAt = prev.CreatedAt
	}
}

func stampMeasurement(v *models.Measurement, id int, now time.Time, prev *models.Measurement) {
	v.ID, v.UpdatedAt, v.CreatedAt = id, now, now
	if prev != nil {
		v.CreatedAt = prev.CreatedAt
	}
}

// Products

type memProducts struct{ t *memTable[models.Product] }

func (m *memProducts) List(ctx context.Context) ([]*models.Product, error) { return m.t.list(nil), nil }

func (m *memProducts) Get(ctx context.Context, id int) (*models.Product, error) { return m.t.get(id) }

func (m *memProducts) Create(ctx context.Context, p *models.Product) error { return m.t.create(p, nil) }

func (m *memProducts) Update(ctx context.Context, p *models.Product) error { return m.t.update(p, nil) }

func (m *memProducts) Delete(ctx context.Context, id int) (bool, error) { return m.t.delete(id), nil }

func (m *memProducts) Count(ctx context.Context) (int, error) { return m.t.count(nil), nil }

func (m *memProducts) CountByRackLabel(ctx context.Context, rack string) (int, error) {
	return m.t.count(func(p *models.Product) bool { return p.Rack == rack }), nil
}

func (m *memProducts) CountByMeasurement(ctx context.Context, measurement string) (int, error) {
	return m.t.count(func(p *models.Product) bool { return p.Measurement == measurement }), nil
}

// Racks

type memRacks struct{ t *memTable[models.Rack] }

// uniqueNumber mirrors the UNIQUE constraint on racks.number. It is called
// with the table lock held, so it reads rows directly.
func (m *memRacks) uniqueNumber(r *models.Rack) error {
	for id, existing := range m.t.rows {
		if id != r.ID && existing.Number == r.Number {
			return fmt.Errorf("rack number %q: %w: duplicate value", r.Number, models.ErrValidation)
		}
	}
	return nil
}

func (m *memRacks) List(ctx context.Context) ([]*models.Rack, error) { return m.t.list(nil), nil }

func (m *memRacks) Get(ctx context.Context, id int) (*models.Rack, error) { return m.t.get(id) }

func (m *memRacks) Create(ctx context.Context, r *models.Rack) error {
	r.ID = 0
	return m.t.create(r, m.uniqueNumber)
}

func (m *memRacks) Update(ctx context.Context, r *models.Rack) error {
	return m.t.update(r, m.uniqueNumber)
}

func (m *memRacks) Delete(ctx context.Context, id int) (bool, error) { return m.t.delete(id), nil }

func (m *memRacks) Count(ctx context.Context) (int, error) { return m.t.count(nil), nil }

// Containers

type memContainers struct{ t *memTable[models.Container] }

func (m *memContainers) List(ctx context.Context) ([]*models.Container, error) {
	return m.t.list(nil), nil
}

func (m *memContainers) Get(ctx context.Context, id int) (*models.Container, error) {
	return m.t.get(id)
}

func (m *memContainers) Create(ctx context.Context, c *models.Container) error {
	return m.t.create(c, nil)
}

func (m *memContainers) Update(ctx context.Context, c *models.Container) error {
	return m.t.update(c, nil)
}

func (m *memContainers) Delete(ctx context.Context, id int) (bool, error) {
	return m.t.delete(id), nil
}

func (m *memContainers) Count(ctx context.Context) (int, error) { return m.t.count(nil), nil }

// Measurements

type memMeasurements struct{ t *memTable[models.Measurement] }

func (m *memMeasurements) List(ctx context.Context) ([]*models.Measurement, error) {
	return m.t.list(nil), nil
}

func (m *memMeasurements) Get(ctx context.Context, id int) (*models.Measurement, error) {
	return m.t.get(id)
}

func (m *memMeasurements) Create(ctx context.Context, v *models.Measurement) error {
	return m.t.create(v, nil)
}

func (m *memMeasurements) Update(ctx context.Context, v *models.Measurement) error {
	return m.t.update(v, nil)
}

func (m *memMeasurements) Delete(ctx context.Context, id int) (bool, error) {
	return m.t.delete(id), nil
}

func (m *memMeasurements) Count(ctx context.Context) (int, error) { return m.t.count(nil), nil }

// Entries

type memEntries struct {
	t         *memTable[models.StockEntry]
	direction models.Direction
}

func newMemEntries(mu *sync.RWMutex, direction models.Direction) *memEntries {
	stamp := func(v *models.StockEntry, id int, now time.Time, prev *models.StockEntry) {
		v.ID, v.Direction, v.UpdatedAt, v.CreatedAt = id, direction, now, now
		if prev != nil {
			v.CreatedAt = prev.CreatedAt
		}
	}
	return &memEntries{
		t:         newMemTable(mu, string(direction)+" entry", func(e *models.StockEntry) int { return e.ID }, stamp),
		direction: direction,
	}
}

func (m *memEntries) List(ctx context.Context, filter models.EntryFilter) ([]*models.StockEntry, error) {
	return m.t.list(func(e *models.StockEntry) bool {
		if filter.ProductID > 0 && e.ProductID != filter.ProductID {
			return false
		}
		// dates are canonical YYYY-MM-DD, so string order is date order
		if filter.From != "" && e.Date < filter.From {
			return false
		}
		if filter.To != "" && e.Date > filter.To {
			return false
		}
		return true
	}), nil
}

func (m *memEntries) Get(ctx context.Context, id int) (*models.StockEntry, error) {
	return m.t.get(id)
}

func (m *memEntries) Create(ctx context.Context, e *models.StockEntry) error {
	return m.t.create(e, nil)
}

func (m *memEntries) Update(ctx context.Context, e *models.StockEntry) error {
	return m.t.update(e, nil)
}

func (m *memEntries) Delete(ctx context.Context, id int) (bool, error) {
	return m.t.delete(id), nil
}

func (m *memEntries) CountByProduct(ctx context.Context, productID int) (int, error) {
	return m.t.count(func(e *models.StockEntry) bool { return e.ProductID == productID }), nil
}

func (m *memEntries) CountByRack(ctx context.Context, rackID int) (int, error) {
	return m.t.count(func(e *models.StockEntry) bool { return e.RackID == rackID }), nil
}

func (m *memEntries) CountByContainer(ctx context.Context, containerID int) (int, error) {
	return m.t.count(func(e *models.StockEntry) bool { return e.ContainerID == containerID }), nil
}
