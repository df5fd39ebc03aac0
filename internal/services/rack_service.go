package services

import (
	"context"
	"fmt"
	"strings"

	"stock-backend/internal/cache"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

// Display fallbacks for dangling references
const (
	UnknownRack    = "Unknown"
	UnknownProduct = "Unknown Product"
)

type RackService struct {
	Store *repositories.Store
	Cache *cache.Cache
}

func NewRackService(store *repositories.Store, c *cache.Cache) *RackService {
	return &RackService{Store: store, Cache: c}
}

func rackFromRequest(req *models.RackRequest) *models.Rack {
	return &models.Rack{
		Number: strings.TrimSpace(req.Number),
		Temp1:  req.Temp1,
		Temp2:  req.Temp2,
		Remark: req.Remark,
	}
}

func (s *RackService) CreateRack(ctx context.Context, req *models.RackRequest) (*models.Rack, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	rack := rackFromRequest(req)
	if err := s.Store.Racks.Create(ctx, rack); err != nil {
		return nil, err
	}
	s.Cache.InvalidateStock(ctx)
	return rack, nil
}

func (s *RackService) GetRack(ctx context.Context, id int) (*models.Rack, error) {
	return s.Store.Racks.Get(ctx, id)
}

func (s *RackService) ListRacks(ctx context.Context) ([]*models.Rack, error) {
	return s.Store.Racks.List(ctx)
}

// UpdateRack replaces a rack. Products keep their old rack label: the label
// is free text and is not rewritten.
func (s *RackService) UpdateRack(ctx context.Context, id int, req *models.RackRequest) (*models.Rack, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	rack := rackFromRequest(req)
	rack.ID = id
	if err := s.Store.Racks.Update(ctx, rack); err != nil {
		return nil, err
	}
	s.Cache.InvalidateStock(ctx)
	return rack, nil
}

// DeleteRack refuses while entries reference the rack id or products carry
// its number as their rack label
func (s *RackService) DeleteRack(ctx context.Context, id int) error {
	rack, err := s.Store.Racks.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, direction := range []models.Direction{models.DirectionInward, models.DirectionOutward} {
		n, err := s.Store.Entries(direction).CountByRack(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return referenced("rack", id, n, string(direction)+" entries")
		}
	}

	n, err := s.Store.Products.CountByRackLabel(ctx, rack.Number)
	if err != nil {
		return err
	}
	if n > 0 {
		return referenced("rack", id, n, "products")
	}

	removed, err := s.Store.Racks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("delete rack %d: %w", id, models.ErrNotFound)
	}
	s.Cache.InvalidateStock(ctx)
	return nil
}

// RackLabel resolves a rack id for display. Zero or missing ids read "Unknown".
func (s *RackService) RackLabel(ctx context.Context, id int) string {
	if id == 0 {
		return UnknownRack
	}
	r, err := s.Store.Racks.Get(ctx, id)
	if err != nil {
		return UnknownRack
	}
	return r.Number
}
