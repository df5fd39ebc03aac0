package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"stock-backend/internal/cache"
	"stock-backend/internal/ledger"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
	"stock-backend/internal/timeutil"
)

// EntryService manages inward and outward movements. Both directions share
// the same rules; only the backing collection differs.
type EntryService struct {
	Store *repositories.Store
	Cache *cache.Cache
}

func NewEntryService(store *repositories.Store, c *cache.Cache) *EntryService {
	return &EntryService{Store: store, Cache: c}
}

// prepare validates req and turns it into an entry. References are checked
// against the store: the product must exist, and a non-zero rack or
// container must exist too.
func (s *EntryService) prepare(ctx context.Context, direction models.Direction, req *models.StockEntryRequest) (*models.StockEntry, error) {
	if direction != models.DirectionInward && direction != models.DirectionOutward {
		return nil, invalid("unknown direction %q", direction)
	}

	req.Date = strings.TrimSpace(req.Date)
	if req.Date == "" {
		req.Date = timeutil.Today()
	} else if normalized, err := timeutil.NormalizeDate(req.Date); err == nil {
		req.Date = normalized
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.Store.Products.Get(ctx, req.ProductID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, invalid("product %d does not exist", req.ProductID)
		}
		return nil, err
	}
	if req.RackID != 0 {
		if _, err := s.Store.Racks.Get(ctx, req.RackID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, invalid("rack %d does not exist", req.RackID)
			}
			return nil, err
		}
	}

	var container *models.Container
	if req.ContainerID != 0 {
		c, err := s.Store.Containers.Get(ctx, req.ContainerID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, invalid("container %d does not exist", req.ContainerID)
			}
			return nil, err
		}
		container = c
	}

	entry := &models.StockEntry{
		Direction:         direction,
		ProductID:         req.ProductID,
		Quantity:          req.Quantity,
		Date:              req.Date,
		RackID:            req.RackID,
		ContainerID:       req.ContainerID,
		ContainerQuantity: req.ContainerQuantity,
		GrossWeight:       req.GrossWeight,
		Remark1:           req.Remark1,
		Remark2:           req.Remark2,
		Remark3:           req.Remark3,
	}
	if req.NetWeight != nil {
		entry.NetWeight = *req.NetWeight
	} else {
		entry.NetWeight = ledger.NetWeight(req.GrossWeight, container, req.ContainerQuantity)
	}
	return entry, nil
}

func (s *EntryService) CreateEntry(ctx context.Context, direction models.Direction, req *models.StockEntryRequest) (*models.StockEntry, error) {
	entry, err := s.prepare(ctx, direction, req)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Entries(direction).Create(ctx, entry); err != nil {
		return nil, err
	}
	s.Cache.InvalidateStock(ctx)
	return entry, nil
}

func (s *EntryService) GetEntry(ctx context.Context, direction models.Direction, id int) (*models.StockEntry, error) {
	return s.Store.Entries(direction).Get(ctx, id)
}

func (s *EntryService) ListEntries(ctx context.Context, direction models.Direction, filter models.EntryFilter) ([]*models.StockEntry, error) {
	if err := normalizeFilter(&filter); err != nil {
		return nil, err
	}
	return s.Store.Entries(direction).List(ctx, filter)
}

func (s *EntryService) UpdateEntry(ctx context.Context, direction models.Direction, id int, req *models.StockEntryRequest) (*models.StockEntry, error) {
	entry, err := s.prepare(ctx, direction, req)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	if err := s.Store.Entries(direction).Update(ctx, entry); err != nil {
		return nil, err
	}
	s.Cache.InvalidateStock(ctx)
	return entry, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, direction models.Direction, id int) error {
	removed, err := s.Store.Entries(direction).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("delete %s entry %d: %w", direction, id, models.ErrNotFound)
	}
	s.Cache.InvalidateStock(ctx)
	return nil
}

// ListEntryViews lists entries with product, rack and container labels
// resolved. Dangling references get the display fallbacks.
func (s *EntryService) ListEntryViews(ctx context.Context, direction models.Direction, filter models.EntryFilter) ([]models.StockEntryView, error) {
	entries, err := s.ListEntries(ctx, direction, filter)
	if err != nil {
		return nil, err
	}
	products, err := s.Store.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	racks, err := s.Store.Racks.List(ctx)
	if err != nil {
		return nil, err
	}
	containers, err := s.Store.Containers.List(ctx)
	if err != nil {
		return nil, err
	}

	productNames := lo.SliceToMap(products, func(p *models.Product) (int, string) { return p.ID, p.Name })
	rackNumbers := lo.SliceToMap(racks, func(r *models.Rack) (int, string) { return r.ID, r.Number })
	containerTypes := lo.SliceToMap(containers, func(c *models.Container) (int, string) { return c.ID, c.Type })

	views := make([]models.StockEntryView, 0, len(entries))
	for _, e := range entries {
		view := models.StockEntryView{
			StockEntry:    *e,
			ProductName:   lo.ValueOr(productNames, e.ProductID, UnknownProduct),
			RackNumber:    lo.ValueOr(rackNumbers, e.RackID, UnknownRack),
			ContainerType: containerTypes[e.ContainerID],
		}
		views = append(views, view)
	}
	return views, nil
}

func normalizeFilter(filter *models.EntryFilter) error {
	for _, date := range []*string{&filter.From, &filter.To} {
		if *date == "" {
			continue
		}
		normalized, err := timeutil.NormalizeDate(*date)
		if err != nil {
			return invalid("%v", err)
		}
		*date = normalized
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return invalid("from %s is after to %s", filter.From, filter.To)
	}
	return nil
}
