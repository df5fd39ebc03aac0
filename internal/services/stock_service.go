package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"stock-backend/internal/cache"
	"stock-backend/internal/ledger"
	"stock-backend/internal/metrics"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

// StockService derives the per-product stock summary and serves queries over it
type StockService struct {
	Store             *repositories.Store
	Cache             *cache.Cache
	Engine            ledger.Engine
	LowStockThreshold int
}

func NewStockService(store *repositories.Store, c *cache.Cache, engine ledger.Engine, lowStockThreshold int) *StockService {
	return &StockService{
		Store:             store,
		Cache:             c,
		Engine:            engine,
		LowStockThreshold: lowStockThreshold,
	}
}

// GetStockSummary returns the full summary in product order. A cached copy
// is used when present; any write to products, racks or entries drops it.
func (s *StockService) GetStockSummary(ctx context.Context) ([]models.StockSummary, error) {
	rows, hit, err := loadView(ctx, s.Cache, cache.StockSummaryKey, s.computeSummary)
	if err != nil {
		return nil, err
	}
	if hit {
		metrics.SummaryCacheHits.WithLabelValues("hit").Inc()
	} else {
		metrics.SummaryCacheHits.WithLabelValues("miss").Inc()
	}
	return rows, nil
}

// loadView returns the view cached under key, or computes it. The result is
// cached only if no stock write invalidated the cache while it was computed.
func loadView[T any](ctx context.Context, c *cache.Cache, key string, compute func(context.Context) (T, error)) (T, bool, error) {
	if data, ok := c.Get(ctx, key); ok {
		var view T
		if err := json.Unmarshal(data, &view); err == nil {
			return view, true, nil
		}
	}

	gen, cacheable := c.Generation(ctx)
	view, err := compute(ctx)
	if err != nil {
		return view, false, err
	}
	if cacheable {
		if data, err := json.Marshal(view); err == nil {
			c.SetIfGeneration(ctx, key, data, gen)
		}
	}
	return view, false, nil
}

func (s *StockService) computeSummary(ctx context.Context) ([]models.StockSummary, error) {
	start := time.Now()
	defer func() { metrics.SummaryComputeDuration.Observe(time.Since(start).Seconds()) }()

	products, err := s.Store.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	inward, err := s.Store.Inward.List(ctx, models.EntryFilter{})
	if err != nil {
		return nil, err
	}
	outward, err := s.Store.Outward.List(ctx, models.EntryFilter{})
	if err != nil {
		return nil, err
	}
	return ledger.Summarize(products, inward, outward, s.LowStockThreshold), nil
}

// GetPaginatedStockSummary filters, pages and groups the summary. A page
// size above the engine maximum is rejected rather than silently capped.
func (s *StockService) GetPaginatedStockSummary(ctx context.Context, q ledger.Query) (*models.StockSummaryPage, error) {
	if s.Engine.MaxPageSize > 0 && q.PageSize > s.Engine.MaxPageSize {
		return nil, invalid("pageSize %d exceeds the maximum of %d", q.PageSize, s.Engine.MaxPageSize)
	}
	rows, err := s.GetStockSummary(ctx)
	if err != nil {
		return nil, err
	}
	page := s.Engine.Run(rows, q)
	return &page, nil
}

// AvailableRacks lists rack labels used by products, in first-seen order.
// Racks with no products do not appear.
func (s *StockService) AvailableRacks(ctx context.Context) ([]string, error) {
	rows, err := s.GetStockSummary(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.AvailableRacks(rows), nil
}

// CalculateNetWeight subtracts the container tare from gross. An unknown
// container leaves gross unchanged; other store failures are returned.
func (s *StockService) CalculateNetWeight(ctx context.Context, gross float64, containerID, containerQuantity int) (float64, error) {
	if containerID == 0 {
		return gross, nil
	}
	container, err := s.Store.Containers.Get(ctx, containerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return gross, nil
		}
		return 0, err
	}
	return ledger.NetWeight(gross, container, containerQuantity), nil
}

// Dashboard returns the landing page counters, cached like the summary
func (s *StockService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats, _, err := loadView(ctx, s.Cache, cache.StockDashboardKey, s.computeDashboard)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *StockService) computeDashboard(ctx context.Context) (models.DashboardStats, error) {
	rows, err := s.GetStockSummary(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	racks, err := s.Store.Racks.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return ledger.Dashboard(rows, racks), nil
}

// Refresh drops the cached summary and rebuilds it in the background
func (s *StockService) Refresh(ctx context.Context) {
	s.Cache.InvalidateStock(ctx)
	s.Cache.PreWarmKey(cache.StockSummaryKey, func(ctx context.Context) ([]byte, error) {
		rows, err := s.computeSummary(ctx)
		if err != nil {
			log.Printf("[Stock] Pre-warm failed: %v", err)
			return nil, err
		}
		return json.Marshal(rows)
	})
}
