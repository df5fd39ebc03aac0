package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	log "github.com/sirupsen/logrus"

	"stock-backend/internal/cache"
	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

const seedLockKey = "lock:stock:seed"

// Migrator brings the schema up to date. The memory engine has none.
type Migrator interface {
	RunMigrations(ctx context.Context) error
}

// SeedService prepares the store on startup
type SeedService struct {
	Store    *repositories.Store
	Migrator Migrator
	Cache    *cache.Cache

	lockRetry redislock.RetryStrategy
}

func NewSeedService(store *repositories.Store, migrator Migrator, c *cache.Cache) *SeedService {
	return &SeedService{
		Store:     store,
		Migrator:  migrator,
		Cache:     c,
		lockRetry: redislock.LimitRetry(redislock.LinearBackoff(500*time.Millisecond), 60),
	}
}

// InitDatabase runs migrations and loads the sample dataset into an empty
// store. Calling it again is a no-op once any catalog data exists. With Redis
// configured, replicas starting together take a lock so only one seeds.
func (s *SeedService) InitDatabase(ctx context.Context) error {
	if s.Migrator != nil {
		if err := s.Migrator.RunMigrations(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	if client := s.Cache.Client(); client != nil {
		locker := redislock.New(client)
		lock, err := locker.Obtain(ctx, seedLockKey, 30*time.Second, &redislock.Options{
			RetryStrategy: s.lockRetry,
		})
		if errors.Is(err, redislock.ErrNotObtained) {
			return fmt.Errorf("obtain seed lock: %w", err)
		} else if err != nil {
			// Redis trouble should not keep the service from starting
			log.WithError(err).Warn("[Seed] Could not obtain seed lock; proceeding without it")
		} else {
			defer func() {
				_ = lock.Release(context.Background())
			}()
		}
	}

	empty, err := s.isEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		log.Printf("[Seed] Store already initialized, skipping seed data")
		return nil
	}

	if err := s.seed(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	s.Cache.InvalidateStock(ctx)
	log.Printf("[Seed] Sample data loaded")
	return nil
}

func (s *SeedService) isEmpty(ctx context.Context) (bool, error) {
	counters := []func(context.Context) (int, error){
		s.Store.Products.Count,
		s.Store.Racks.Count,
		s.Store.Containers.Count,
		s.Store.Measurements.Count,
	}
	for _, count := range counters {
		n, err := count(ctx)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

func (s *SeedService) seed(ctx context.Context) error {
	rackIDs := make(map[string]int)
	for _, number := range []string{"A1", "A2", "B2", "B3", "C3"} {
		rack := &models.Rack{Number: number}
		if err := s.Store.Racks.Create(ctx, rack); err != nil {
			return err
		}
		rackIDs[number] = rack.ID
	}

	containers := []*models.Container{
		{Type: models.ContainerBag, Weight: 0.5},
		{Type: models.ContainerCrate, Weight: 2},
		{Type: models.ContainerLoose, Weight: 0},
	}
	for _, c := range containers {
		if err := s.Store.Containers.Create(ctx, c); err != nil {
			return err
		}
	}

	for _, unit := range []string{models.MeasurementKGS, models.MeasurementPCS, models.MeasurementLoose} {
		if err := s.Store.Measurements.Create(ctx, &models.Measurement{Type: unit}); err != nil {
			return err
		}
	}

	products := []*models.Product{
		{Name: "Laptop Dell XPS", Rack: "A1", Measurement: models.MeasurementPCS, OpeningStock: 10},
		{Name: "iPhone 15 Pro", Rack: "B2", Measurement: models.MeasurementPCS, OpeningStock: 15},
		{Name: `Samsung TV 55"`, Rack: "C3", Measurement: models.MeasurementPCS, OpeningStock: 5},
		{Name: "Wireless Keyboard", Rack: "A2", Measurement: models.MeasurementPCS, OpeningStock: 20},
		{Name: "Bluetooth Speaker", Rack: "B3", Measurement: models.MeasurementPCS, OpeningStock: 12},
	}
	for _, p := range products {
		if err := s.Store.Products.Create(ctx, p); err != nil {
			return err
		}
	}

	movements := []struct {
		direction models.Direction
		product   int
		quantity  int
		date      string
	}{
		{models.DirectionInward, 0, 5, "2025-04-25"},
		{models.DirectionInward, 1, 10, "2025-04-26"},
		{models.DirectionInward, 2, 3, "2025-04-27"},
		{models.DirectionOutward, 0, 2, "2025-04-28"},
		{models.DirectionOutward, 1, 5, "2025-04-29"},
		{models.DirectionOutward, 3, 8, "2025-04-30"},
	}
	for _, m := range movements {
		p := products[m.product]
		entry := &models.StockEntry{
			Direction: m.direction,
			ProductID: p.ID,
			Quantity:  m.quantity,
			Date:      m.date,
			RackID:    rackIDs[p.Rack],
		}
		if err := s.Store.Entries(m.direction).Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
