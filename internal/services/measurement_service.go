package services

import (
	"context"
	"fmt"
	"strings"

	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

type MeasurementService struct {
	Store *repositories.Store
}

func NewMeasurementService(store *repositories.Store) *MeasurementService {
	return &MeasurementService{Store: store}
}

func measurementFromRequest(req *models.MeasurementRequest) *models.Measurement {
	return &models.Measurement{
		Type:   strings.TrimSpace(req.Type),
		Temp1:  req.Temp1,
		Temp2:  req.Temp2,
		Remark: req.Remark,
	}
}

func (s *MeasurementService) CreateMeasurement(ctx context.Context, req *models.MeasurementRequest) (*models.Measurement, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	m := measurementFromRequest(req)
	if err := s.Store.Measurements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MeasurementService) GetMeasurement(ctx context.Context, id int) (*models.Measurement, error) {
	return s.Store.Measurements.Get(ctx, id)
}

func (s *MeasurementService) ListMeasurements(ctx context.Context) ([]*models.Measurement, error) {
	return s.Store.Measurements.List(ctx)
}

func (s *MeasurementService) UpdateMeasurement(ctx context.Context, id int, req *models.MeasurementRequest) (*models.Measurement, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	m := measurementFromRequest(req)
	m.ID = id
	if err := s.Store.Measurements.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMeasurement refuses while a product uses the unit
func (s *MeasurementService) DeleteMeasurement(ctx context.Context, id int) error {
	m, err := s.Store.Measurements.Get(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.Store.Products.CountByMeasurement(ctx, m.Type)
	if err != nil {
		return err
	}
	if n > 0 {
		return referenced("measurement", id, n, "products")
	}

	removed, err := s.Store.Measurements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("delete measurement %d: %w", id, models.ErrNotFound)
	}
	return nil
}
