package services

import (
	"context"
	"fmt"
	"strings"

	"stock-backend/internal/models"
	"stock-backend/internal/repositories"
)

type ContainerService struct {
	Store *repositories.Store
}

func NewContainerService(store *repositories.Store) *ContainerService {
	return &ContainerService{Store: store}
}

func containerFromRequest(req *models.ContainerRequest) *models.Container {
	return &models.Container{
		Type:   strings.TrimSpace(req.Type),
		Weight: req.Weight,
		Remark: req.Remark,
	}
}

func (s *ContainerService) CreateContainer(ctx context.Context, req *models.ContainerRequest) (*models.Container, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	c := containerFromRequest(req)
	if err := s.Store.Containers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContainerService) GetContainer(ctx context.Context, id int) (*models.Container, error) {
	return s.Store.Containers.Get(ctx, id)
}

func (s *ContainerService) ListContainers(ctx context.Context) ([]*models.Container, error) {
	return s.Store.Containers.List(ctx)
}

// UpdateContainer changes the tare for future calculations only. Stored
// entry net weights are left as they are.
func (s *ContainerService) UpdateContainer(ctx context.Context, id int, req *models.ContainerRequest) (*models.Container, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	c := containerFromRequest(req)
	c.ID = id
	if err := s.Store.Containers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContainerService) DeleteContainer(ctx context.Context, id int) error {
	if _, err := s.Store.Containers.Get(ctx, id); err != nil {
		return err
	}

	for _, direction := range []models.Direction{models.DirectionInward, models.DirectionOutward} {
		n, err := s.Store.Entries(direction).CountByContainer(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return referenced("container", id, n, string(direction)+" entries")
		}
	}

	removed, err := s.Store.Containers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("delete container %d: %w", id, models.ErrNotFound)
	}
	return nil
}
