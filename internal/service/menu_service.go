package service

import (
	"context"
	"fmt"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/repository"
)

type MenuService interface {
	Create(ctx context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error)
	Update(ctx context.Context, id int64, req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) Create(ctx context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item, err := s.menuRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *menuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	if !domain.IsValidMenuCategory(category) {
		return nil, fmt.Errorf("validation failed: invalid category")
	}

	items, err := s.menuRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) Update(ctx context.Context, id int64, req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item, err := s.menuRepo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *menuService) Delete(ctx context.Context, id int64) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return mapNoRows(err)
	}
	return nil
}
