package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/port"
)

// CategoryInput is the DTO for creating or replacing a category.
type CategoryInput struct {
	Name      string     `json:"name" binding:"required"`
	ParentID  *uuid.UUID `json:"parent_id"`
	ImageID   *uuid.UUID `json:"image_id"`
	IsActive  *bool      `json:"is_active"`
	SortOrder int        `json:"sort_order"`
}

// CategoryService defines the category management contract.
type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	List(ctx context.Context, offset, limit int) ([]domain.Category, int, error)
	Tree(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, actor domain.Actor, categoryID uuid.UUID, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

type categoryService struct {
	repo port.CategoryRepository
	log  *zap.Logger
}

// NewCategoryService creates a new CategoryService implementation.
func NewCategoryService(repo port.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{repo: repo, log: log}
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:      strings.TrimSpace(input.Name),
		ParentID:  input.ParentID,
		ImageID:   input.ImageID,
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.log.Info("category created", zap.String("category_id", category.ID.String()))
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error) {
	return s.repo.GetByID(ctx, categoryID)
}

func (s *categoryService) List(ctx context.Context, offset, limit int) ([]domain.Category, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// Tree returns every category nested under its parent. Categories whose parent
// no longer exists are returned as roots.
func (s *categoryService) Tree(ctx context.Context) ([]domain.Category, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(all), nil
}

func (s *categoryService) Update(ctx context.Context, actor domain.Actor, categoryID uuid.UUID, input CategoryInput) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if input.IsActive != nil && *input.IsActive != category.IsActive && !actor.Can(domain.CapToggleActive) {
		return nil, domain.ErrForbidden
	}

	if input.ParentID != nil {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if !containsCategory(all, *input.ParentID) {
			return nil, domain.ErrNotFound
		}
		if createsCycle(all, categoryID, *input.ParentID) {
			return nil, domain.ErrCategoryCycle
		}
	}

	category.Name = strings.TrimSpace(input.Name)
	category.ParentID = input.ParentID
	category.ImageID = input.ImageID
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return err
	}
	s.log.Info("category deleted", zap.String("category_id", categoryID.String()))
	return nil
}

func containsCategory(all []domain.Category, id uuid.UUID) bool {
	for i := range all {
		if all[i].ID == id {
			return true
		}
	}
	return false
}

// createsCycle reports whether giving categoryID the parent parentID would make
// the category its own ancestor.
func createsCycle(all []domain.Category, categoryID, parentID uuid.UUID) bool {
	parents := make(map[uuid.UUID]*uuid.UUID, len(all))
	for i := range all {
		parents[all[i].ID] = all[i].ParentID
	}
	seen := make(map[uuid.UUID]bool)
	for cur := &parentID; cur != nil; cur = parents[*cur] {
		if *cur == categoryID {
			return true
		}
		if seen[*cur] {
			return false
		}
		seen[*cur] = true
	}
	return false
}

func buildCategoryTree(all []domain.Category) []domain.Category {
	byID := make(map[uuid.UUID]bool, len(all))
	for i := range all {
		byID[all[i].ID] = true
	}
	children := make(map[uuid.UUID][]domain.Category)
	var roots []domain.Category
	for _, c := range all {
		if c.ParentID != nil && byID[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var attach func(nodes []domain.Category, depth int) []domain.Category
	attach = func(nodes []domain.Category, depth int) []domain.Category {
		sortCategories(nodes)
		if depth > len(all) {
			return nodes
		}
		for i := range nodes {
			nodes[i].Children = attach(children[nodes[i].ID], depth+1)
		}
		return nodes
	}
	return attach(roots, 0)
}

func sortCategories(nodes []domain.Category) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}
