package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// defaultCategories are seeded for every new user, in display order.
var defaultCategories = []core.Category{
	{Name: "Food", Icon: "utensils", Color: "#E67E22"},
	{Name: "Transport", Icon: "bus", Color: "#3498DB"},
	{Name: "Groceries", Icon: "shopping-cart", Color: "#27AE60"},
	{Name: "Bills", Icon: "file-invoice", Color: "#E74C3C"},
	{Name: "Health", Icon: "heartbeat", Color: "#9B59B6"},
	{Name: "Entertainment", Icon: "film", Color: "#F39C12"},
	{Name: "Shopping", Icon: "bag-shopping", Color: "#1ABC9C"},
	{Name: "Other", Icon: "ellipsis", Color: "#95A5A6"},
}

// CategoryService handles category writes. Names are unique per user,
// case-insensitively.
type CategoryService struct {
	store *storage.Store
	now   func() time.Time
}

func NewCategoryService(store *storage.Store) *CategoryService {
	return &CategoryService{store: store, now: time.Now}
}

// SeedDefaults creates the default category set for a freshly registered
// user.
func (s *CategoryService) SeedDefaults(ctx context.Context, userID string) error {
	now := s.now()
	for i, c := range defaultCategories {
		c.ID = uuid.NewString()
		c.UserID = userID
		c.Order = i
		c.IsDefault = true
		c.CreatedAt = now
		if err := s.store.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("seed default category %q: %w", c.Name, err)
		}
	}
	return nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, c core.Category) (*core.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	c.IsDefault = false

	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, id string) (*core.Category, error) {
	return s.store.GetCategory(ctx, userID, id)
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []core.Category{}
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, c core.Category) (*core.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return s.store.GetCategory(ctx, c.UserID, c.ID)
}

// DeleteCategory removes a category. When the category still has expenses,
// the caller must pass confirm=true; the delete then cascades to them.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id string, confirm bool) error {
	count, err := s.store.CountCategoryExpenses(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("count category expenses: %w", err)
	}
	if count > 0 && !confirm {
		return core.BadRequestf("category has %d expenses, deletion requires confirmation", count)
	}
	return s.store.DeleteCategory(ctx, userID, id)
}
