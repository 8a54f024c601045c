package services

import (
	"context"
	"strings"
	"sync"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/models"
	"walletledger/internal/storage"
	"walletledger/internal/uuid"
)

// DefaultCategories returns the categories present before any user action.
func DefaultCategories() []models.Category {
	income, expense := models.CategoryTypeIncome, models.CategoryTypeExpense
	return []models.Category{
		{ID: "income-salary", Name: "Salary", Type: income, Icon: "Briefcase", Color: "#00B894"},
		{ID: "income-freelance", Name: "Freelance", Type: income, Icon: "Laptop", Color: "#55EFC4"},
		{ID: "income-investments", Name: "Investments", Type: income, Icon: "TrendingUp", Color: "#00CEC9"},
		{ID: "income-gifts", Name: "Gifts", Type: income, Icon: "Gift", Color: "#74B9FF"},
		{ID: "income-other", Name: "Other Income", Type: income, Icon: "Plus", Color: "#6C5CE7"},

		{ID: "expense-food", Name: "Food & Dining", Type: expense, Icon: "Utensils", Color: "#FF7675"},
		{ID: "expense-shopping", Name: "Shopping", Type: expense, Icon: "ShoppingBag", Color: "#FD79A8"},
		{ID: "expense-transportation", Name: "Transportation", Type: expense, Icon: "Car", Color: "#FDCB6E"},
		{ID: "expense-utilities", Name: "Utilities", Type: expense, Icon: "Zap", Color: "#E17055"},
		{ID: "expense-housing", Name: "Housing", Type: expense, Icon: "Home", Color: "#D63031"},
		{ID: "expense-entertainment", Name: "Entertainment", Type: expense, Icon: "Film", Color: "#E84393"},
		{ID: "expense-health", Name: "Health", Type: expense, Icon: "Activity", Color: "#FF9FF3"},
		{ID: "expense-education", Name: "Education", Type: expense, Icon: "Book", Color: "#F368E0"},
		{ID: "expense-other", Name: "Other Expenses", Type: expense, Icon: "MoreHorizontal", Color: "#636E72"},
	}
}

// categoryService owns the category collection, kept in insertion order.
type categoryService struct {
	mu         sync.RWMutex
	categories []models.Category
	state      StateStore
}

// NewCategoryService creates a new CategoryServicer seeded with the defaults.
func NewCategoryService(state StateStore) CategoryServicer {
	return &categoryService{
		categories: DefaultCategories(),
		state:      state,
	}
}

func (s *categoryService) Load(ctx context.Context) error {
	var categories []models.Category
	found, err := s.state.Load(ctx, storage.KeyCategories, &categories)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// AddCategory appends a new category with a fresh id.
func (s *categoryService) AddCategory(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !validCategoryType(input.Type) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	category := models.Category{
		ID:         uuid.New(),
		Name:       name,
		Type:       input.Type,
		Icon:       input.Icon,
		Color:      input.Color,
		IsFrequent: input.IsFrequent,
	}

	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.persistLocked()
	s.mu.Unlock()

	return &category, nil
}

// UpdateCategory merges the provided fields. Unknown ids are a no-op.
func (s *categoryService) UpdateCategory(id string, update CategoryUpdate) (*models.Category, bool, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
	}
	if update.Type != nil && !validCategoryType(*update.Type) {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, false, nil
	}

	c := &s.categories[i]
	if update.Name != nil {
		c.Name = strings.TrimSpace(*update.Name)
	}
	if update.Type != nil {
		c.Type = *update.Type
	}
	if update.Icon != nil {
		c.Icon = *update.Icon
	}
	if update.Color != nil {
		c.Color = *update.Color
	}
	if update.IsFrequent != nil {
		c.IsFrequent = *update.IsFrequent
	}
	s.persistLocked()

	out := *c
	return &out, true, nil
}

// DeleteCategory removes a category. Transactions that reference it keep
// the dangling id and report as Uncategorized.
func (s *categoryService) DeleteCategory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
	s.persistLocked()
	return true
}

func (s *categoryService) GetCategory(id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, apperrors.ErrCategoryNotFound
	}
	c := s.categories[i]
	return &c, nil
}

func (s *categoryService) ListCategories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// ListByType returns the categories of one type, for pickers.
func (s *categoryService) ListByType(categoryType models.CategoryType) []models.Category {
	return s.filter(func(c models.Category) bool { return c.Type == categoryType })
}

// Frequent returns the categories flagged as frequently used for a type.
func (s *categoryService) Frequent(categoryType models.CategoryType) []models.Category {
	return s.filter(func(c models.Category) bool { return c.IsFrequent && c.Type == categoryType })
}

func (s *categoryService) filter(keep func(models.Category) bool) []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0)
	for _, c := range s.categories {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func validCategoryType(t models.CategoryType) bool {
	return t == models.CategoryTypeIncome || t == models.CategoryTypeExpense
}

func (s *categoryService) indexLocked(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *categoryService) persistLocked() {
	snapshot := make([]models.Category, len(s.categories))
	copy(snapshot, s.categories)
	s.state.Save(storage.KeyCategories, snapshot)
}
