package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// normalizeCategory trims and upper-cases a category name.
func normalizeCategory(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// GetUserCategories retrieves a paginated list of the user's own categories
// together with the shared defaults.
func (s *categoryService) GetUserCategories(userID int64, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	q := s.db.Model(&models.Category{}).Where("user_id = ? OR user_id = ?", userID, models.SharedUserID)
	return pagination.List[models.Category](q, page, "category, user_id")
}

// CreateCategory creates a category for the user. Names are stored
// upper-cased and must be unique per user.
func (s *categoryService) CreateCategory(userID int64, name string) (*models.Category, error) {
	name = normalizeCategory(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND category = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{UserID: userID, Category: name}
	if err := s.db.Create(category).Error; err != nil {
		// Lost a race with a concurrent insert.
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// RenameCategory renames one of the user's categories and moves the user's
// expenses and subcategories filed under the old name along with it.
func (s *categoryService) RenameCategory(userID, categoryID int64, name string) (*models.Category, error) {
	name = normalizeCategory(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var category models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		oldName := category.Category
		if oldName == name {
			return nil
		}

		if err := tx.Model(&category).Update("category", name).Error; err != nil {
			if apperrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateCategory
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		category.Category = name

		if err := tx.Model(&models.Expense{}).
			Where("user_id = ? AND category = ?", userID, oldName).
			Update("category", name).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Product{}).
			Where("user_id = ? AND category = ?", userID, oldName).
			Update("category", name).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes one of the user's categories. Categories still
// referenced by the user's expenses cannot be deleted.
func (s *categoryService) DeleteCategory(userID, categoryID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var inUse int64
		if err := tx.Model(&models.Expense{}).
			Where("user_id = ? AND category = ?", userID, category.Category).
			Count(&inUse).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if inUse > 0 {
			return apperrors.ErrCategoryInUse
		}

		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
