package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
)

type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// GetCategoryProducts lists the subcategories the user sees under category,
// matching the category name case-insensitively.
func (s *productService) GetCategoryProducts(userID int64, category string) ([]models.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	var products []models.Product
	if err := s.db.
		Where("LOWER(category) = LOWER(?) AND (user_id = ? OR user_id = ?)", category, userID, models.SharedUserID).
		Order("product, user_id").
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// CreateProduct adds a subcategory under category. When the user already has
// it, the existing row is returned and created is false.
func (s *productService) CreateProduct(userID int64, category, product string) (*models.Product, bool, error) {
	category = normalizeCategory(category)
	product = strings.TrimSpace(product)
	if category == "" || product == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category and product are required")
	}

	var existing models.Product
	err := s.db.Where("user_id = ? AND category = ? AND LOWER(product) = LOWER(?)", userID, category, product).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	p := &models.Product{UserID: userID, Category: category, Product: product}
	if err := s.db.Create(p).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return p, true, nil
}
