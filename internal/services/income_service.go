package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records income from source.
func (s *incomeService) CreateIncome(userID int64, source string, amount decimal.Decimal, date time.Time) (*models.Income, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	income := &models.Income{UserID: userID, Source: source, Amount: amount}
	income.SetDate(date)

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// GetUserIncome retrieves a paginated list of a user's income, newest first.
func (s *incomeService) GetUserIncome(userID int64, page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Income], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q := s.db.Model(&models.Income{}).Where("user_id = ?", userID).Scopes(filter.Scope)
	return pagination.List[models.Income](q, page, "date DESC, id DESC")
}

// GetIncomeByID retrieves an income entry owned by the user.
func (s *incomeService) GetIncomeByID(userID, incomeID int64) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome applies the non-nil fields of upd.
func (s *incomeService) UpdateIncome(userID, incomeID int64, upd IncomeUpdate) (*models.Income, error) {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	if upd.Source != nil {
		source := strings.TrimSpace(*upd.Source)
		if source == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source cannot be empty")
		}
		income.Source = source
	}
	if upd.Amount != nil {
		if !upd.Amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		income.Amount = *upd.Amount
	}
	if upd.Date != nil {
		income.SetDate(*upd.Date)
	}

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// DeleteIncome deletes an income entry owned by the user.
func (s *incomeService) DeleteIncome(userID, incomeID int64) error {
	result := s.db.Where("id = ? AND user_id = ?", incomeID, userID).Delete(&models.Income{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}
