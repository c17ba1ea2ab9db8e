package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
)

type savingsService struct {
	db *gorm.DB
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB) SavingsServicer {
	return &savingsService{db: db}
}

func (s *savingsService) CreateSavings(userID int64, amount decimal.Decimal, date time.Time, note *string) (*models.Savings, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	savings := &models.Savings{UserID: userID, Amount: amount, Note: note}
	savings.SetDate(date)

	if err := s.db.Create(savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return savings, nil
}

func (s *savingsService) GetUserSavings(userID int64, page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Savings], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q := s.db.Model(&models.Savings{}).Where("user_id = ?", userID).Scopes(filter.Scope)
	return pagination.List[models.Savings](q, page, "date DESC, id DESC")
}

func (s *savingsService) GetSavingsByID(userID, savingsID int64) (*models.Savings, error) {
	var savings models.Savings
	if err := s.db.Where("id = ? AND user_id = ?", savingsID, userID).First(&savings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &savings, nil
}

func (s *savingsService) UpdateSavings(userID, savingsID int64, upd SavingsUpdate) (*models.Savings, error) {
	savings, err := s.GetSavingsByID(userID, savingsID)
	if err != nil {
		return nil, err
	}

	if upd.Amount != nil {
		if !upd.Amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		savings.Amount = *upd.Amount
	}
	if upd.Date != nil {
		savings.SetDate(*upd.Date)
	}
	if upd.Note != nil {
		savings.Note = upd.Note
	}

	if err := s.db.Save(savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return savings, nil
}

func (s *savingsService) DeleteSavings(userID, savingsID int64) error {
	result := s.db.Where("id = ? AND user_id = ?", savingsID, userID).Delete(&models.Savings{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}
