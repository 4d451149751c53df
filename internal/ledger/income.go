package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

// IncomeCreate contains all values that can be set when creating an income.
type IncomeCreate struct {
	AccountID            *uuid.UUID               `json:"accountId"`
	Category             string                   `json:"category" example:"Salary"` // UUID of an existing category or a free-text name
	Amount               decimal.Decimal          `json:"amount" example:"2500"`
	Date                 time.Time                `json:"date"`
	Note                 string                   `json:"note"`
	IsRecurring          bool                     `json:"isRecurring"`
	RecurringInterval    models.RecurringInterval `json:"recurringInterval"`
	TitheEnabled         bool                     `json:"titheEnabled"`
	TithePercent         decimal.Decimal          `json:"tithePercent" example:"10"`
	EmergencyFundEnabled bool                     `json:"emergencyFundEnabled"`
	EmergencyFundPercent decimal.Decimal          `json:"emergencyFundPercent" example:"10"`
}

// IncomeUpdate contains the values that can be changed on an income.
// Fields that are nil are left unchanged.
type IncomeUpdate struct {
	AccountID *uuid.UUID       `json:"accountId"`
	Category  *string          `json:"category"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      *time.Time       `json:"date"`
	Note      *string          `json:"note"`
}

// CreateIncome records an income and applies its credit effect to the linked
// account, then runs the cascading allocations configured on the income.
// All of it happens in one database transaction.
func (s *Service) CreateIncome(ownerID uuid.UUID, create IncomeCreate) (models.Income, error) {
	var income models.Income

	err := s.db.Transaction(func(tx *gorm.DB) error {
		category, err := models.ResolveCategory(tx, ownerID, create.Category, models.CategoryKindIncome)
		if err != nil {
			return err
		}

		income = models.Income{
			OwnerID:              ownerID,
			AccountID:            create.AccountID,
			CategoryID:           category.ID,
			Amount:               create.Amount,
			Date:                 create.Date,
			Note:                 create.Note,
			IsRecurring:          create.IsRecurring,
			RecurringInterval:    create.RecurringInterval,
			TitheEnabled:         create.TitheEnabled,
			TithePercent:         create.TithePercent,
			EmergencyFundEnabled: create.EmergencyFundEnabled,
			EmergencyFundPercent: create.EmergencyFundPercent,
		}

		if err := tx.Create(&income).Error; err != nil {
			return err
		}

		// An income without a linked account has no balance effect
		if income.AccountID == nil {
			return nil
		}

		account, err := s.account(tx, ownerID, *income.AccountID)
		if err != nil {
			return err
		}

		if err := applyEffect(tx, account, income.Amount, Credit); err != nil {
			return err
		}

		return s.allocate(tx, &income, account)
	})
	if err != nil {
		return models.Income{}, err
	}

	return income, nil
}

// UpdateIncome changes an income and reconciles the account balances.
//
// When only the amount changes, the difference is applied as a single credit.
// When the account changes, the old effect is fully reversed on the old
// account and the new effect fully applied to the new one. The create logic
// is never re-run, so allocations are not cascaded again.
func (s *Service) UpdateIncome(ownerID, id uuid.UUID, update IncomeUpdate) (models.Income, error) {
	var income models.Income

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&income).Error
		if err != nil {
			return err
		}

		oldAmount := income.Amount
		oldAccountID := income.AccountID

		newAmount := oldAmount
		if update.Amount != nil {
			newAmount = *update.Amount
		}
		if !newAmount.IsPositive() {
			return models.ErrAmountNotPositive
		}

		newAccountID := oldAccountID
		if update.AccountID != nil {
			newAccountID = update.AccountID
		}

		switch {
		case !uuidPtrEqual(oldAccountID, newAccountID):
			// Reverse the old effect with the account classification as it
			// is now, then apply the new effect to the new account
			if oldAccountID != nil {
				account, err := s.account(tx, ownerID, *oldAccountID)
				if err != nil {
					return err
				}
				if err := applyEffect(tx, account, oldAmount, Credit.Inverse()); err != nil {
					return err
				}
			}

			if newAccountID != nil {
				account, err := s.account(tx, ownerID, *newAccountID)
				if err != nil {
					return err
				}
				if err := applyEffect(tx, account, newAmount, Credit); err != nil {
					return err
				}
			}

		case oldAccountID != nil && !newAmount.Equal(oldAmount):
			account, err := s.account(tx, ownerID, *oldAccountID)
			if err != nil {
				return err
			}

			// The delta can be negative, Delta keeps the sign
			if err := applyEffect(tx, account, newAmount.Sub(oldAmount), Credit); err != nil {
				return err
			}
		}

		income.Amount = newAmount
		income.AccountID = newAccountID
		if update.Date != nil {
			income.Date = *update.Date
		}
		if update.Note != nil {
			income.Note = *update.Note
		}
		if update.Category != nil {
			category, err := models.ResolveCategory(tx, ownerID, *update.Category, models.CategoryKindIncome)
			if err != nil {
				return err
			}
			income.CategoryID = category.ID
		}

		return tx.Save(&income).Error
	})
	if err != nil {
		return models.Income{}, err
	}

	return income, nil
}

// DeleteIncome removes an income and reverses its credit effect.
//
// Allocation transfers that were cascaded from the income stay in place, they
// are ordinary transfers with their own effects.
func (s *Service) DeleteIncome(ownerID, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var income models.Income

		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&income).Error
		if err != nil {
			return err
		}

		if income.AccountID != nil {
			account, err := s.account(tx, ownerID, *income.AccountID)
			if err != nil {
				return err
			}

			if err := applyEffect(tx, account, income.Amount, Credit.Inverse()); err != nil {
				return err
			}
		}

		return tx.Delete(&income).Error
	})
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
