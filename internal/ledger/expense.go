package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

// ExpenseCreate contains all values that can be set when creating an expense.
type ExpenseCreate struct {
	AccountID         uuid.UUID                `json:"accountId"`
	Category          string                   `json:"category" example:"Groceries"` // UUID of an existing category or a free-text name
	BudgetID          *uuid.UUID               `json:"budgetId"`
	Amount            decimal.Decimal          `json:"amount" example:"14.99"`
	Date              time.Time                `json:"date"`
	Note              string                   `json:"note"`
	IsRecurring       bool                     `json:"isRecurring"`
	RecurringInterval models.RecurringInterval `json:"recurringInterval"`
}

// ExpenseUpdate contains the values that can be changed on an expense.
// Fields that are nil are left unchanged.
type ExpenseUpdate struct {
	AccountID *uuid.UUID       `json:"accountId"`
	Category  *string          `json:"category"`
	BudgetID  *uuid.UUID       `json:"budgetId"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      *time.Time       `json:"date"`
	Note      *string          `json:"note"`
}

// CreateExpense records an expense and applies its debit effect to the
// account, both in one database transaction.
func (s *Service) CreateExpense(ownerID uuid.UUID, create ExpenseCreate) (models.Expense, error) {
	var expense models.Expense

	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createExpense(tx, ownerID, create)
		if err != nil {
			return err
		}

		expense = created
		return nil
	})
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// createExpense does the work of CreateExpense on an open transaction so the
// transfer engine can record fee expenses in its own unit of work.
func (s *Service) createExpense(tx *gorm.DB, ownerID uuid.UUID, create ExpenseCreate) (models.Expense, error) {
	category, err := models.ResolveCategory(tx, ownerID, create.Category, models.CategoryKindExpense)
	if err != nil {
		return models.Expense{}, err
	}

	if create.BudgetID != nil {
		err := tx.Where("id = ? AND owner_id = ?", create.BudgetID, ownerID).First(&models.Budget{}).Error
		if err != nil {
			return models.Expense{}, err
		}
	}

	account, err := s.account(tx, ownerID, create.AccountID)
	if err != nil {
		return models.Expense{}, err
	}

	expense := models.Expense{
		OwnerID:           ownerID,
		AccountID:         account.ID,
		CategoryID:        category.ID,
		BudgetID:          create.BudgetID,
		Amount:            create.Amount,
		Date:              create.Date,
		Note:              create.Note,
		IsRecurring:       create.IsRecurring,
		RecurringInterval: create.RecurringInterval,
	}

	if err := tx.Create(&expense).Error; err != nil {
		return models.Expense{}, err
	}

	if err := applyEffect(tx, account, expense.Amount, Debit); err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// UpdateExpense changes an expense and reconciles the account balances,
// mirroring the income reconciliation with inverted direction.
func (s *Service) UpdateExpense(ownerID, id uuid.UUID, update ExpenseUpdate) (models.Expense, error) {
	var expense models.Expense

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&expense).Error
		if err != nil {
			return err
		}

		oldAmount := expense.Amount
		oldAccountID := expense.AccountID

		newAmount := oldAmount
		if update.Amount != nil {
			newAmount = *update.Amount
		}
		if !newAmount.IsPositive() {
			return models.ErrAmountNotPositive
		}

		newAccountID := oldAccountID
		if update.AccountID != nil {
			newAccountID = *update.AccountID
		}

		switch {
		case oldAccountID != newAccountID:
			account, err := s.account(tx, ownerID, oldAccountID)
			if err != nil {
				return err
			}
			if err := applyEffect(tx, account, oldAmount, Debit.Inverse()); err != nil {
				return err
			}

			account, err = s.account(tx, ownerID, newAccountID)
			if err != nil {
				return err
			}
			if err := applyEffect(tx, account, newAmount, Debit); err != nil {
				return err
			}

		case !newAmount.Equal(oldAmount):
			account, err := s.account(tx, ownerID, oldAccountID)
			if err != nil {
				return err
			}

			if err := applyEffect(tx, account, newAmount.Sub(oldAmount), Debit); err != nil {
				return err
			}
		}

		expense.Amount = newAmount
		expense.AccountID = newAccountID
		if update.Date != nil {
			expense.Date = *update.Date
		}
		if update.Note != nil {
			expense.Note = *update.Note
		}
		if update.BudgetID != nil {
			err := tx.Where("id = ? AND owner_id = ?", update.BudgetID, ownerID).First(&models.Budget{}).Error
			if err != nil {
				return err
			}
			expense.BudgetID = update.BudgetID
		}
		if update.Category != nil {
			category, err := models.ResolveCategory(tx, ownerID, *update.Category, models.CategoryKindExpense)
			if err != nil {
				return err
			}
			expense.CategoryID = category.ID
		}

		return tx.Save(&expense).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// DeleteExpense removes an expense and reverses its debit effect. The account
// classification is re-derived at reversal time.
func (s *Service) DeleteExpense(ownerID, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense

		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&expense).Error
		if err != nil {
			return err
		}

		account, err := s.account(tx, ownerID, expense.AccountID)
		if err != nil {
			return err
		}

		if err := applyEffect(tx, account, expense.Amount, Debit.Inverse()); err != nil {
			return err
		}

		return tx.Delete(&expense).Error
	})
}
