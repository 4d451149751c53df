package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

// TransferCreate contains all values that can be set when creating a transfer.
type TransferCreate struct {
	FromAccountID uuid.UUID       `json:"fromAccountId"`
	ToAccountID   uuid.UUID       `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount" example:"100"`
	Fee           decimal.Decimal `json:"fee" example:"1.5"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note"`
}

// CreateTransfer moves value between two accounts of the owner.
//
// The amount is debited from the source and credited to the destination. A
// non-zero fee is debited from the source only and recorded as an expense in
// the reserved "Bank Fees" category, linked to the transfer. All writes happen
// in one database transaction.
func (s *Service) CreateTransfer(ownerID uuid.UUID, create TransferCreate) (models.Transfer, error) {
	var transfer models.Transfer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createTransfer(tx, ownerID, create, nil)
		if err != nil {
			return err
		}

		transfer = created
		return nil
	})
	if err != nil {
		return models.Transfer{}, err
	}

	return transfer, nil
}

// createTransfer does the work of CreateTransfer on an open transaction.
// incomeID is set when the transfer is cascaded from an income allocation.
func (s *Service) createTransfer(tx *gorm.DB, ownerID uuid.UUID, create TransferCreate, incomeID *uuid.UUID) (models.Transfer, error) {
	if create.FromAccountID == create.ToAccountID {
		return models.Transfer{}, models.ErrSameAccountTransfer
	}

	from, err := s.account(tx, ownerID, create.FromAccountID)
	if err != nil {
		return models.Transfer{}, err
	}

	to, err := s.account(tx, ownerID, create.ToAccountID)
	if err != nil {
		return models.Transfer{}, err
	}

	transfer := models.Transfer{
		OwnerID:       ownerID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        create.Amount,
		Fee:           create.Fee,
		Date:          create.Date,
		Note:          create.Note,
		IncomeID:      incomeID,
	}

	if err := tx.Create(&transfer).Error; err != nil {
		return models.Transfer{}, err
	}

	if err := applyEffect(tx, from, transfer.Amount, Debit); err != nil {
		return models.Transfer{}, err
	}

	if err := applyEffect(tx, to, transfer.Amount, Credit); err != nil {
		return models.Transfer{}, err
	}

	// The destination never receives the fee, it is charged to the source
	// and recorded as an expense so it shows up in budgets and analytics
	if transfer.Fee.IsPositive() {
		feeExpense, err := s.createExpense(tx, ownerID, ExpenseCreate{
			AccountID: from.ID,
			Category:  models.BankFeesCategoryName,
			Amount:    transfer.Fee,
			Date:      transfer.Date,
			Note:      "Transfer fee",
		})
		if err != nil {
			return models.Transfer{}, err
		}

		transfer.FeeExpenseID = &feeExpense.ID
		err = tx.Model(&transfer).UpdateColumn("fee_expense_id", feeExpense.ID).Error
		if err != nil {
			return models.Transfer{}, err
		}
	}

	return transfer, nil
}

// DeleteTransfer reverses all effects of a transfer and removes it together
// with its fee expense, if one was recorded.
func (s *Service) DeleteTransfer(ownerID, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var transfer models.Transfer

		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&transfer).Error
		if err != nil {
			return err
		}

		from, err := s.account(tx, ownerID, transfer.FromAccountID)
		if err != nil {
			return err
		}

		to, err := s.account(tx, ownerID, transfer.ToAccountID)
		if err != nil {
			return err
		}

		if err := applyEffect(tx, from, transfer.Amount, Debit.Inverse()); err != nil {
			return err
		}

		if err := applyEffect(tx, to, transfer.Amount, Credit.Inverse()); err != nil {
			return err
		}

		if transfer.FeeExpenseID != nil {
			if err := applyEffect(tx, from, transfer.Fee, Debit.Inverse()); err != nil {
				return err
			}

			err := tx.Where("id = ?", transfer.FeeExpenseID).Delete(&models.Expense{}).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&transfer).Error
	})
}
