package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

// adjustmentThreshold is the minimum unit of currency precision. Differences
// below it are treated as already correct.
var adjustmentThreshold = decimal.New(1, -2)

// AdjustBalance corrects the stored balance of an account to the balance the
// user declares.
//
// The correction is not a silent overwrite: the difference is recorded as an
// ordinary income or expense in the reserved "Balance Adjustment" category so
// that it shows up in the account history and in running balance
// reconstructions. The direction is chosen so that the recorded effect moves
// the balance to the declared value for both classifications: making a
// liability balance larger means recording an expense, not an income.
//
// It returns true when an adjustment was recorded and false when the
// difference was below the minimum currency precision.
func (s *Service) AdjustBalance(ownerID, accountID uuid.UUID, newBalance decimal.Decimal) (bool, error) {
	adjusted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.account(tx, ownerID, accountID)
		if err != nil {
			return err
		}

		delta := newBalance.Sub(account.Balance)
		if delta.Abs().LessThan(adjustmentThreshold) {
			return nil
		}

		// A positive delta on an asset or a negative delta on a liability is
		// the effect of a credit, everything else the effect of a debit
		credit := delta.IsPositive() == (account.Classification() == models.ClassificationAsset)

		if credit {
			category, err := models.ResolveCategory(tx, ownerID, models.AdjustmentCategoryName, models.CategoryKindIncome)
			if err != nil {
				return err
			}

			income := models.Income{
				OwnerID:    ownerID,
				AccountID:  &account.ID,
				CategoryID: category.ID,
				Amount:     delta.Abs(),
				Note:       "Balance adjustment",
			}

			if err := tx.Create(&income).Error; err != nil {
				return err
			}

			if err := applyEffect(tx, account, income.Amount, Credit); err != nil {
				return err
			}
		} else {
			category, err := models.ResolveCategory(tx, ownerID, models.AdjustmentCategoryName, models.CategoryKindExpense)
			if err != nil {
				return err
			}

			expense := models.Expense{
				OwnerID:    ownerID,
				AccountID:  account.ID,
				CategoryID: category.ID,
				Amount:     delta.Abs(),
				Note:       "Balance adjustment",
			}

			if err := tx.Create(&expense).Error; err != nil {
				return err
			}

			if err := applyEffect(tx, account, expense.Amount, Debit); err != nil {
				return err
			}
		}

		adjusted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return adjusted, nil
}
