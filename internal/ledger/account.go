package ledger

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

// DeleteAccount removes an account that has no transaction history.
//
// An account with referencing records cannot be deleted, archiving is the
// supported alternative that preserves the history.
func (s *Service) DeleteAccount(ownerID, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.account(tx, ownerID, id)
		if err != nil {
			return err
		}

		var count int64

		err = tx.Model(&models.Income{}).Where("account_id = ?", id).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return models.ErrAccountStillReferenced
		}

		err = tx.Model(&models.Expense{}).Where("account_id = ?", id).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return models.ErrAccountStillReferenced
		}

		err = tx.Model(&models.Transfer{}).
			Where("from_account_id = ? OR to_account_id = ?", id, id).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return models.ErrAccountStillReferenced
		}

		return tx.Delete(&account).Error
	})
}
