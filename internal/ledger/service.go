package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

// Service executes ledger mutations for one store handle.
//
// It holds no state besides the handle; every method scopes its queries to the
// owner id passed by the caller and runs all of its writes in a single
// database transaction.
type Service struct {
	db *gorm.DB
}

// NewService returns a ledger service using the database handle passed.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// account loads an account and verifies ownership.
func (s *Service) account(tx *gorm.DB, ownerID, id uuid.UUID) (models.Account, error) {
	var account models.Account

	err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&account).Error
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// applyEffect applies the balance change for a transaction with the natural
// direction kind to the account.
//
// The update is an atomic in-database increment so that concurrent mutations
// of the same account cannot lose updates.
func applyEffect(tx *gorm.DB, account models.Account, amount decimal.Decimal, kind Kind) error {
	delta := Delta(account.Classification(), kind, amount)

	return tx.Model(&models.Account{}).
		Where("id = ?", account.ID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
}
