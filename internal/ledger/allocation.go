package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/analytics"
	"github.com/pocketledger/backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// allocate runs the cascading allocations for a newly created income.
//
// Allocations only cascade from regular asset accounts: a liability receiving
// a payment and a fund receiving a contribution never re-allocate. Both steps
// run in the transaction of the income creation, so a failing allocation
// rolls back the whole income.
func (s *Service) allocate(tx *gorm.DB, income *models.Income, funding models.Account) error {
	if funding.Classification() == models.ClassificationLiability {
		return nil
	}

	switch funding.Type {
	case models.AccountTypeFund, models.AccountTypeEmergencyFund, models.AccountTypeTithe:
		return nil
	}

	if income.TitheEnabled {
		if err := s.allocateTithe(tx, income, funding); err != nil {
			return err
		}
	}

	if income.EmergencyFundEnabled {
		if err := s.allocateEmergencyFund(tx, income, funding); err != nil {
			return err
		}
	}

	return nil
}

// allocateTithe transfers the tithe share of the income to the owner's tithe
// account, creating the account on first use.
func (s *Service) allocateTithe(tx *gorm.DB, income *models.Income, funding models.Account) error {
	amount := income.Amount.Mul(income.TithePercent).Div(hundred)
	if !amount.IsPositive() {
		return nil
	}

	target, err := s.titheAccount(tx, income.OwnerID, funding.Currency)
	if err != nil {
		return err
	}

	_, err = s.createTransfer(tx, income.OwnerID, TransferCreate{
		FromAccountID: funding.ID,
		ToAccountID:   target.ID,
		Amount:        amount,
		Date:          income.Date,
		Note:          "Tithe allocation",
	}, &income.ID)

	return err
}

// allocateEmergencyFund transfers the emergency fund share of the income to
// the owner's emergency fund account.
//
// When the income does not specify a percentage, the suggestion derived from
// the owner's income stability is used. An owner without a non-archived
// emergency fund account gets no allocation, the step is a silent no-op.
func (s *Service) allocateEmergencyFund(tx *gorm.DB, income *models.Income, funding models.Account) error {
	percent := income.EmergencyFundPercent
	if percent.IsZero() {
		percent = analytics.SuggestedSavingsPercent(tx, income.OwnerID)
	}

	amount := income.Amount.Mul(percent).Div(hundred)
	if !amount.IsPositive() {
		return nil
	}

	var target models.Account
	err := tx.
		Where("owner_id = ? AND type = ? AND archived = ?", income.OwnerID, models.AccountTypeEmergencyFund, false).
		First(&target).Error
	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.createTransfer(tx, income.OwnerID, TransferCreate{
		FromAccountID: funding.ID,
		ToAccountID:   target.ID,
		Amount:        amount,
		Date:          income.Date,
		Note:          "Emergency fund allocation",
	}, &income.ID)

	return err
}

// titheAccount returns the owner's tithe account, creating it with the
// reserved name on first use.
func (s *Service) titheAccount(tx *gorm.DB, ownerID uuid.UUID, currency string) (models.Account, error) {
	var account models.Account

	err := tx.Where("owner_id = ? AND type = ?", ownerID, models.AccountTypeTithe).First(&account).Error
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, err
	}

	account = models.Account{
		OwnerID:  ownerID,
		Name:     models.TitheAccountName,
		Type:     models.AccountTypeTithe,
		Currency: currency,
	}

	if err := tx.Create(&account).Error; err != nil {
		return models.Account{}, err
	}

	return account, nil
}
