// Package analytics derives advisory figures from the ledger. Everything in
// this package is read-only: values are computed from the persisted state on
// every call and never stored or written back.
package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Overview is the current financial position of an owner.
type Overview struct {
	NetWorth          decimal.Decimal `json:"netWorth"`
	Assets            decimal.Decimal `json:"assets"`
	Liabilities       decimal.Decimal `json:"liabilities"`
	CreditUtilization decimal.Decimal `json:"creditUtilization"` // percent, 0 when no revolving credit accounts have a limit
	DebtToAssetRatio  decimal.Decimal `json:"debtToAssetRatio"`  // percent, 0 when there are no assets
}

// GetOverview computes the net worth and debt figures over all non-archived
// accounts of the owner.
func GetOverview(db *gorm.DB, ownerID uuid.UUID) (Overview, error) {
	var accounts []models.Account

	err := db.Where("owner_id = ? AND archived = ?", ownerID, false).Find(&accounts).Error
	if err != nil {
		return Overview{}, err
	}

	var overview Overview
	var creditBalance, creditLimit decimal.Decimal

	for _, account := range accounts {
		if account.Classification() == models.ClassificationAsset {
			overview.Assets = overview.Assets.Add(account.Balance)
			continue
		}

		overview.Liabilities = overview.Liabilities.Add(account.Balance)

		if account.Type == models.AccountTypeCredit && account.CreditLimit.IsPositive() {
			creditBalance = creditBalance.Add(account.Balance)
			creditLimit = creditLimit.Add(account.CreditLimit)
		}
	}

	overview.NetWorth = overview.Assets.Sub(overview.Liabilities)

	if creditLimit.IsPositive() {
		overview.CreditUtilization = creditBalance.Div(creditLimit).Mul(hundred)
	}

	if overview.Assets.IsPositive() {
		overview.DebtToAssetRatio = overview.Liabilities.Div(overview.Assets).Mul(hundred)
	}

	return overview, nil
}
