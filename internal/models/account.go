package models

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType is the type of an account.
type AccountType string

const (
	AccountTypeChecking      AccountType = "checking"
	AccountTypeSavings       AccountType = "savings"
	AccountTypeCash          AccountType = "cash"
	AccountTypeInvestment    AccountType = "investment"
	AccountTypeFund          AccountType = "fund"
	AccountTypeEmergencyFund AccountType = "emergency_fund"
	AccountTypeTithe         AccountType = "tithe"
	AccountTypeCredit        AccountType = "credit"
	AccountTypeLoan          AccountType = "loan"
)

// Classification determines how balance effects are applied to an account.
type Classification string

const (
	ClassificationAsset     Classification = "asset"
	ClassificationLiability Classification = "liability"
)

// TitheAccountName is the reserved name for the auto-provisioned tithe account.
const TitheAccountName = "Tithe"

// AccountTypes lists every supported account type.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCash,
	AccountTypeInvestment,
	AccountTypeFund,
	AccountTypeEmergencyFund,
	AccountTypeTithe,
	AccountTypeCredit,
	AccountTypeLoan,
}

// Classification returns the classification for an account type. Credit and
// loan accounts track money owed, everything else tracks money owned.
func (t AccountType) Classification() Classification {
	if t == AccountTypeCredit || t == AccountTypeLoan {
		return ClassificationLiability
	}

	return ClassificationAsset
}

// FundTargetMode is the calculation mode for fund target amounts.
type FundTargetMode string

const (
	FundTargetFixed        FundTargetMode = "fixed"
	FundTargetMonthlySpend FundTargetMode = "monthly_spend"
)

// Account represents a financial container owned by a user.
//
// For asset accounts the balance is the amount currently held, for liability
// accounts it is the amount currently owed.
type Account struct {
	DefaultModel
	OwnerID      uuid.UUID       `json:"ownerId" gorm:"uniqueIndex:account_owner_name"`
	Name         string          `json:"name" gorm:"uniqueIndex:account_owner_name"`
	Type         AccountType     `json:"type" example:"checking"`
	Currency     string          `json:"currency" example:"EUR"`
	Balance      decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"`
	CreditLimit  decimal.Decimal `json:"creditLimit" gorm:"type:DECIMAL(20,8)"` // revolving credit accounts only, analytics never mutates it
	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)"`
	TargetMode   FundTargetMode  `json:"targetMode,omitempty"`
	Archived     bool            `json:"archived" example:"true"`
	Note         string          `json:"note"`
}

// Classification returns the classification of the account.
func (a Account) Classification() Classification {
	return a.Type.Classification()
}

// BeforeSave validates and normalizes the account.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	if a.Name == "" {
		return ErrNameRequired
	}

	if a.Type == "" {
		a.Type = AccountTypeChecking
	}

	valid := false
	for _, t := range AccountTypes {
		if a.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return ErrAccountTypeInvalid
	}

	if a.Currency == "" {
		a.Currency = money.EUR
	}
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))
	if money.GetCurrency(a.Currency) == nil {
		return ErrCurrencyInvalid
	}

	return nil
}
