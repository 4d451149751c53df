package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transfer moves value between two accounts of the same owner.
//
// A non-zero fee is charged to the source account only and is recorded as a
// separate expense in the reserved "Bank Fees" category. FeeExpenseID links
// to that expense so that deleting the transfer can remove it without
// matching by value.
type Transfer struct {
	DefaultModel
	OwnerID       uuid.UUID `json:"ownerId" gorm:"index"`
	FromAccountID uuid.UUID `json:"fromAccountId" gorm:"check:transfer_accounts_different,from_account_id != to_account_id"`
	FromAccount   Account   `json:"-"`
	ToAccountID   uuid.UUID `json:"toAccountId"`
	ToAccount     Account   `json:"-"`

	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"100"`
	Fee    decimal.Decimal `json:"fee" gorm:"type:DECIMAL(20,8)" example:"1.5"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`

	// Set when the fee expense was recorded for this transfer
	FeeExpenseID *uuid.UUID `json:"feeExpenseId"`

	// Set when the transfer was produced by a cascading income allocation
	IncomeID *uuid.UUID `json:"incomeId"`
}

// BeforeSave validates and normalizes the transfer.
func (t *Transfer) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.Fee.IsNegative() {
		return ErrFeeNegative
	}

	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccountTransfer
	}

	return nil
}

// AfterFind sets the date timezone to UTC.
func (t *Transfer) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}
