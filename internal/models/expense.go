package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents money spent from an account.
type Expense struct {
	DefaultModel
	OwnerID    uuid.UUID  `json:"ownerId" gorm:"index"`
	AccountID  uuid.UUID  `json:"accountId"`
	Account    Account    `json:"-"`
	CategoryID uuid.UUID  `json:"categoryId"`
	Category   Category   `json:"-"`
	BudgetID   *uuid.UUID `json:"budgetId"`
	Budget     *Budget    `json:"-"`

	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.99"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`

	IsRecurring       bool              `json:"isRecurring"`
	RecurringInterval RecurringInterval `json:"recurringInterval,omitempty"`
}

// BeforeSave validates and normalizes the expense.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	if !e.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !validRecurringInterval(e.RecurringInterval) {
		return ErrRecurringIntervalInvalid
	}

	return nil
}

// AfterFind sets the date timezone to UTC.
func (e *Expense) AfterFind(_ *gorm.DB) error {
	e.Date = e.Date.In(time.UTC)
	return nil
}
