package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income represents money received.
//
// When an account is linked, creating the income credits that account. The
// tithe and emergency fund directives trigger cascading allocation transfers
// out of the funding account.
type Income struct {
	DefaultModel
	OwnerID    uuid.UUID  `json:"ownerId" gorm:"index"`
	AccountID  *uuid.UUID `json:"accountId"`
	Account    *Account   `json:"-"`
	CategoryID uuid.UUID  `json:"categoryId"`
	Category   Category   `json:"-"`

	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1234.12"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`

	IsRecurring       bool              `json:"isRecurring"`
	RecurringInterval RecurringInterval `json:"recurringInterval,omitempty"`

	TitheEnabled         bool            `json:"titheEnabled"`
	TithePercent         decimal.Decimal `json:"tithePercent" gorm:"type:DECIMAL(20,8)"`
	EmergencyFundEnabled bool            `json:"emergencyFundEnabled"`
	EmergencyFundPercent decimal.Decimal `json:"emergencyFundPercent" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave validates and normalizes the income.
func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Note = strings.TrimSpace(i.Note)

	if i.Date.IsZero() {
		i.Date = time.Now().In(time.UTC)
	} else {
		i.Date = i.Date.In(time.UTC)
	}

	if !i.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !validRecurringInterval(i.RecurringInterval) {
		return ErrRecurringIntervalInvalid
	}

	for _, percent := range []decimal.Decimal{i.TithePercent, i.EmergencyFundPercent} {
		if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
			return ErrPercentOutOfRange
		}
	}

	return nil
}

// AfterFind sets the date timezone to UTC.
func (i *Income) AfterFind(_ *gorm.DB) error {
	i.Date = i.Date.In(time.UTC)
	return nil
}
