package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/types"
)

// Budget is a spending envelope for one category in one month.
type Budget struct {
	DefaultModel
	OwnerID    uuid.UUID   `json:"ownerId" gorm:"uniqueIndex:budget_owner_category_month"`
	Name       string      `json:"name"`
	CategoryID uuid.UUID   `json:"categoryId" gorm:"uniqueIndex:budget_owner_category_month"`
	Category   Category    `json:"-"`
	Month      types.Month `json:"month" gorm:"uniqueIndex:budget_owner_category_month"`

	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400"`
}

// BeforeSave validates and normalizes the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// Spent returns the sum of all expenses linked to the budget.
//
// The value is derived on every call, it is never stored.
func (b Budget) Spent(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("expenses").
		Where("budget_id = ? AND deleted_at IS NULL", b.ID).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting expenses for budget %s failed: %w", b.ID, err)
	}

	return sum.Decimal, nil
}
