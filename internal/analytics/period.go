package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// PeriodStats are the flow figures for a date range.
type PeriodStats struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`

	SavingsRate    decimal.Decimal `json:"savingsRate"`  // percent, 0 when there is no income
	RunwayMonths   decimal.Decimal `json:"runwayMonths"` // assets divided by average monthly expenses
	RunwayInfinite bool            `json:"runwayInfinite"`
	DebtPaydown    decimal.Decimal `json:"debtPaydown"` // transfers into liability accounts in the period
}

// GetPeriodStats computes income, expense and derived flow figures for the
// owner between from (inclusive) and to (exclusive).
func GetPeriodStats(db *gorm.DB, ownerID uuid.UUID, from, to time.Time) (PeriodStats, error) {
	stats := PeriodStats{From: from, To: to}

	income, err := sumInPeriod(db, "incomes", ownerID, from, to)
	if err != nil {
		return PeriodStats{}, err
	}
	stats.Income = income

	expenses, err := sumInPeriod(db, "expenses", ownerID, from, to)
	if err != nil {
		return PeriodStats{}, err
	}
	stats.Expenses = expenses

	if income.IsPositive() {
		stats.SavingsRate = income.Sub(expenses).Div(income).Mul(hundred)
	}

	overview, err := GetOverview(db, ownerID)
	if err != nil {
		return PeriodStats{}, err
	}

	monthly := expenses.Div(decimal.NewFromInt(int64(monthsIn(from, to))))
	switch {
	case monthly.IsPositive():
		stats.RunwayMonths = overview.Assets.Div(monthly)
	case overview.Assets.IsPositive():
		stats.RunwayInfinite = true
	}

	var paydown decimal.NullDecimal
	err = db.Table("transfers").
		Joins("JOIN accounts ON accounts.id = transfers.to_account_id").
		Where("transfers.owner_id = ? AND transfers.deleted_at IS NULL", ownerID).
		Where("accounts.type IN ?", []models.AccountType{models.AccountTypeCredit, models.AccountTypeLoan}).
		Where("transfers.date >= ? AND transfers.date < ?", from, to).
		Select("SUM(transfers.amount)").
		Row().
		Scan(&paydown)
	if err != nil {
		return PeriodStats{}, fmt.Errorf("getting debt paydown failed: %w", err)
	}
	stats.DebtPaydown = paydown.Decimal

	return stats, nil
}

// sumInPeriod adds up the amounts of one record table for the owner and range.
func sumInPeriod(db *gorm.DB, table string, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table(table).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Where("date >= ? AND date < ?", from, to).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting %s sum failed: %w", table, err)
	}

	return sum.Decimal, nil
}

// monthsIn counts the calendar months a range touches, at least one.
func monthsIn(from, to time.Time) int {
	months := 1
	for month := types.MonthOf(from); month.Before(types.MonthOf(to)); month = month.AddDate(0, 1) {
		months++
	}

	// The exclusive upper bound does not add a month when it is exactly on
	// a month boundary
	if types.MonthOf(to).Contains(to) && to.Equal(time.Time(types.MonthOf(to))) && months > 1 {
		months--
	}

	return months
}
