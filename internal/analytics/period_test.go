package analytics_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/analytics"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestPeriodStats() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	loan := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeLoan,
		Balance: decimal.NewFromInt(5000),
	})

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	inMarch := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	suite.createTestIncome(models.Income{
		Amount: decimal.NewFromInt(2000),
		Date:   inMarch,
	})
	suite.createTestExpense(models.Expense{
		AccountID: checking.ID,
		Amount:    decimal.NewFromInt(800),
		Date:      inMarch,
	})
	suite.createTestTransfer(models.Transfer{
		FromAccountID: checking.ID,
		ToAccountID:   loan.ID,
		Amount:        decimal.NewFromInt(300),
		Date:          inMarch,
	})

	// Records outside the range are ignored
	suite.createTestIncome(models.Income{
		Amount: decimal.NewFromInt(5000),
		Date:   time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
	})

	stats, err := analytics.GetPeriodStats(models.DB, suite.ownerID, from, to)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), stats.Income.Equal(decimal.NewFromInt(2000)), "income is %s", stats.Income)
	assert.True(suite.T(), stats.Expenses.Equal(decimal.NewFromInt(800)), "expenses are %s", stats.Expenses)

	// (2000 - 800) / 2000
	assert.True(suite.T(), stats.SavingsRate.Equal(decimal.NewFromInt(60)), "savings rate is %s", stats.SavingsRate)

	// 1000 in assets against 800 per month
	assert.True(suite.T(), stats.RunwayMonths.Equal(decimal.RequireFromString("1.25")), "runway is %s", stats.RunwayMonths)
	assert.False(suite.T(), stats.RunwayInfinite)

	assert.True(suite.T(), stats.DebtPaydown.Equal(decimal.NewFromInt(300)), "debt paydown is %s", stats.DebtPaydown)
}

func (suite *TestSuiteStandard) TestPeriodStatsNoExpenses() {
	suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	stats, err := analytics.GetPeriodStats(models.DB, suite.ownerID, from, to)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), stats.RunwayMonths.IsZero())
	assert.True(suite.T(), stats.RunwayInfinite)
	assert.True(suite.T(), stats.SavingsRate.IsZero())
}
