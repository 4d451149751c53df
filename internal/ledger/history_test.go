package ledger_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestHistoryRunningBalances() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	savings := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeSavings,
		Balance: decimal.NewFromInt(500),
	})

	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
	}

	_, err := suite.service.CreateIncome(suite.ownerID, ledger.IncomeCreate{
		AccountID: &checking.ID,
		Category:  "Salary",
		Amount:    decimal.NewFromInt(2000),
		Date:      day(1),
	})
	assert.Nil(suite.T(), err)

	_, err = suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: checking.ID,
		Category:  "Rent",
		Amount:    decimal.NewFromInt(800),
		Date:      day(2),
	})
	assert.Nil(suite.T(), err)

	_, err = suite.service.CreateTransfer(suite.ownerID, ledger.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(300),
		Date:          day(3),
	})
	assert.Nil(suite.T(), err)

	// 1000 + 2000 - 800 - 300
	suite.assertBalance(checking.ID, "1900")

	entries, err := suite.service.History(suite.ownerID, checking.ID)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), entries, 3)

	// Newest first, each entry shows the balance just after it
	assert.Equal(suite.T(), ledger.EntryTransferOut, entries[0].Kind)
	assert.True(suite.T(), entries[0].RunningBalance.Equal(decimal.NewFromInt(1900)), "running balance is %s", entries[0].RunningBalance)

	assert.Equal(suite.T(), ledger.EntryExpense, entries[1].Kind)
	assert.True(suite.T(), entries[1].RunningBalance.Equal(decimal.NewFromInt(2200)), "running balance is %s", entries[1].RunningBalance)

	assert.Equal(suite.T(), ledger.EntryIncome, entries[2].Kind)
	assert.True(suite.T(), entries[2].RunningBalance.Equal(decimal.NewFromInt(3000)), "running balance is %s", entries[2].RunningBalance)
}

func (suite *TestSuiteStandard) TestHistoryTransferIn() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	savings := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeSavings,
		Balance: decimal.NewFromInt(500),
	})

	_, err := suite.service.CreateTransfer(suite.ownerID, ledger.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(300),
	})
	assert.Nil(suite.T(), err)

	entries, err := suite.service.History(suite.ownerID, savings.ID)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), entries, 1)

	assert.Equal(suite.T(), ledger.EntryTransferIn, entries[0].Kind)
	assert.True(suite.T(), entries[0].RunningBalance.Equal(decimal.NewFromInt(800)))
}

func (suite *TestSuiteStandard) TestHistoryOnLiability() {
	card := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeCredit,
		Balance: decimal.NewFromInt(300),
	})

	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
	}

	_, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: card.ID,
		Category:  "Online shopping",
		Amount:    decimal.NewFromInt(100),
		Date:      day(1),
	})
	assert.Nil(suite.T(), err)

	_, err = suite.service.CreateIncome(suite.ownerID, ledger.IncomeCreate{
		AccountID: &card.ID,
		Category:  "Payment",
		Amount:    decimal.NewFromInt(150),
		Date:      day(2),
	})
	assert.Nil(suite.T(), err)

	// 300 + 100 - 150
	suite.assertBalance(card.ID, "250")

	entries, err := suite.service.History(suite.ownerID, card.ID)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), entries, 2)

	assert.Equal(suite.T(), ledger.EntryIncome, entries[0].Kind)
	assert.True(suite.T(), entries[0].RunningBalance.Equal(decimal.NewFromInt(250)), "running balance is %s", entries[0].RunningBalance)

	assert.Equal(suite.T(), ledger.EntryExpense, entries[1].Kind)
	assert.True(suite.T(), entries[1].RunningBalance.Equal(decimal.NewFromInt(400)), "running balance is %s", entries[1].RunningBalance)
}

func (suite *TestSuiteStandard) TestHistoryEmptyAccount() {
	account := suite.createTestAccount(models.Account{Balance: decimal.NewFromInt(42)})

	entries, err := suite.service.History(suite.ownerID, account.ID)

	assert.Nil(suite.T(), err)
	assert.Empty(suite.T(), entries)
}
