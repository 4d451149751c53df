package ledger_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestExpenseLifecycleOnAsset() {
	account := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})

	expense, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: account.ID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(200),
	})
	assert.Nil(suite.T(), err)
	suite.assertBalance(account.ID, "800")

	// Lowering the amount returns the difference to the account
	_, err = suite.service.UpdateExpense(suite.ownerID, expense.ID, ledger.ExpenseUpdate{
		Amount: decimalPtr(decimal.NewFromInt(150)),
	})
	assert.Nil(suite.T(), err)
	suite.assertBalance(account.ID, "850")

	err = suite.service.DeleteExpense(suite.ownerID, expense.ID)
	assert.Nil(suite.T(), err)
	suite.assertBalance(account.ID, "1000")
}

func (suite *TestSuiteStandard) TestExpenseOnLiabilityIncreasesDebt() {
	card := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeCredit,
		Balance: decimal.NewFromInt(300),
	})

	_, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: card.ID,
		Category:  "Online shopping",
		Amount:    decimal.NewFromInt(50),
	})

	assert.Nil(suite.T(), err)
	suite.assertBalance(card.ID, "350")
}

func (suite *TestSuiteStandard) TestExpenseAccountChangeMovesEffect() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	cash := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeCash,
		Balance: decimal.NewFromInt(100),
	})

	expense, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: checking.ID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(60),
	})
	assert.Nil(suite.T(), err)
	suite.assertBalance(checking.ID, "940")

	_, err = suite.service.UpdateExpense(suite.ownerID, expense.ID, ledger.ExpenseUpdate{
		AccountID: &cash.ID,
	})
	assert.Nil(suite.T(), err)

	suite.assertBalance(checking.ID, "1000")
	suite.assertBalance(cash.ID, "40")
}

func (suite *TestSuiteStandard) TestExpenseUpdateRejectsNonPositiveAmount() {
	account := suite.createTestAccount(models.Account{Balance: decimal.NewFromInt(100)})

	expense, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: account.ID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(10),
	})
	assert.Nil(suite.T(), err)

	_, err = suite.service.UpdateExpense(suite.ownerID, expense.ID, ledger.ExpenseUpdate{
		Amount: decimalPtr(decimal.Zero),
	})
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)

	// The failed update must not have touched the balance
	suite.assertBalance(account.ID, "90")
}

func (suite *TestSuiteStandard) TestExpenseUnknownAccount() {
	_, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: uuid.New(),
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(10),
	})

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestExpenseOwnershipScoped() {
	other := suite.createTestAccount(models.Account{
		OwnerID: uuid.New(),
		Balance: decimal.NewFromInt(1000),
	})

	_, err := suite.service.CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: other.ID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(10),
	})

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	suite.assertBalance(other.ID, "1000")
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
