package ledger_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestTransferMovesValue() {
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
		Amount:        decimal.NewFromInt(200),
	})

	assert.Nil(suite.T(), err)
	suite.assertBalance(checking.ID, "800")
	suite.assertBalance(savings.ID, "700")
}

func (suite *TestSuiteStandard) TestTransferToLiabilityPaysDownDebt() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	card := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeCredit,
		Balance: decimal.NewFromInt(300),
	})

	_, err := suite.service.CreateTransfer(suite.ownerID, ledger.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   card.ID,
		Amount:        decimal.NewFromInt(300),
	})

	assert.Nil(suite.T(), err)
	suite.assertBalance(checking.ID, "700")
	suite.assertBalance(card.ID, "0")
}

func (suite *TestSuiteStandard) TestTransferFeeChargedToSource() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	savings := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeSavings,
		Balance: decimal.NewFromInt(500),
	})

	transfer, err := suite.service.CreateTransfer(suite.ownerID, ledger.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(200),
		Fee:           decimal.NewFromInt(5),
	})
	assert.Nil(suite.T(), err)

	// The fee never reaches the destination
	suite.assertBalance(checking.ID, "795")
	suite.assertBalance(savings.ID, "700")

	assert.NotNil(suite.T(), transfer.FeeExpenseID)

	var feeExpense models.Expense
	err = models.DB.Where("id = ?", transfer.FeeExpenseID).First(&feeExpense).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), feeExpense.Amount.Equal(decimal.NewFromInt(5)))

	var category models.Category
	err = models.DB.Where("id = ?", feeExpense.CategoryID).First(&category).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BankFeesCategoryName, category.Name)
}

func (suite *TestSuiteStandard) TestTransferDeleteReversesEverything() {
	checking := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	savings := suite.createTestAccount(models.Account{
		Type:    models.AccountTypeSavings,
		Balance: decimal.NewFromInt(500),
	})

	transfer, err := suite.service.CreateTransfer(suite.ownerID, ledger.TransferCreate{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.NewFromInt(200),
		Fee:           decimal.NewFromInt(5),
	})
	assert.Nil(suite.T(), err)

	err = suite.service.DeleteTransfer(suite.ownerID, transfer.ID)
	assert.Nil(suite.T(), err)

	suite.assertBalance(checking.ID, "1000")
	suite.assertBalance(savings.ID, "500")

	// The fee expense is removed together with the transfer
	err = models.DB.Where("id = ?", transfer.FeeExpenseID).First(&models.Expense{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransferSameAccountRejected() {
	account := suite.createTestAccount(models.Account{Balance: decimal.NewFromInt(1000)})

	_, err := suite.service.CreateTransfer(suite.ownerID, ledger.TransferCreate{
		FromAccountID: account.ID,
		ToAccountID:   account.ID,
		Amount:        decimal.NewFromInt(100),
	})

	assert.ErrorIs(suite.T(), err, models.ErrSameAccountTransfer)
	suite.assertBalance(account.ID, "1000")
}
