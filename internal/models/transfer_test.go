package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestTransferNegativeFee() {
	from := suite.createTestAccount(models.Account{})
	to := suite.createTestAccount(models.Account{OwnerID: from.OwnerID})

	err := models.DB.Create(&models.Transfer{
		OwnerID:       from.OwnerID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        decimal.NewFromInt(100),
		Fee:           decimal.NewFromInt(-1),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrFeeNegative)
}

func (suite *TestSuiteStandard) TestTransferSameAccount() {
	account := suite.createTestAccount(models.Account{})

	err := models.DB.Create(&models.Transfer{
		OwnerID:       account.OwnerID,
		FromAccountID: account.ID,
		ToAccountID:   account.ID,
		Amount:        decimal.NewFromInt(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrSameAccountTransfer)
}

func (suite *TestSuiteStandard) TestTransferAmountMustBePositive() {
	from := suite.createTestAccount(models.Account{})
	to := suite.createTestAccount(models.Account{OwnerID: from.OwnerID})

	err := models.DB.Create(&models.Transfer{
		OwnerID:       from.OwnerID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        decimal.Zero,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}
