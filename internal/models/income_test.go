package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestIncomeAmountMustBePositive() {
	category := suite.createTestCategory(models.Category{Kind: models.CategoryKindIncome})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		err := models.DB.Create(&models.Income{
			OwnerID:    category.OwnerID,
			CategoryID: category.ID,
			Amount:     amount,
		}).Error

		assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
	}
}

func (suite *TestSuiteStandard) TestIncomeDateDefaultsToNow() {
	category := suite.createTestCategory(models.Category{Kind: models.CategoryKindIncome})

	income := models.Income{
		OwnerID:    category.OwnerID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
	}
	err := models.DB.Create(&income).Error

	assert.Nil(suite.T(), err)
	assert.False(suite.T(), income.Date.IsZero())
	assert.WithinDuration(suite.T(), time.Now(), income.Date, time.Minute)
}

func (suite *TestSuiteStandard) TestIncomeInvalidRecurringInterval() {
	category := suite.createTestCategory(models.Category{Kind: models.CategoryKindIncome})

	err := models.DB.Create(&models.Income{
		OwnerID:           category.OwnerID,
		CategoryID:        category.ID,
		Amount:            decimal.NewFromInt(100),
		IsRecurring:       true,
		RecurringInterval: "fortnightly",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrRecurringIntervalInvalid)
}

func (suite *TestSuiteStandard) TestIncomePercentOutOfRange() {
	category := suite.createTestCategory(models.Category{Kind: models.CategoryKindIncome})

	tests := []struct {
		tithe decimal.Decimal
		fund  decimal.Decimal
	}{
		{decimal.NewFromInt(101), decimal.Zero},
		{decimal.NewFromInt(-1), decimal.Zero},
		{decimal.Zero, decimal.NewFromInt(150)},
	}

	for _, tt := range tests {
		err := models.DB.Create(&models.Income{
			OwnerID:              category.OwnerID,
			CategoryID:           category.ID,
			Amount:               decimal.NewFromInt(100),
			TithePercent:         tt.tithe,
			EmergencyFundPercent: tt.fund,
		}).Error

		assert.ErrorIs(suite.T(), err, models.ErrPercentOutOfRange)
	}
}

func (suite *TestSuiteStandard) TestIncomeWithoutAccountIsValid() {
	category := suite.createTestCategory(models.Category{Kind: models.CategoryKindIncome})

	income := models.Income{
		OwnerID:    category.OwnerID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(250),
		Date:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	err := models.DB.Create(&income).Error

	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), income.AccountID)
	assert.NotEqual(suite.T(), uuid.Nil, income.ID)
}
