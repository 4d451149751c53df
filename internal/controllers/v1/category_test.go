package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/test"
)

func (suite *TestSuiteStandard) createTestCategory(editable v1.CategoryEditable) models.Category {
	if editable.Name == "" {
		editable.Name = uuid.New().String()
	}
	if editable.Kind == "" {
		editable.Kind = models.CategoryKindExpense
	}

	recorder := suite.request(http.MethodPost, "/v1/categories", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var category models.Category
	test.DecodeResponse(suite.T(), &recorder, &category)

	return category
}

func (suite *TestSuiteStandard) TestCategoryCreate() {
	category := suite.createTestCategory(v1.CategoryEditable{
		Name: "Groceries",
		Kind: models.CategoryKindExpense,
	})

	assert.Equal(suite.T(), "Groceries", category.Name)
	assert.Equal(suite.T(), models.CategoryKindExpense, category.Kind)
}

func (suite *TestSuiteStandard) TestCategoryCreateInvalidKind() {
	recorder := suite.request(http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Schrödinger",
		Kind: "both",
	})

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryList() {
	suite.createTestCategory(v1.CategoryEditable{Name: "Salary", Kind: models.CategoryKindIncome})
	suite.createTestCategory(v1.CategoryEditable{Name: "Groceries", Kind: models.CategoryKindExpense})

	recorder := suite.request(http.MethodGet, "/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var categories []models.Category
	test.DecodeResponse(suite.T(), &recorder, &categories)
	assert.Len(suite.T(), categories, 2)

	recorder = suite.request(http.MethodGet, "/v1/categories?kind=income", nil)
	test.DecodeResponse(suite.T(), &recorder, &categories)
	assert.Len(suite.T(), categories, 1)
	assert.Equal(suite.T(), "Salary", categories[0].Name)
}

func (suite *TestSuiteStandard) TestCategoryListInvalidKind() {
	recorder := suite.request(http.MethodGet, "/v1/categories?kind=both", nil)

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Grocceries"})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/categories/%s", category.ID), map[string]any{
		"name": "Groceries",
		"note": "fixed the typo",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.Category
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), "Groceries", updated.Name)
	assert.Equal(suite.T(), "fixed the typo", updated.Note)
}

func (suite *TestSuiteStandard) TestCategoryDelete() {
	category := suite.createTestCategory(v1.CategoryEditable{})

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/categories/%s", category.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestCategoryDeleteStillReferenced() {
	account := suite.createTestAccount(v1.AccountEditable{Balance: decimal.NewFromInt(1000)})
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Groceries"})

	suite.createTestExpense(ledger.ExpenseCreate{
		AccountID: account.ID,
		Category:  category.ID.String(),
		Amount:    decimal.NewFromInt(10),
	})

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/categories/%s", category.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryDeleteNotFound() {
	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/categories/%s", uuid.New()), nil)

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
