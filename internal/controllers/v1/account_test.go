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

func (suite *TestSuiteStandard) createTestAccount(editable v1.AccountEditable) models.Account {
	if editable.Name == "" {
		editable.Name = uuid.New().String()
	}

	recorder := suite.request(http.MethodPost, "/v1/accounts", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var account models.Account
	test.DecodeResponse(suite.T(), &recorder, &account)

	return account
}

func (suite *TestSuiteStandard) TestAccountCreate() {
	recorder := suite.request(http.MethodPost, "/v1/accounts", v1.AccountEditable{
		Name:    "Checking",
		Type:    models.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var account models.Account
	test.DecodeResponse(suite.T(), &recorder, &account)

	assert.Equal(suite.T(), "Checking", account.Name)
	assert.Equal(suite.T(), suite.ownerID, account.OwnerID)
	assert.True(suite.T(), account.Balance.Equal(decimal.NewFromInt(1000)))
}

func (suite *TestSuiteStandard) TestAccountCreateInvalidType() {
	recorder := suite.request(http.MethodPost, "/v1/accounts", v1.AccountEditable{
		Name: "Mattress",
		Type: "mattress",
	})

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountCreateDuplicateName() {
	suite.createTestAccount(v1.AccountEditable{Name: "Checking"})

	recorder := suite.request(http.MethodPost, "/v1/accounts", v1.AccountEditable{Name: "Checking"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountList() {
	suite.createTestAccount(v1.AccountEditable{Name: "Main checking"})
	suite.createTestAccount(v1.AccountEditable{Name: "Holiday fund", Type: models.AccountTypeFund})

	recorder := suite.request(http.MethodGet, "/v1/accounts", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var accounts []models.Account
	test.DecodeResponse(suite.T(), &recorder, &accounts)
	assert.Len(suite.T(), accounts, 2)

	// Name glob filter
	recorder = suite.request(http.MethodGet, "/v1/accounts?name=*checking", nil)
	test.DecodeResponse(suite.T(), &recorder, &accounts)
	assert.Len(suite.T(), accounts, 1)
	assert.Equal(suite.T(), "Main checking", accounts[0].Name)

	// Type filter
	recorder = suite.request(http.MethodGet, "/v1/accounts?type=fund", nil)
	test.DecodeResponse(suite.T(), &recorder, &accounts)
	assert.Len(suite.T(), accounts, 1)
	assert.Equal(suite.T(), "Holiday fund", accounts[0].Name)
}

func (suite *TestSuiteStandard) TestAccountListInvalidType() {
	recorder := suite.request(http.MethodGet, "/v1/accounts?type=mattress", nil)

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountListScopedToOwner() {
	suite.createTestAccount(v1.AccountEditable{})

	other := uuid.New()
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/accounts", nil, test.BearerFor(other))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var accounts []models.Account
	test.DecodeResponse(suite.T(), &recorder, &accounts)
	assert.Empty(suite.T(), accounts)
}

func (suite *TestSuiteStandard) TestAccountGet() {
	account := suite.createTestAccount(v1.AccountEditable{})

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/accounts/%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAccountGetNotFound() {
	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/accounts/%s", uuid.New()), nil)

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountGetInvalidUUID() {
	recorder := suite.request(http.MethodGet, "/v1/accounts/not-a-uuid", nil)

	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountUpdate() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Old name"})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/accounts/%s", account.ID), map[string]any{
		"name":     "New name",
		"archived": true,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.Account
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), "New name", updated.Name)
	assert.True(suite.T(), updated.Archived)
}

func (suite *TestSuiteStandard) TestAccountDelete() {
	account := suite.createTestAccount(v1.AccountEditable{})

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/accounts/%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestAccountDeleteWithHistory() {
	account := suite.createTestAccount(v1.AccountEditable{Balance: decimal.NewFromInt(100)})

	_, err := ledger.NewService(models.DB).CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: account.ID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(10),
	})
	assert.Nil(suite.T(), err)

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/accounts/%s", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountLedger() {
	account := suite.createTestAccount(v1.AccountEditable{Balance: decimal.NewFromInt(1000)})

	_, err := ledger.NewService(models.DB).CreateExpense(suite.ownerID, ledger.ExpenseCreate{
		AccountID: account.ID,
		Category:  "Groceries",
		Amount:    decimal.NewFromInt(200),
	})
	assert.Nil(suite.T(), err)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/accounts/%s/ledger", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var entries []ledger.Entry
	test.DecodeResponse(suite.T(), &recorder, &entries)
	assert.Len(suite.T(), entries, 1)
	assert.True(suite.T(), entries[0].RunningBalance.Equal(decimal.NewFromInt(800)))
}

func (suite *TestSuiteStandard) TestAccountAdjust() {
	account := suite.createTestAccount(v1.AccountEditable{Balance: decimal.NewFromInt(1000)})

	recorder := suite.request(http.MethodPost, fmt.Sprintf("/v1/accounts/%s/adjust", account.ID), v1.BalanceAdjustment{
		Balance: decimal.RequireFromString("1337.42"),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BalanceAdjustmentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Adjusted)

	// Adjusting to the same balance again is a no-op
	recorder = suite.request(http.MethodPost, fmt.Sprintf("/v1/accounts/%s/adjust", account.ID), v1.BalanceAdjustment{
		Balance: decimal.RequireFromString("1337.42"),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.False(suite.T(), response.Adjusted)
}
