package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterAccountRoutes registers the routes for accounts with the
// RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}

	r.GET("/:id/ledger", GetAccountLedger)
	r.POST("/:id/adjust", AdjustAccount)
}

// AccountEditable contains the values that can be set when creating an
// account.
type AccountEditable struct {
	Name         string                `json:"name" example:"Checking"`
	Type         models.AccountType    `json:"type" example:"checking"`
	Currency     string                `json:"currency" example:"EUR"`
	Balance      decimal.Decimal       `json:"balance" example:"1000"` // starting balance
	CreditLimit  decimal.Decimal       `json:"creditLimit"`
	TargetAmount decimal.Decimal       `json:"targetAmount"`
	TargetMode   models.FundTargetMode `json:"targetMode"`
	Note         string                `json:"note"`
}

// AccountUpdate contains the values that can be changed on an account.
// Fields that are nil are left unchanged.
type AccountUpdate struct {
	Name         *string                `json:"name"`
	Type         *models.AccountType    `json:"type"`
	Currency     *string                `json:"currency"`
	CreditLimit  *decimal.Decimal       `json:"creditLimit"`
	TargetAmount *decimal.Decimal       `json:"targetAmount"`
	TargetMode   *models.FundTargetMode `json:"targetMode"`
	Note         *string                `json:"note"`
	Archived     *bool                  `json:"archived"`
}

// AccountQueryFilter contains the query parameters for the account list.
type AccountQueryFilter struct {
	Name     string `form:"name"` // glob pattern
	Type     string `form:"type"`
	Archived bool   `form:"archived"`
}

// @Summary		Create account
// @Tags			Accounts
// @Produce		json
// @Success		201	{object}	models.Account
// @Failure		400	{object}	httpError
// @Router			/v1/accounts [post]
func CreateAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var editable AccountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	account := models.Account{
		OwnerID:      ownerID,
		Name:         editable.Name,
		Type:         editable.Type,
		Currency:     editable.Currency,
		Balance:      editable.Balance,
		CreditLimit:  editable.CreditLimit,
		TargetAmount: editable.TargetAmount,
		TargetMode:   editable.TargetMode,
		Note:         editable.Note,
	}

	if err := models.DB.Create(&account).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, account)
}

// @Summary		List accounts
// @Description	Returns the non-archived accounts of the owner. Set archived=true for archived ones.
// @Tags			Accounts
// @Produce		json
// @Success		200	{array}	models.Account
// @Router			/v1/accounts [get]
// @Param			name		query	string	false	"Glob pattern for the account name"
// @Param			type		query	string	false	"Account type"
// @Param			archived	query	bool	false	"List archived accounts instead of active ones"
func GetAccounts(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter AccountQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	q := models.DB.
		Where("owner_id = ? AND archived = ?", ownerID, filter.Archived).
		Order("name")

	if filter.Type != "" {
		if !slices.Contains(models.AccountTypes, models.AccountType(filter.Type)) {
			c.JSON(http.StatusBadRequest, newHTTPError(models.ErrAccountTypeInvalid))
			return
		}
		q = q.Where("type = ?", filter.Type)
	}

	var accounts []models.Account
	if err := q.Find(&accounts).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	if filter.Name != "" {
		matched := make([]models.Account, 0, len(accounts))
		for _, account := range accounts {
			if glob.Glob(filter.Name, account.Name) {
				matched = append(matched, account)
			}
		}
		accounts = matched
	}

	c.JSON(http.StatusOK, accounts)
}

// @Summary		Allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	models.Account
// @Failure		404	{object}	httpError
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var account models.Account
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&account).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, account)
}

// @Summary		Update account
// @Description	Updates the account metadata. The balance can only be changed through transactions or the adjust endpoint.
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	models.Account
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var update AccountUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	var account models.Account
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&account).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Type != nil {
		account.Type = *update.Type
	}
	if update.Currency != nil {
		account.Currency = *update.Currency
	}
	if update.CreditLimit != nil {
		account.CreditLimit = *update.CreditLimit
	}
	if update.TargetAmount != nil {
		account.TargetAmount = *update.TargetAmount
	}
	if update.TargetMode != nil {
		account.TargetMode = *update.TargetMode
	}
	if update.Note != nil {
		account.Note = *update.Note
	}
	if update.Archived != nil {
		account.Archived = *update.Archived
	}

	if err := models.DB.Save(&account).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, account)
}

// @Summary		Delete account
// @Description	Deletes an account without transaction history. Accounts with history can only be archived.
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	err := ledger.NewService(models.DB).DeleteAccount(ownerID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Account ledger
// @Description	Returns the account history with running balances, newest first.
// @Tags			Accounts
// @Produce		json
// @Success		200	{array}	ledger.Entry
// @Failure		404	{object}	httpError
// @Router			/v1/accounts/{id}/ledger [get]
func GetAccountLedger(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	entries, err := ledger.NewService(models.DB).History(ownerID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, entries)
}

// BalanceAdjustment is the request body for the adjust endpoint.
type BalanceAdjustment struct {
	Balance decimal.Decimal `json:"balance" example:"1337.42"` // the correct balance as declared by the user
}

// BalanceAdjustmentResponse reports whether an adjustment was recorded.
type BalanceAdjustmentResponse struct {
	Adjusted bool `json:"adjusted"`
}

// @Summary		Adjust balance
// @Description	Corrects the account balance to the declared value by recording an adjustment transaction. Differences below 0.01 are ignored.
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	BalanceAdjustmentResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/accounts/{id}/adjust [post]
func AdjustAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var adjustment BalanceAdjustment
	if err := httputil.BindData(c, &adjustment); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	adjusted, err := ledger.NewService(models.DB).AdjustBalance(ownerID, uri.ID.UUID, adjustment.Balance)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, BalanceAdjustmentResponse{Adjusted: adjusted})
}
