package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterExpenseRoutes registers the routes for expenses with the RouterGroup
// that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// ExpenseQueryFilter contains the query parameters for the expense list.
type ExpenseQueryFilter struct {
	QueryDates
	QueryPagination
	AccountID  string `form:"account"`
	CategoryID string `form:"category"`
	BudgetID   string `form:"budget"`
}

// @Summary		Create expense
// @Description	Records an expense and debits the account.
// @Tags			Expenses
// @Produce		json
// @Success		201	{object}	models.Expense
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var create ledger.ExpenseCreate
	if err := httputil.BindData(c, &create); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	expense, err := ledger.NewService(models.DB).CreateExpense(ownerID, create)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// @Summary		List expenses
// @Tags			Expenses
// @Produce		json
// @Success		200	{array}	models.Expense
// @Router			/v1/expenses [get]
// @Param			fromDate	query	string	false	"Only expenses on or after this date"
// @Param			untilDate	query	string	false	"Only expenses on or before this date"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			budget		query	string	false	"Filter by budget ID"
// @Param			offset		query	uint	false	"Pagination offset"
// @Param			limit		query	int		false	"Maximum number of expenses to return, defaults to 50"
func GetExpenses(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	q := models.DB.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Offset(int(filter.Offset)).
		Limit(filter.limit())

	if !filter.FromDate.IsZero() {
		q = q.Where("date >= ?", filter.FromDate)
	}
	if !filter.UntilDate.IsZero() {
		q = q.Where("date <= ?", filter.UntilDate)
	}
	if filter.AccountID != "" {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.BudgetID != "" {
		q = q.Where("budget_id = ?", filter.BudgetID)
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// @Summary		Get expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	models.Expense
// @Failure		404	{object}	httpError
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var expense models.Expense
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&expense).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, expense)
}

// @Summary		Update expense
// @Description	Changes an expense and reconciles the account balances.
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	models.Expense
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var update ledger.ExpenseUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	expense, err := ledger.NewService(models.DB).UpdateExpense(ownerID, uri.ID.UUID, update)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, expense)
}

// @Summary		Delete expense
// @Description	Removes an expense and reverses its effect on the account balance.
// @Tags			Expenses
// @Success		204
// @Failure		404	{object}	httpError
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	err := ledger.NewService(models.DB).DeleteExpense(ownerID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
