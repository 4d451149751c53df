package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterIncomeRoutes registers the routes for incomes with the RouterGroup
// that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetIncomes)
		r.POST("", CreateIncome)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetIncome)
		r.PATCH("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

// IncomeQueryFilter contains the query parameters for the income list.
type IncomeQueryFilter struct {
	QueryDates
	QueryPagination
	AccountID  string `form:"account"`
	CategoryID string `form:"category"`
}

// @Summary		Create income
// @Description	Records an income, credits the linked account and runs the configured allocations.
// @Tags			Incomes
// @Produce		json
// @Success		201	{object}	models.Income
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/incomes [post]
func CreateIncome(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var create ledger.IncomeCreate
	if err := httputil.BindData(c, &create); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	income, err := ledger.NewService(models.DB).CreateIncome(ownerID, create)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, income)
}

// @Summary		List incomes
// @Tags			Incomes
// @Produce		json
// @Success		200	{array}	models.Income
// @Router			/v1/incomes [get]
// @Param			fromDate	query	string	false	"Only incomes on or after this date"
// @Param			untilDate	query	string	false	"Only incomes on or before this date"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			offset		query	uint	false	"Pagination offset"
// @Param			limit		query	int		false	"Maximum number of incomes to return, defaults to 50"
func GetIncomes(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter IncomeQueryFilter
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

	var incomes []models.Income
	if err := q.Find(&incomes).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, incomes)
}

// @Summary		Get income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	models.Income
// @Failure		404	{object}	httpError
// @Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var income models.Income
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&income).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, income)
}

// @Summary		Update income
// @Description	Changes an income and reconciles the account balances. Allocations are not cascaded again.
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	models.Income
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/incomes/{id} [patch]
func UpdateIncome(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var update ledger.IncomeUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	income, err := ledger.NewService(models.DB).UpdateIncome(ownerID, uri.ID.UUID, update)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, income)
}

// @Summary		Delete income
// @Description	Removes an income and reverses its effect on the account balance.
// @Tags			Incomes
// @Success		204
// @Failure		404	{object}	httpError
// @Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	err := ledger.NewService(models.DB).DeleteIncome(ownerID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
