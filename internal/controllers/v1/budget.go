package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// RegisterBudgetRoutes registers the routes for budgets with the RouterGroup
// that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// BudgetEditable contains all values that can be set when creating a budget.
type BudgetEditable struct {
	Name     string          `json:"name" example:"Groceries March"`
	Category string          `json:"category" example:"Groceries"` // UUID of an existing category or a free-text name
	Month    types.Month     `json:"month" example:"2024-03"`
	Amount   decimal.Decimal `json:"amount" example:"400"`
}

// BudgetUpdate contains the values that can be changed on a budget.
// Fields that are nil are left unchanged.
type BudgetUpdate struct {
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
}

// BudgetResponse is a budget with its derived spending figures.
type BudgetResponse struct {
	models.Budget
	Spent     decimal.Decimal `json:"spent" example:"321.09"`
	Remaining decimal.Decimal `json:"remaining" example:"78.91"`
}

// BudgetQueryFilter contains the query parameters for the budget list.
type BudgetQueryFilter struct {
	Month      string `form:"month"` // YYYY-MM
	CategoryID string `form:"category"`
}

func newBudgetResponse(budget models.Budget) (BudgetResponse, error) {
	spent, err := budget.Spent(models.DB)
	if err != nil {
		return BudgetResponse{}, err
	}

	return BudgetResponse{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Amount.Sub(spent),
	}, nil
}

// @Summary		Create budget
// @Description	Creates a spending envelope for one category in one month.
// @Tags			Budgets
// @Produce		json
// @Success		201	{object}	BudgetResponse
// @Failure		400	{object}	httpError
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	category, err := models.ResolveCategory(models.DB, ownerID, editable.Category, models.CategoryKindExpense)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	budget := models.Budget{
		OwnerID:    ownerID,
		Name:       editable.Name,
		CategoryID: category.ID,
		Month:      editable.Month,
		Amount:     editable.Amount,
	}

	if err := models.DB.Create(&budget).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	response, err := newBudgetResponse(budget)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary		List budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{array}	BudgetResponse
// @Router			/v1/budgets [get]
// @Param			month		query	string	false	"Filter by month, format YYYY-MM"
// @Param			category	query	string	false	"Filter by category ID"
func GetBudgets(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	q := models.DB.Where("owner_id = ?", ownerID).Order("month DESC")

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, newHTTPError(err))
			return
		}
		q = q.Where("month = ?", month)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var budgets []models.Budget
	if err := q.Find(&budgets).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	responses := make([]BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		response, err := newBudgetResponse(budget)
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}
		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, responses)
}

// @Summary		Get budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		404	{object}	httpError
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var budget models.Budget
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&budget).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	response, err := newBudgetResponse(budget)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Update budget
// @Description	Changes the name or amount of a budget. Category and month are fixed, create a new budget instead.
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var update BudgetUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	var budget models.Budget
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&budget).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	if update.Name != nil {
		budget.Name = *update.Name
	}
	if update.Amount != nil {
		budget.Amount = *update.Amount
	}

	if err := models.DB.Save(&budget).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	response, err := newBudgetResponse(budget)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Delete budget
// @Description	Deletes a budget. Expenses linked to it are detached, not deleted.
// @Tags			Budgets
// @Success		204
// @Failure		404	{object}	httpError
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	var budget models.Budget
	err := models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, ownerID).First(&budget).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	err = models.DB.Model(&models.Expense{}).
		Where("budget_id = ?", budget.ID).
		Update("budget_id", nil).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
