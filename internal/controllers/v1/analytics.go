package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/analytics"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// defaultWindowMonths is the trailing window for the budget analyses when the
// request does not specify one.
const defaultWindowMonths = 6

// RegisterAnalyticsRoutes registers the routes for analytics with the
// RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/overview", httputil.OptionsGet)
	r.GET("/overview", GetOverview)

	r.OPTIONS("/period", httputil.OptionsGet)
	r.GET("/period", GetPeriodStats)

	r.OPTIONS("/budget-health", httputil.OptionsGet)
	r.GET("/budget-health", GetBudgetHealth)

	r.OPTIONS("/problem-categories", httputil.OptionsGet)
	r.GET("/problem-categories", GetProblemCategories)

	r.OPTIONS("/recommendations", httputil.OptionsGet)
	r.GET("/recommendations", GetRecommendations)

	r.OPTIONS("/income-stability", httputil.OptionsGet)
	r.GET("/income-stability", GetIncomeStability)
}

// AnalyticsWindowFilter selects the trailing window for the budget analyses.
type AnalyticsWindowFilter struct {
	Months int `form:"months" example:"6"`
}

func (f AnalyticsWindowFilter) months() int {
	if f.Months <= 0 {
		return defaultWindowMonths
	}

	return f.Months
}

// @Summary		Financial overview
// @Description	Returns net worth, assets, liabilities and debt figures over the non-archived accounts.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	analytics.Overview
// @Router			/v1/analytics/overview [get]
func GetOverview(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	overview, err := analytics.GetOverview(models.DB, ownerID)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, overview)
}

// @Summary		Period statistics
// @Description	Returns income, expenses, savings rate, runway and debt paydown for a date range. The range defaults to the current calendar month.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	analytics.PeriodStats
// @Failure		400	{object}	httpError
// @Router			/v1/analytics/period [get]
// @Param			fromDate	query	string	false	"Start of the range, inclusive"
// @Param			untilDate	query	string	false	"End of the range, exclusive"
func GetPeriodStats(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var dates QueryDates
	if err := c.Bind(&dates); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	from := dates.FromDate
	to := dates.UntilDate
	if from.IsZero() && to.IsZero() {
		month := types.MonthOf(time.Now())
		from = time.Time(month)
		to = time.Time(month.AddDate(0, 1))
	} else if to.IsZero() {
		to = time.Now().UTC()
	}

	stats, err := analytics.GetPeriodStats(models.DB, ownerID, from, to)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary		Budget health
// @Description	Returns spent amounts and adherence bands for all budgets of a month. The month defaults to the current one.
// @Tags			Analytics
// @Produce		json
// @Success		200	{array}	analytics.BudgetHealth
// @Failure		400	{object}	httpError
// @Router			/v1/analytics/budget-health [get]
// @Param			month	query	string	false	"Month to report on, format YYYY-MM"
func GetBudgetHealth(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	month := types.MonthOf(time.Now())
	if raw := c.Query("month"); raw != "" {
		parsed, err := types.ParseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, newHTTPError(err))
			return
		}
		month = parsed
	}

	health, err := analytics.GetBudgetHealth(models.DB, ownerID, month)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, health)
}

// @Summary		Problem categories
// @Description	Returns the categories that keep going over budget inside the trailing window.
// @Tags			Analytics
// @Produce		json
// @Success		200	{array}	analytics.ProblemCategory
// @Router			/v1/analytics/problem-categories [get]
// @Param			months	query	int	false	"Trailing window in months, defaults to 6"
func GetProblemCategories(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter AnalyticsWindowFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	problems, err := analytics.GetProblemCategories(models.DB, ownerID, filter.months())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, problems)
}

// @Summary		Budget recommendations
// @Description	Suggests budget changes per category based on budgets and actual spending in the trailing window.
// @Tags			Analytics
// @Produce		json
// @Success		200	{array}	analytics.Recommendation
// @Router			/v1/analytics/recommendations [get]
// @Param			months	query	int	false	"Trailing window in months, defaults to 6"
func GetRecommendations(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter AnalyticsWindowFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	recommendations, err := analytics.GetRecommendations(models.DB, ownerID, filter.months())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, recommendations)
}

// @Summary		Income stability
// @Description	Grades how steady the monthly income is and suggests a savings percentage.
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	analytics.Stability
// @Router			/v1/analytics/income-stability [get]
// @Param			months	query	int	false	"Trailing window in months, defaults to 6"
func GetIncomeStability(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter AnalyticsWindowFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	stability, err := analytics.GetIncomeStability(models.DB, ownerID, filter.months())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, stability)
}
