package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// HealthStatus is the budget adherence band.
type HealthStatus string

const (
	StatusOnTrack HealthStatus = "on-track" // below 80 percent
	StatusWarning HealthStatus = "warning"  // 80 to 100 percent
	StatusOver    HealthStatus = "over"     // above 100 percent
)

// problemMonthThreshold is the number of over-budget months in the recent
// window that makes a category a problem category.
const problemMonthThreshold = 3

// BudgetHealth is the adherence of one budget in its month.
type BudgetHealth struct {
	BudgetID     uuid.UUID       `json:"budgetId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Month        types.Month     `json:"month"`
	Limit        decimal.Decimal `json:"limit"`
	Spent        decimal.Decimal `json:"spent"`
	Percentage   decimal.Decimal `json:"percentage"`
	Status       HealthStatus    `json:"status"`
}

// GetBudgetHealth computes spent amounts and adherence bands for all budgets
// of the owner in the given month.
func GetBudgetHealth(db *gorm.DB, ownerID uuid.UUID, month types.Month) ([]BudgetHealth, error) {
	var budgets []models.Budget

	err := db.Preload("Category").
		Where("owner_id = ? AND month = ?", ownerID, month).
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	health := make([]BudgetHealth, 0, len(budgets))
	for _, budget := range budgets {
		spent, err := budget.Spent(db)
		if err != nil {
			return nil, err
		}

		percentage := decimal.Zero
		if budget.Amount.IsPositive() {
			percentage = spent.Div(budget.Amount).Mul(hundred)
		}

		health = append(health, BudgetHealth{
			BudgetID:     budget.ID,
			CategoryID:   budget.CategoryID,
			CategoryName: budget.Category.Name,
			Month:        budget.Month,
			Limit:        budget.Amount,
			Spent:        spent,
			Percentage:   percentage,
			Status:       healthStatus(percentage),
		})
	}

	return health, nil
}

func healthStatus(percentage decimal.Decimal) HealthStatus {
	switch {
	case percentage.GreaterThan(hundred):
		return StatusOver
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return StatusWarning
	}

	return StatusOnTrack
}

// ProblemCategory is a category that keeps going over budget.
type ProblemCategory struct {
	CategoryID    uuid.UUID `json:"categoryId"`
	CategoryName  string    `json:"categoryName"`
	MonthsOver    int       `json:"monthsOver"`
	MonthsTracked int       `json:"monthsTracked"`
}

// GetProblemCategories returns the categories that were over budget in at
// least three of their most recent tracked months inside the trailing window.
func GetProblemCategories(db *gorm.DB, ownerID uuid.UUID, months int) ([]ProblemCategory, error) {
	budgets, err := budgetsInWindow(db, ownerID, months)
	if err != nil {
		return nil, err
	}

	type tally struct {
		name    string
		over    int
		tracked int
	}

	tallies := make(map[uuid.UUID]*tally)
	order := []uuid.UUID{}

	for _, budget := range budgets {
		t, ok := tallies[budget.CategoryID]
		if !ok {
			t = &tally{name: budget.Category.Name}
			tallies[budget.CategoryID] = t
			order = append(order, budget.CategoryID)
		}

		spent, err := budget.Spent(db)
		if err != nil {
			return nil, err
		}

		t.tracked++
		if spent.GreaterThan(budget.Amount) {
			t.over++
		}
	}

	problems := make([]ProblemCategory, 0)
	for _, id := range order {
		t := tallies[id]
		if t.over < problemMonthThreshold {
			continue
		}

		problems = append(problems, ProblemCategory{
			CategoryID:    id,
			CategoryName:  t.name,
			MonthsOver:    t.over,
			MonthsTracked: t.tracked,
		})
	}

	return problems, nil
}

// RecommendationAction is the suggested change for a category budget.
type RecommendationAction string

const (
	ActionIncrease RecommendationAction = "increase"
	ActionDecrease RecommendationAction = "decrease"
	ActionStable   RecommendationAction = "stable"
)

// Recommendation suggests a budget change for one category based on the
// trailing window of budgets and actual spending.
type Recommendation struct {
	CategoryID      uuid.UUID            `json:"categoryId"`
	CategoryName    string               `json:"categoryName"`
	AvgBudget       decimal.Decimal      `json:"avgBudget"`
	AvgSpent        decimal.Decimal      `json:"avgSpent"`
	Variance        decimal.Decimal      `json:"variance"` // percent deviation of spending from budget
	Action          RecommendationAction `json:"action"`
	SuggestedAmount decimal.Decimal      `json:"suggestedAmount"`
}

// decreaseThreshold: spending persistently below this share of the budget
// suggests lowering it.
var decreaseThreshold = decimal.NewFromInt(60)

// GetRecommendations computes per-category budget recommendations over the
// trailing window of months.
func GetRecommendations(db *gorm.DB, ownerID uuid.UUID, months int) ([]Recommendation, error) {
	budgets, err := budgetsInWindow(db, ownerID, months)
	if err != nil {
		return nil, err
	}

	type tally struct {
		name     string
		budgeted decimal.Decimal
		spent    decimal.Decimal
		overs    int
		tracked  int
	}

	tallies := make(map[uuid.UUID]*tally)
	order := []uuid.UUID{}

	for _, budget := range budgets {
		t, ok := tallies[budget.CategoryID]
		if !ok {
			t = &tally{name: budget.Category.Name}
			tallies[budget.CategoryID] = t
			order = append(order, budget.CategoryID)
		}

		spent, err := budget.Spent(db)
		if err != nil {
			return nil, err
		}

		t.tracked++
		t.budgeted = t.budgeted.Add(budget.Amount)
		t.spent = t.spent.Add(spent)
		if spent.GreaterThan(budget.Amount) {
			t.overs++
		}
	}

	recommendations := make([]Recommendation, 0, len(order))
	for _, id := range order {
		t := tallies[id]

		n := decimal.NewFromInt(int64(t.tracked))
		avgBudget := t.budgeted.Div(n)
		avgSpent := t.spent.Div(n)

		variance := decimal.Zero
		if avgBudget.IsPositive() {
			variance = avgSpent.Sub(avgBudget).Div(avgBudget).Mul(hundred)
		}

		recommendation := Recommendation{
			CategoryID:   id,
			CategoryName: t.name,
			AvgBudget:    avgBudget,
			AvgSpent:     avgSpent,
			Variance:     variance,
			Action:       ActionStable,
		}

		// Overspending in more than half of the tracked months counts as
		// consistent
		switch {
		case variance.IsPositive() && t.overs*2 > t.tracked:
			recommendation.Action = ActionIncrease
			recommendation.SuggestedAmount = roundToTens(avgSpent)
		case avgSpent.Mul(hundred).LessThan(avgBudget.Mul(decreaseThreshold)):
			recommendation.Action = ActionDecrease
			recommendation.SuggestedAmount = roundToTens(avgSpent)
		}

		recommendations = append(recommendations, recommendation)
	}

	return recommendations, nil
}

// budgetsInWindow loads all budgets of the owner in the trailing window of
// months, including the current month, with their categories.
func budgetsInWindow(db *gorm.DB, ownerID uuid.UUID, months int) ([]models.Budget, error) {
	var budgets []models.Budget

	start := types.MonthOf(db.NowFunc()).AddDate(0, -(months - 1))

	err := db.Preload("Category").
		Where("owner_id = ? AND month >= ?", ownerID, start).
		Order("month").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

// roundToTens rounds a suggested budget amount to the nearest ten units of
// currency.
func roundToTens(amount decimal.Decimal) decimal.Decimal {
	ten := decimal.NewFromInt(10)
	return amount.Div(ten).Round(0).Mul(ten)
}
