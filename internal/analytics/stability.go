package analytics

import (
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// StabilityWindowMonths is the default trailing window for the income
// stability analysis.
const StabilityWindowMonths = 6

// Reasons for the suggested savings percentage.
const (
	ReasonVeryConsistent      = "very consistent"
	ReasonModerateVariation   = "moderate variation"
	ReasonVariable            = "variable"
	ReasonInsufficientHistory = "insufficient history"
)

// Stability grades how steady the owner's income is.
//
// The coefficient of variation of the monthly income totals maps to a
// suggested savings percentage: steady income supports a higher allocation.
type Stability struct {
	Months           int             `json:"months"`
	Mean             decimal.Decimal `json:"mean"`
	StdDev           decimal.Decimal `json:"stdDev"`
	CV               decimal.Decimal `json:"cv"`
	SuggestedPercent decimal.Decimal `json:"suggestedPercent"`
	Reason           string          `json:"reason"`
}

// GetIncomeStability groups the owner's incomes of the trailing window into
// monthly totals and computes the coefficient of variation.
func GetIncomeStability(db *gorm.DB, ownerID uuid.UUID, months int) (Stability, error) {
	type row struct {
		Month string
		Total decimal.Decimal
	}

	start := types.MonthOf(db.NowFunc()).AddDate(0, -(months - 1))

	var rows []row
	err := db.Model(&models.Income{}).
		Select("strftime('%Y-%m', date) AS month, SUM(amount) AS total").
		Where("owner_id = ? AND date >= ?", ownerID, start).
		Group("month").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return Stability{}, err
	}

	stability := Stability{Months: len(rows)}

	if len(rows) < 2 {
		stability.SuggestedPercent = decimal.NewFromInt(10)
		stability.Reason = ReasonInsufficientHistory
		return stability, nil
	}

	totals := make([]float64, len(rows))
	sum := 0.0
	for i, r := range rows {
		totals[i] = r.Total.InexactFloat64()
		sum += totals[i]
	}

	mean := sum / float64(len(totals))
	if mean == 0 {
		stability.SuggestedPercent = decimal.NewFromInt(10)
		stability.Reason = ReasonInsufficientHistory
		return stability, nil
	}

	variance := 0.0
	for _, total := range totals {
		variance += (total - mean) * (total - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(totals)))
	cv := stdDev / mean * 100

	stability.Mean = decimal.NewFromFloat(mean)
	stability.StdDev = decimal.NewFromFloat(stdDev)
	stability.CV = decimal.NewFromFloat(cv)

	switch {
	case cv < 15:
		stability.SuggestedPercent = decimal.NewFromInt(15)
		stability.Reason = ReasonVeryConsistent
	case cv < 30:
		stability.SuggestedPercent = decimal.NewFromInt(10)
		stability.Reason = ReasonModerateVariation
	default:
		stability.SuggestedPercent = decimal.NewFromInt(5)
		stability.Reason = ReasonVariable
	}

	return stability, nil
}

// SuggestedSavingsPercent is the default emergency fund percentage for the
// cascading allocation when an income does not specify one.
//
// It never fails: when the stability analysis errors, the moderate default
// is used so that an analytics problem cannot fail an income creation.
func SuggestedSavingsPercent(db *gorm.DB, ownerID uuid.UUID) decimal.Decimal {
	stability, err := GetIncomeStability(db, ownerID, StabilityWindowMonths)
	if err != nil {
		log.Warn().Err(err).Msg("income stability unavailable, using default savings percentage")
		return decimal.NewFromInt(10)
	}

	return stability.SuggestedPercent
}
