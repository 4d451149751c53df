package models

// RecurringInterval is the schedule of a recurring income or expense.
//
// Recurring records are templates for the user interface, the ledger only
// applies the concrete records created from them.
type RecurringInterval string

const (
	RecurringWeekly  RecurringInterval = "weekly"
	RecurringMonthly RecurringInterval = "monthly"
	RecurringYearly  RecurringInterval = "yearly"
)

func validRecurringInterval(i RecurringInterval) bool {
	switch i {
	case "", RecurringWeekly, RecurringMonthly, RecurringYearly:
		return true
	}

	return false
}
