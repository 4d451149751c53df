package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
)

// EntryKind names the record type behind a history entry.
type EntryKind string

const (
	EntryIncome      EntryKind = "income"
	EntryExpense     EntryKind = "expense"
	EntryTransferIn  EntryKind = "transfer_in"
	EntryTransferOut EntryKind = "transfer_out"
)

// Entry is one account history line with its reconstructed running balance.
type Entry struct {
	Kind           EntryKind       `json:"kind"`
	ID             uuid.UUID       `json:"id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note"`
	RunningBalance decimal.Decimal `json:"runningBalance"`

	createdAt time.Time
}

// naturalKind returns the natural direction of the entry's effect on the
// account the history is built for.
func (e Entry) naturalKind() Kind {
	if e.Kind == EntryIncome || e.Kind == EntryTransferIn {
		return Credit
	}

	return Debit
}

// History reconstructs the running balance for every record touching the
// account, ordered newest first.
//
// The walk starts from the stored current balance and inverts one effect per
// step: the running balance shown for a record is the account balance just
// after that record, the inverted effect yields the balance just before it
// for the next iteration. This avoids re-summing from account inception, at
// the price of inheriting any error in the stored balance. It reads only,
// nothing is mutated.
func (s *Service) History(ownerID, accountID uuid.UUID) ([]Entry, error) {
	account, err := s.account(s.db, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	var incomes []models.Income
	err = s.db.Where("owner_id = ? AND account_id = ?", ownerID, accountID).Find(&incomes).Error
	if err != nil {
		return nil, err
	}
	for _, income := range incomes {
		entries = append(entries, Entry{
			Kind:      EntryIncome,
			ID:        income.ID,
			Date:      income.Date,
			Amount:    income.Amount,
			Note:      income.Note,
			createdAt: income.CreatedAt,
		})
	}

	var expenses []models.Expense
	err = s.db.Where("owner_id = ? AND account_id = ?", ownerID, accountID).Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		entries = append(entries, Entry{
			Kind:      EntryExpense,
			ID:        expense.ID,
			Date:      expense.Date,
			Amount:    expense.Amount,
			Note:      expense.Note,
			createdAt: expense.CreatedAt,
		})
	}

	var transfers []models.Transfer
	err = s.db.
		Where("owner_id = ?", ownerID).
		Where(s.db.Where("from_account_id = ?", accountID).Or("to_account_id = ?", accountID)).
		Find(&transfers).Error
	if err != nil {
		return nil, err
	}
	for _, transfer := range transfers {
		kind := EntryTransferIn
		if transfer.FromAccountID == accountID {
			kind = EntryTransferOut
		}

		entries = append(entries, Entry{
			Kind:      kind,
			ID:        transfer.ID,
			Date:      transfer.Date,
			Amount:    transfer.Amount,
			Note:      transfer.Note,
			createdAt: transfer.CreatedAt,
		})
	}

	// Newest first, creation order breaks date ties
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].createdAt.After(entries[j].createdAt)
	})

	balance := account.Balance
	classification := account.Classification()
	for i := range entries {
		entries[i].RunningBalance = balance
		balance = balance.Sub(Delta(classification, entries[i].naturalKind(), entries[i].Amount))
	}

	return entries, nil
}
