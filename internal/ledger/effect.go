// Package ledger implements the mutation and reconciliation rules that keep
// account balances consistent with the income, expense and transfer records
// referencing them.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
)

// Kind is the natural direction of a transaction: income received and
// transfers in are credits, expenses paid and transfers out are debits.
type Kind string

const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

// Inverse returns the opposite direction.
func (k Kind) Inverse() Kind {
	if k == Credit {
		return Debit
	}

	return Credit
}

// Delta returns the signed balance change a transaction causes on an account.
//
// This is the only place where the natural direction of a transaction and the
// classification of an account are combined into a balance change. For a
// liability, incoming money reduces what is owed and outgoing money increases
// it, so the sign is inverted relative to an asset account.
//
//	                asset    liability
//	credit amount   +amount  -amount
//	debit amount    -amount  +amount
func Delta(classification models.Classification, kind Kind, amount decimal.Decimal) decimal.Decimal {
	if classification == models.ClassificationLiability {
		kind = kind.Inverse()
	}

	if kind == Debit {
		return amount.Neg()
	}

	return amount
}
