package models

import (
	"errors"
	"fmt"
)

// Base errors. Everything a caller is expected to branch on wraps exactly one
// of these four, matching the HTTP statuses the controllers return.
var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrUnauthorized     = errors.New("you are not authorized for this request")
	ErrInvalid          = errors.New("invalid request")
)

var (
	ErrAccountNameNotUnique     = fmt.Errorf("%w: the account name is already in use", ErrInvalid)
	ErrCategoryNotUnique        = fmt.Errorf("%w: a category with this name and kind already exists", ErrInvalid)
	ErrBudgetMonthNotUnique     = fmt.Errorf("%w: a budget for this category and month already exists", ErrInvalid)
	ErrAccountTypeInvalid       = fmt.Errorf("%w: the account type is not supported", ErrInvalid)
	ErrCurrencyInvalid          = fmt.Errorf("%w: the currency code is not a known ISO 4217 code", ErrInvalid)
	ErrCategoryKindInvalid      = fmt.Errorf("%w: the category kind must be income or expense", ErrInvalid)
	ErrNameRequired             = fmt.Errorf("%w: the name must be set", ErrInvalid)
	ErrAmountNotPositive        = fmt.Errorf("%w: the amount must be positive", ErrInvalid)
	ErrFeeNegative              = fmt.Errorf("%w: the fee must not be negative", ErrInvalid)
	ErrPercentOutOfRange        = fmt.Errorf("%w: allocation percentages must be between 0 and 100", ErrInvalid)
	ErrSameAccountTransfer      = fmt.Errorf("%w: source and destination accounts for a transfer must be different", ErrInvalid)
	ErrAccountStillReferenced   = fmt.Errorf("%w: the account still has transactions, archive it instead of deleting it", ErrInvalid)
	ErrCategoryStillReferenced  = fmt.Errorf("%w: the category is still referenced by incomes, expenses or budgets", ErrInvalid)
	ErrReferenceInvalid         = fmt.Errorf("%w: a referenced resource does not exist", ErrInvalid)
	ErrRecurringIntervalInvalid = fmt.Errorf("%w: the recurring interval is not supported", ErrInvalid)
)
