package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryKind determines whether a category applies to incomes or expenses.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Reserved category names used for records the ledger synthesizes itself.
const (
	BankFeesCategoryName   = "Bank Fees"
	AdjustmentCategoryName = "Balance Adjustment"
)

// Category groups incomes or expenses. The name is unique per owner and kind.
type Category struct {
	DefaultModel
	OwnerID uuid.UUID    `json:"ownerId" gorm:"uniqueIndex:category_owner_name_kind"`
	Name    string       `json:"name" gorm:"uniqueIndex:category_owner_name_kind"`
	Kind    CategoryKind `json:"kind" gorm:"uniqueIndex:category_owner_name_kind" example:"expense"`
	Note    string       `json:"note"`
}

// BeforeSave validates and normalizes the category.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if c.Name == "" {
		return ErrNameRequired
	}

	if c.Kind != CategoryKindIncome && c.Kind != CategoryKindExpense {
		return ErrCategoryKindInvalid
	}

	return nil
}

// ResolveCategory returns the category a transaction references.
//
// nameOrID can either be the UUID of an existing category or a free-text
// name. Names are resolved with get-or-create semantics so that referencing
// a new name transparently creates the category.
func ResolveCategory(db *gorm.DB, ownerID uuid.UUID, nameOrID string, kind CategoryKind) (Category, error) {
	var category Category

	nameOrID = strings.TrimSpace(nameOrID)
	if nameOrID == "" {
		return Category{}, ErrNameRequired
	}

	if id, err := uuid.Parse(nameOrID); err == nil {
		err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&category).Error
		if err != nil {
			return Category{}, err
		}
		return category, nil
	}

	err := db.
		Where(Category{OwnerID: ownerID, Name: nameOrID, Kind: kind}).
		FirstOrCreate(&category).Error
	if err != nil {
		return Category{}, err
	}

	return category, nil
}
