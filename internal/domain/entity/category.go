package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether t is a known category type.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// UncategorizedName labels transactions whose category is missing or deleted.
const UncategorizedName = "Uncategorized"

// Category represents a transaction category.
// System categories have a nil UserID and IsDefault set; they are visible to every user.
type Category struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Type      CategoryType
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCategory creates a category owned by userID.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		UserID:    &userID,
		Name:      name,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy reports whether the category belongs to userID.
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID == userID
}

// IsVisibleTo reports whether userID may reference the category.
func (c *Category) IsVisibleTo(userID uuid.UUID) bool {
	return c.IsDefault || c.IsOwnedBy(userID)
}

// CategoryTemplate is a name/type pair used to seed a user's categories.
type CategoryTemplate struct {
	Name string
	Type CategoryType
}

// StarterCategories is the set created by the initialize operation.
var StarterCategories = []CategoryTemplate{
	{Name: "Salary", Type: CategoryTypeIncome},
	{Name: "Freelance", Type: CategoryTypeIncome},
	{Name: "Investment", Type: CategoryTypeIncome},
	{Name: "Other Income", Type: CategoryTypeIncome},
	{Name: "Food & Dining", Type: CategoryTypeExpense},
	{Name: "Transportation", Type: CategoryTypeExpense},
	{Name: "Shopping", Type: CategoryTypeExpense},
	{Name: "Entertainment", Type: CategoryTypeExpense},
	{Name: "Bills & Utilities", Type: CategoryTypeExpense},
	{Name: "Healthcare", Type: CategoryTypeExpense},
	{Name: "Education", Type: CategoryTypeExpense},
	{Name: "Other Expense", Type: CategoryTypeExpense},
}
