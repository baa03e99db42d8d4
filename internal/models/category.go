package models

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Category groups expenses of a budget.
type Category struct {
	DefaultModel
	BudgetID uuid.UUID `json:"budgetId" gorm:"index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Budget   Budget    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name     string    `json:"name" example:"Food"`
}

// CategoryExpense binds an expense to a category.
type CategoryExpense struct {
	CategoryID uuid.UUID `gorm:"primaryKey"`
	Category   Category  `gorm:"constraint:OnDelete:CASCADE"`
	ExpenseID  uuid.UUID `gorm:"primaryKey;index"`
	Expense    Expense   `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = normalizeName(c.Name)
	return validateName("name", c.Name, NameMaxLength)
}

// FindCategory loads a category.
func FindCategory(db *gorm.DB, id uuid.UUID) (Category, error) {
	var category Category
	err := db.First(&category, "categories.id = ?", id).Error
	return category, err
}

// BudgetCategories returns all categories of a budget ordered by name.
func BudgetCategories(db *gorm.DB, budgetID uuid.UUID) ([]Category, error) {
	categories := make([]Category, 0)
	err := db.Where("budget_id = ?", budgetID).Order("name ASC").Find(&categories).Error
	return categories, err
}

// ExpenseIDs returns the IDs of the expenses bound to the category.
func (c Category) ExpenseIDs(db *gorm.DB) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := db.Model(&CategoryExpense{}).Where("category_id = ?", c.ID).Pluck("expense_id", &ids).Error
	return ids, err
}

// BindExpenses binds expenses to the category. All expenses must exist
// and belong to the budget of the category. Bindings that exist already
// are left untouched.
func (c Category) BindExpenses(db *gorm.DB, expenseIDs []uuid.UUID) error {
	ids := unique(expenseIDs)
	if len(ids) == 0 {
		return nil
	}

	var expenses []Expense
	err := db.Where("id IN ?", ids).Find(&expenses).Error
	if err != nil {
		return err
	}

	for _, id := range ids {
		i := slices.IndexFunc(expenses, func(e Expense) bool { return e.ID == id })
		if i == -1 {
			return validationError("expenses", CodeDoesNotExist, "invalid pk \"%s\" - object does not exist", id)
		}

		if expenses[i].BudgetID != c.BudgetID {
			return validationError("expenses", CodeInvalid, "expense \"%s\" does not belong to the budget of this category", id)
		}
	}

	rows := make([]CategoryExpense, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, CategoryExpense{CategoryID: c.ID, ExpenseID: id})
	}

	return db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// UnbindExpense removes the binding of an expense to the category.
// Unbinding an expense that is not bound is a no-op.
func (c Category) UnbindExpense(db *gorm.DB, expenseID uuid.UUID) error {
	return db.Where("category_id = ? AND expense_id = ?", c.ID, expenseID).Delete(&CategoryExpense{}).Error
}
