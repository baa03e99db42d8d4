package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money spent from a budget.
type Expense struct {
	DefaultModel
	CreatorID uuid.UUID       `json:"creatorId" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"`
	Creator   User            `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	BudgetID  uuid.UUID       `json:"budgetId" gorm:"index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Budget    Budget          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name      string          `json:"name" example:"Groceries"`
	Value     decimal.Decimal `json:"value" gorm:"type:DECIMAL(8,2)" example:"62.90"`
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Name = normalizeName(e.Name)
	if err := validateName("name", e.Name, NameMaxLength); err != nil {
		return err
	}

	return validateValue("value", e.Value)
}

// FindExpense loads an expense with its creator.
func FindExpense(db *gorm.DB, id uuid.UUID) (Expense, error) {
	var expense Expense
	err := db.Preload("Creator").First(&expense, "expenses.id = ?", id).Error
	return expense, err
}

// CategoryIDs returns the IDs of the categories the expense is bound to.
func (e Expense) CategoryIDs(db *gorm.DB) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := db.Model(&CategoryExpense{}).Where("expense_id = ?", e.ID).Pluck("category_id", &ids).Error
	return ids, err
}
