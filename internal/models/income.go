package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is the money available for a budget. A budget has at most one.
type Income struct {
	DefaultModel
	CreatorID uuid.UUID       `json:"creatorId" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"`
	Creator   User            `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	BudgetID  uuid.UUID       `json:"budgetId" gorm:"uniqueIndex" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Budget    Budget          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name      string          `json:"name" example:"Salary"`
	Value     decimal.Decimal `json:"value" gorm:"type:DECIMAL(8,2)" example:"2500.00"`
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Name = normalizeName(i.Name)
	if err := validateName("name", i.Name, NameMaxLength); err != nil {
		return err
	}

	return validateValue("value", i.Value)
}

// FindIncome loads an income with its creator.
func FindIncome(db *gorm.DB, id uuid.UUID) (Income, error) {
	var income Income
	err := db.Preload("Creator").First(&income, "incomes.id = ?", id).Error
	return income, err
}
