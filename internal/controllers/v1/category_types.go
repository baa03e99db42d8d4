package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name     *string     `json:"name" example:"Food"`                                     // Name of the category, at most 30 characters
	Expenses []uuid.UUID `json:"expenses" example:"0a9ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"` // IDs of expenses of the same budget to bind to the category
}

// CategoryBindingEditable names the expense whose binding is removed.
type CategoryBindingEditable struct {
	Expense *uuid.UUID `json:"expense" example:"0a9ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"` // ID of the expense
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/categories/9b0ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"`              // The category itself
	Bindings string `json:"bindings" example:"https://example.com/api/v1/categories/9b0ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d/bindings"` // Remove expenses from the category
	Budget   string `json:"budget" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`               // The budget the category belongs to
}

// Category is the API representation of a category.
type Category struct {
	models.DefaultModel
	BudgetID uuid.UUID     `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Name     string        `json:"name" example:"Food"`
	Expenses []uuid.UUID   `json:"expenses"` // IDs of the expenses bound to the category
	Links    CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, db *gorm.DB, model models.Category) (Category, error) {
	expenses, err := model.ExpenseIDs(db)
	if err != nil {
		return Category{}, err
	}

	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/categories/%s", url, model.ID)

	return Category{
		DefaultModel: model.DefaultModel,
		BudgetID:     model.BudgetID,
		Name:         model.Name,
		Expenses:     expenses,
		Links: CategoryLinks{
			Self:     self,
			Bindings: self + "/bindings",
			Budget:   fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
		},
	}, nil
}

type CategoryResponse struct {
	Data Category `json:"data"` // Data for the category
}

type CategoryListResponse struct {
	Data []Category `json:"data"` // List of categories
}
