package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	Name     *string          `json:"name" example:"Groceries"`                                // Name of the expense, at most 30 characters
	Value    *decimal.Decimal `json:"value" swaggertype:"string" example:"62.90"`              // Value of the expense, at most 8 digits with 2 decimal places
	Category *uuid.UUID       `json:"category" example:"9b0ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"` // Category of the same budget to bind the expense to. Only used on creation
}

func (editable ExpenseEditable) apply(expense *models.Expense) {
	if editable.Name != nil {
		expense.Name = *editable.Name
	}

	if editable.Value != nil {
		expense.Value = *editable.Value
	}
}

type ExpenseLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/expenses/0a9ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"`  // The expense itself
	Budget string `json:"budget" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The budget the expense belongs to
}

// Expense is the API representation of an expense.
type Expense struct {
	models.DefaultModel
	BudgetID uuid.UUID    `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Name     string       `json:"name" example:"Groceries"`
	Value    Amount       `json:"value" swaggertype:"string" example:"62.90"`
	Creator  User         `json:"creator"`
	Links    ExpenseLinks `json:"links"`
}

// newExpense needs the creator of the model to be loaded.
func (co Controller) newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		BudgetID:     model.BudgetID,
		Name:         model.Name,
		Value:        Amount{model.Value},
		Creator:      co.newUser(model.Creator),
		Links: ExpenseLinks{
			Self:   fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Budget: fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
		},
	}
}

type ExpenseResponse struct {
	Data Expense `json:"data"` // Data for the expense
}
