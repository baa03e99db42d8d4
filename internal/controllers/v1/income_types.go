package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"github.com/shopspring/decimal"
)

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	Name  *string          `json:"name" example:"Salary"`                        // Name of the income, at most 30 characters
	Value *decimal.Decimal `json:"value" swaggertype:"string" example:"2500.00"` // Value of the income, at most 8 digits with 2 decimal places
}

func (editable IncomeEditable) apply(income *models.Income) {
	if editable.Name != nil {
		income.Name = *editable.Name
	}

	if editable.Value != nil {
		income.Value = *editable.Value
	}
}

// Income is the API representation of the income of a budget.
type Income struct {
	models.DefaultModel
	BudgetID uuid.UUID   `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Name     string      `json:"name" example:"Salary"`
	Value    Amount      `json:"value" swaggertype:"string" example:"2500.00"`
	Creator  User        `json:"creator"`
	Links    IncomeLinks `json:"links"`
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/3f1c1e2a-64a5-4d1b-8c0e-7b4a8a0e9f10"` // The income itself
}

// newIncome needs the creator of the model to be loaded.
func (co Controller) newIncome(c *gin.Context, model models.Income) Income {
	return Income{
		DefaultModel: model.DefaultModel,
		BudgetID:     model.BudgetID,
		Name:         model.Name,
		Value:        Amount{model.Value},
		Creator:      co.newUser(model.Creator),
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", c.GetString(string(models.DBContextURL)), model.ID),
		},
	}
}

type IncomeResponse struct {
	Data Income `json:"data"` // Data for the income
}
