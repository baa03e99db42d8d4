package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/homebudget/backend/internal/controllers/v1"
	"github.com/homebudget/backend/internal/models"
	"github.com/homebudget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateExpenseAccess() {
	u1 := suite.createTestUser("u1")
	u2 := suite.createTestUser("u2")
	u3 := suite.createTestUser("u3")

	budget := suite.createTestBudget(u1, map[string]any{"name": "Shared", "participants": []uuid.UUID{u2.ID}})
	body := map[string]any{"name": "Groceries", "value": "12.34"}

	r := suite.request(u3, http.MethodPost, budget.Data.Links.Expenses, body)
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	expense := suite.createTestExpense(u2, budget.Data, body)
	assert.Equal(suite.T(), u2.ID, expense.Data.Creator.ID)
	assert.Equal(suite.T(), budget.Data.ID, expense.Data.BudgetID)
	assert.True(suite.T(), expense.Data.Value.Equal(decimal.RequireFromString("12.34")))
	assert.Equal(suite.T(), budget.Data.Links.Self, expense.Data.Links.Budget)

	_ = suite.createTestExpense(u1, budget.Data, body)

	r = suite.request(u1, http.MethodPost, fmt.Sprintf("%s/v1/budgets/%s/expenses", test.BaseURL, uuid.New()), body)
	suite.assertError(&r, http.StatusNotFound, "not_found")
}

func (suite *TestSuiteStandard) TestCreateExpenseValidation() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)

	tests := []struct {
		body  map[string]any
		field string
		code  string
	}{
		{map[string]any{"value": "1"}, "name", models.CodeRequired},
		{map[string]any{"name": "Groceries"}, "value", models.CodeRequired},
		{map[string]any{"name": "Groceries", "value": "-1"}, "value", models.CodeMinValue},
		{map[string]any{"name": "Groceries", "value": "1.234"}, "value", models.CodeMaxDecimalPlaces},
		{map[string]any{"name": "Groceries", "value": "1234567"}, "value", models.CodeMaxWholeDigits},
		{map[string]any{"name": "Groceries", "value": "1", "category": uuid.New()}, "category", models.CodeDoesNotExist},
	}

	for _, tt := range tests {
		r := suite.request(alice, http.MethodPost, budget.Data.Links.Expenses, tt.body)
		e := suite.assertError(&r, http.StatusBadRequest, tt.code)
		assert.Equal(suite.T(), tt.field, e.Field)
	}

	detail := suite.getBudget(alice, budget.Data.Links.Self)
	assert.Empty(suite.T(), detail.Data.Expenses, "Failed requests must not create expenses")
}

func (suite *TestSuiteStandard) TestCreateExpenseWithCategory() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)
	other := suite.createTestBudget(alice, map[string]any{"name": "Other"})

	category := suite.createTestCategory(alice, budget.Data, map[string]any{"name": "Food"})
	foreign := suite.createTestCategory(alice, other.Data, map[string]any{"name": "Food"})

	expense := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pizza", "value": "9.50", "category": category.Data.ID})

	categories := suite.getCategories(alice, budget.Data)
	suite.Require().Len(categories.Data, 1)
	assert.Equal(suite.T(), []uuid.UUID{expense.Data.ID}, categories.Data[0].Expenses)

	r := suite.request(alice, http.MethodPost, budget.Data.Links.Expenses, map[string]any{"name": "Pizza", "value": "9.50", "category": foreign.Data.ID})
	e := suite.assertError(&r, http.StatusBadRequest, models.CodeInvalid)
	assert.Equal(suite.T(), "category", e.Field)
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Shared", "participants": []uuid.UUID{bob.ID, carol.ID}})
	expense := suite.createTestExpense(bob, budget.Data, map[string]any{"name": "Cinema", "value": "20"})

	// Other participants cannot change the expense
	r := suite.request(carol, http.MethodPatch, expense.Data.Links.Self, map[string]any{"value": "0"})
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	// The creator of the expense can
	r = suite.request(bob, http.MethodPatch, expense.Data.Links.Self, map[string]any{"value": "25.50"})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Cinema", updated.Data.Name)
	assert.True(suite.T(), updated.Data.Value.Equal(decimal.RequireFromString("25.5")))
	assert.Equal(suite.T(), bob.ID, updated.Data.Creator.ID)

	// And so can the creator of the budget
	r = suite.request(alice, http.MethodPatch, expense.Data.Links.Self, map[string]any{"name": "Theatre"})
	suite.assertHTTPStatus(&r, http.StatusOK)

	r = suite.request(alice, http.MethodPatch, expense.Data.Links.Self, map[string]any{"value": "1.001"})
	suite.assertError(&r, http.StatusBadRequest, models.CodeMaxDecimalPlaces)

	detail := suite.getBudget(alice, budget.Data.Links.Self)
	suite.Require().Len(detail.Data.Expenses, 1)
	assert.Equal(suite.T(), "Theatre", detail.Data.Expenses[0].Name)
	assert.True(suite.T(), detail.Data.ExpensesSum.Equal(decimal.RequireFromString("25.50")))
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Shared", "participants": []uuid.UUID{bob.ID}})
	expense := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Cinema", "value": "20"})

	r := suite.request(bob, http.MethodDelete, expense.Data.Links.Self, nil)
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(alice, http.MethodDelete, expense.Data.Links.Self, nil)
	suite.assertHTTPStatus(&r, http.StatusNoContent)

	r = suite.request(alice, http.MethodDelete, expense.Data.Links.Self, nil)
	suite.assertError(&r, http.StatusNotFound, "not_found")

	detail := suite.getBudget(alice, budget.Data.Links.Self)
	assert.Empty(suite.T(), detail.Data.Expenses)
	assert.True(suite.T(), detail.Data.ExpensesSum.IsZero())
}

func (suite *TestSuiteStandard) TestOptionsExpense() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)
	expense := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Cinema", "value": "20"})

	r := suite.request(alice, http.MethodOptions, expense.Data.Links.Self, nil)
	suite.assertHTTPStatus(&r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, PATCH, DELETE", r.Header().Get("allow"))
}
