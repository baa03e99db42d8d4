package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/homebudget/backend/internal/controllers/v1"
	"github.com/homebudget/backend/internal/models"
	"github.com/homebudget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	budget := suite.createTestBudget(alice, map[string]any{
		"name":         "  Holiday ",
		"content":      "Italy",
		"participants": []uuid.UUID{bob.ID},
	})

	assert.Equal(suite.T(), "Holiday", budget.Data.Name)
	assert.Equal(suite.T(), "Italy", budget.Data.Content)
	assert.False(suite.T(), budget.Data.Deleted)
	assert.Equal(suite.T(), alice.ID, budget.Data.Creator.ID)
	assert.Equal(suite.T(), defaultAvatar, budget.Data.Creator.Avatar)
	assert.Equal(suite.T(), []v1.User{{ID: bob.ID, Username: "bob", Avatar: defaultAvatar}}, budget.Data.Participants)
	assert.Equal(suite.T(), fmt.Sprintf("%s/v1/budgets/%s", test.BaseURL, budget.Data.ID), budget.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestCreateBudgetIgnoresDeleted() {
	alice := suite.createTestUser("alice")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Rent", "deleted": true})
	assert.False(suite.T(), budget.Data.Deleted)
}

func (suite *TestSuiteStandard) TestCreateBudgetValidation() {
	alice := suite.createTestUser("alice")

	tests := []struct {
		name  string
		body  any
		field string
		code  string
	}{
		{"Missing name", map[string]any{"content": "No name"}, "name", models.CodeRequired},
		{"Blank name", map[string]any{"name": "  "}, "name", models.CodeBlank},
		{"Name too long", map[string]any{"name": strings.Repeat("x", 31)}, "name", models.CodeMaxLength},
		{"Unknown participant", map[string]any{"name": "Rent", "participants": []uuid.UUID{uuid.New()}}, "participants", models.CodeDoesNotExist},
		{"Wrong type", map[string]any{"name": 42}, "name", models.CodeInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(alice, http.MethodPost, test.BaseURL+"/v1/budgets", tt.body)
			e := suite.assertError(&r, http.StatusBadRequest, tt.code)
			assert.Equal(t, tt.field, e.Field)
		})
	}

	// Nothing has been persisted
	var count int64
	suite.Require().Nil(suite.controller.DB.Model(&models.Budget{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestCreateBudgetBadRequest() {
	alice := suite.createTestUser("alice")

	r := suite.request(alice, http.MethodPost, test.BaseURL+"/v1/budgets", "")
	suite.assertError(&r, http.StatusBadRequest, models.CodeInvalid)

	r = suite.request(alice, http.MethodPost, test.BaseURL+"/v1/budgets", `{"name": "Broken"`)
	suite.assertError(&r, http.StatusBadRequest, models.CodeInvalid)
}

func (suite *TestSuiteStandard) TestBudgetsNotAuthenticated() {
	r := suite.request(models.User{}, http.MethodGet, test.BaseURL+"/v1/budgets", nil)
	suite.assertError(&r, http.StatusUnauthorized, "not_authenticated")
}

func (suite *TestSuiteStandard) TestBudgetsNoDB() {
	alice := suite.createTestUser("alice")
	header := test.Authorization(suite.T(), suite.controller, alice)
	suite.CloseDB()

	r := test.Request(suite.T(), suite.controller, http.MethodGet, test.BaseURL+"/v1/budgets", nil, header)
	e := suite.assertError(&r, http.StatusInternalServerError, "error")
	assert.Equal(suite.T(), models.ErrGeneral.Error(), e.Error)
}

func (suite *TestSuiteStandard) TestGetBudgets() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	own := suite.createTestBudget(alice, map[string]any{"name": "Own"})
	shared := suite.createTestBudget(bob, map[string]any{"name": "Shared", "participants": []uuid.UUID{alice.ID}})
	_ = suite.createTestBudget(carol, map[string]any{"name": "Foreign"})

	deleted := suite.createTestBudget(alice, map[string]any{"name": "Deleted"})
	r := suite.request(alice, http.MethodPatch, deleted.Data.Links.Self, map[string]any{"deleted": true})
	suite.assertHTTPStatus(&r, http.StatusOK)

	r = suite.request(alice, http.MethodGet, test.BaseURL+"/v1/budgets", nil)
	suite.assertHTTPStatus(&r, http.StatusOK)

	var list v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &list)

	// Newest first
	suite.Require().Len(list.Data, 2)
	assert.Equal(suite.T(), shared.Data.ID, list.Data[0].ID)
	assert.Equal(suite.T(), bob.ID, list.Data[0].Creator.ID)
	assert.Equal(suite.T(), own.Data.ID, list.Data[1].ID)
	assert.Equal(suite.T(), own.Data.Links, list.Data[1].Links)
}

func (suite *TestSuiteStandard) TestGetBudget() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Shared", "participants": []uuid.UUID{bob.ID}})

	detail := suite.getBudget(alice, budget.Data.Links.Self)
	assert.Equal(suite.T(), budget.Data.ID, detail.Data.ID)
	assert.Nil(suite.T(), detail.Data.Income)
	assert.Empty(suite.T(), detail.Data.Expenses)
	assert.Equal(suite.T(), v1.Pagination{Page: 1, Pages: 1, PageSize: 20, Count: 0}, detail.Data.Pagination)

	_ = suite.getBudget(bob, budget.Data.Links.Self)

	r := suite.request(carol, http.MethodGet, budget.Data.Links.Self, nil)
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(alice, http.MethodGet, fmt.Sprintf("%s/v1/budgets/%s", test.BaseURL, uuid.New()), nil)
	e := suite.assertError(&r, http.StatusNotFound, "not_found")
	assert.Equal(suite.T(), "there is no budget matching your query", e.Error)

	r = suite.request(alice, http.MethodGet, test.BaseURL+"/v1/budgets/NotParseableAsUUID", nil)
	suite.assertError(&r, http.StatusBadRequest, models.CodeInvalid)
}

func (suite *TestSuiteStandard) TestGetDeletedBudget() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)

	r := suite.request(alice, http.MethodPatch, budget.Data.Links.Self, map[string]any{"deleted": true})
	suite.assertHTTPStatus(&r, http.StatusOK)

	_ = suite.getBudget(alice, budget.Data.Links.Self, http.StatusNotFound)

	// The creator can restore the budget
	r = suite.request(alice, http.MethodPatch, budget.Data.Links.Self, map[string]any{"deleted": false})
	suite.assertHTTPStatus(&r, http.StatusOK)

	_ = suite.getBudget(alice, budget.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestDeletedBudgetHidesChildren() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	budget := suite.createTestBudget(alice, map[string]any{"name": "Shared", "participants": []uuid.UUID{bob.ID}})

	r := suite.request(alice, http.MethodPatch, budget.Data.Links.Self, map[string]any{"deleted": true})
	suite.assertHTTPStatus(&r, http.StatusOK)

	tests := []struct {
		method string
		url    string
		body   any
	}{
		{http.MethodPost, budget.Data.Links.Expenses, map[string]any{"name": "Groceries", "value": "12.34"}},
		{http.MethodPost, budget.Data.Links.Income, map[string]any{"name": "Salary", "value": "100"}},
		{http.MethodPost, budget.Data.Links.Categories, map[string]any{"name": "Food"}},
		{http.MethodGet, budget.Data.Links.Categories, nil},
	}

	for _, tt := range tests {
		for _, user := range []models.User{alice, bob} {
			r := suite.request(user, tt.method, tt.url, tt.body)
			suite.assertError(&r, http.StatusNotFound, "not_found")
		}
	}

	// Nothing has been created
	for _, model := range []any{&models.Expense{}, &models.Income{}, &models.Category{}} {
		var count int64
		suite.Require().Nil(suite.controller.DB.Model(model).Count(&count).Error)
		assert.Equal(suite.T(), int64(0), count, "%T has been created", model)
	}
}

func (suite *TestSuiteStandard) TestAmountsUseTwoDecimalPlaces() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)

	r := suite.request(alice, http.MethodPost, budget.Data.Links.Expenses, map[string]any{"name": "Shopping", "value": "62.9"})
	suite.assertHTTPStatus(&r, http.StatusCreated)
	assert.Contains(suite.T(), r.Body.String(), `"value":"62.90"`)

	r = suite.request(alice, http.MethodPost, budget.Data.Links.Income, map[string]any{"name": "Salary", "value": "2500"})
	suite.assertHTTPStatus(&r, http.StatusCreated)
	assert.Contains(suite.T(), r.Body.String(), `"value":"2500.00"`)

	r = suite.request(alice, http.MethodGet, budget.Data.Links.Self, nil)
	suite.assertHTTPStatus(&r, http.StatusOK)
	body := r.Body.String()
	assert.Contains(suite.T(), body, `"value":"62.90"`)
	assert.Contains(suite.T(), body, `"value":"2500.00"`)
	assert.Contains(suite.T(), body, `"expensesSum":"62.90"`)
	assert.Contains(suite.T(), body, `"budgetLeft":"2437.10"`)
}

func (suite *TestSuiteStandard) TestBudgetAggregation() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)

	for _, value := range []string{"10.41", "15.74", "21.13", "62.90"} {
		_ = suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Shopping", "value": value})
	}

	detail := suite.getBudget(alice, budget.Data.Links.Self)
	assert.True(suite.T(), detail.Data.ExpensesSum.Equal(decimal.RequireFromString("110.18")), "Sum is %s", detail.Data.ExpensesSum)
	assert.True(suite.T(), detail.Data.BudgetLeft.Equal(decimal.RequireFromString("-110.18")), "Budget left is %s", detail.Data.BudgetLeft)
	assert.Len(suite.T(), detail.Data.Expenses, 4)

	r := suite.request(alice, http.MethodPost, budget.Data.Links.Income, map[string]any{"name": "Salary", "value": "200"})
	suite.assertHTTPStatus(&r, http.StatusCreated)

	detail = suite.getBudget(alice, budget.Data.Links.Self)
	suite.Require().NotNil(detail.Data.Income)
	assert.Equal(suite.T(), "Salary", detail.Data.Income.Name)
	assert.True(suite.T(), detail.Data.BudgetLeft.Equal(decimal.RequireFromString("89.82")), "Budget left is %s", detail.Data.BudgetLeft)
}

func (suite *TestSuiteStandard) TestGetBudgetPagination() {
	alice := suite.createTestUser("alice")
	suite.controller.PageSize = 2
	budget := suite.createTestBudget(alice, nil)

	for i := range 5 {
		_ = suite.createTestExpense(alice, budget.Data, map[string]any{"name": fmt.Sprintf("Expense %d", i), "value": "1"})
	}

	tests := []struct {
		query  string
		page   int
		length int
		first  string
	}{
		{"", 1, 2, "Expense 4"},
		{"?page=2", 2, 2, "Expense 2"},
		{"?page=3", 3, 1, "Expense 0"},
		{"?page=4", 1, 2, "Expense 4"},
		{"?page=-1", 1, 2, "Expense 4"},
		{"?page=abc", 1, 2, "Expense 4"},
	}

	for _, tt := range tests {
		detail := suite.getBudget(alice, budget.Data.Links.Self+tt.query)

		assert.Equal(suite.T(), tt.page, detail.Data.Pagination.Page, tt.query)
		assert.Equal(suite.T(), 3, detail.Data.Pagination.Pages, tt.query)
		assert.Equal(suite.T(), int64(5), detail.Data.Pagination.Count, tt.query)
		suite.Require().Len(detail.Data.Expenses, tt.length, tt.query)
		assert.Equal(suite.T(), tt.first, detail.Data.Expenses[0].Name, tt.query)
	}
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Rent", "content": "Flat", "participants": []uuid.UUID{bob.ID}})

	// Participants cannot update the budget
	r := suite.request(bob, http.MethodPatch, budget.Data.Links.Self, map[string]any{"name": "Mine"})
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(alice, http.MethodPatch, budget.Data.Links.Self, map[string]any{"name": "Rent 2024", "participants": []uuid.UUID{carol.ID, bob.ID}})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Rent 2024", updated.Data.Name)
	assert.Equal(suite.T(), "Flat", updated.Data.Content, "Fields that are not sent must not change")
	assert.Len(suite.T(), updated.Data.Participants, 2)

	detail := suite.getBudget(carol, budget.Data.Links.Self)
	assert.Equal(suite.T(), "Rent 2024", detail.Data.Name)

	r = suite.request(alice, http.MethodPatch, budget.Data.Links.Self, map[string]any{"name": ""})
	suite.assertError(&r, http.StatusBadRequest, models.CodeBlank)

	r = suite.request(alice, http.MethodPatch, fmt.Sprintf("%s/v1/budgets/%s", test.BaseURL, uuid.New()), map[string]any{"name": "Nope"})
	suite.assertError(&r, http.StatusNotFound, "not_found")
}

func (suite *TestSuiteStandard) TestRemoveBudgetParticipants() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Rent", "participants": []uuid.UUID{bob.ID, carol.ID}})
	url := budget.Data.Links.Self + "/participants"

	// Participants cannot remove anyone, not even themselves
	r := suite.request(bob, http.MethodPatch, url, map[string]any{"participants": []uuid.UUID{bob.ID}})
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(alice, http.MethodPatch, url, map[string]any{"participants": []uuid.UUID{bob.ID, uuid.New()}})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Require().Len(updated.Data.Participants, 1)
	assert.Equal(suite.T(), carol.ID, updated.Data.Participants[0].ID)

	_ = suite.getBudget(bob, budget.Data.Links.Self, http.StatusForbidden)
	_ = suite.getBudget(carol, budget.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Rent", "participants": []uuid.UUID{bob.ID}})
	expense := suite.createTestExpense(bob, budget.Data, map[string]any{"name": "Deposit", "value": "500"})

	r := suite.request(bob, http.MethodDelete, budget.Data.Links.Self, nil)
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(alice, http.MethodDelete, budget.Data.Links.Self, nil)
	suite.assertHTTPStatus(&r, http.StatusNoContent)

	_ = suite.getBudget(alice, budget.Data.Links.Self, http.StatusNotFound)

	r = suite.request(bob, http.MethodPatch, expense.Data.Links.Self, map[string]any{"name": "Gone"})
	suite.assertError(&r, http.StatusNotFound, "not_found")
}

func (suite *TestSuiteStandard) TestOptionsBudget() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)

	tests := []struct {
		url      string
		expected string
	}{
		{test.BaseURL + "/v1/budgets", "OPTIONS, GET, POST"},
		{budget.Data.Links.Self, "OPTIONS, GET, PATCH, DELETE"},
		{budget.Data.Links.Self + "/participants", "OPTIONS, PATCH"},
		{budget.Data.Links.Expenses, "OPTIONS, POST"},
		{budget.Data.Links.Income, "OPTIONS, POST"},
		{budget.Data.Links.Categories, "OPTIONS, GET, POST"},
	}

	for _, tt := range tests {
		r := suite.request(alice, http.MethodOptions, tt.url, nil)
		suite.assertHTTPStatus(&r, http.StatusNoContent)
		assert.Equal(suite.T(), tt.expected, r.Header().Get("allow"), tt.url)
	}

	r := suite.request(alice, http.MethodOptions, test.BaseURL+"/v1/budgets/NotParseableAsUUID", nil)
	suite.assertHTTPStatus(&r, http.StatusBadRequest)
}
