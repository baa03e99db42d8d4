package v1_test

import (
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/homebudget/backend/internal/controllers/v1"
	"github.com/homebudget/backend/internal/models"
	"github.com/homebudget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestCategory(user models.User, budget v1.Budget, body map[string]any, expectedStatus ...int) v1.CategoryResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := suite.request(user, http.MethodPost, budget.Links.Categories, body)
	suite.assertHTTPStatus(&r, expectedStatus...)

	var category v1.CategoryResponse
	if r.Code == http.StatusCreated {
		test.DecodeResponse(suite.T(), &r, &category)
	}
	return category
}

func (suite *TestSuiteStandard) getCategories(user models.User, budget v1.Budget) v1.CategoryListResponse {
	r := suite.request(user, http.MethodGet, budget.Links.Categories, nil)
	suite.assertHTTPStatus(&r, http.StatusOK)

	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)
	return categories
}

func (suite *TestSuiteStandard) TestCreateCategory() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Shared", "participants": []uuid.UUID{bob.ID}})
	first := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pizza", "value": "9.50"})
	second := suite.createTestExpense(bob, budget.Data, map[string]any{"name": "Pasta", "value": "4.20"})

	category := suite.createTestCategory(bob, budget.Data, map[string]any{
		"name":     "Food",
		"expenses": []uuid.UUID{first.Data.ID, second.Data.ID, first.Data.ID},
	})

	assert.Equal(suite.T(), "Food", category.Data.Name)
	assert.Equal(suite.T(), budget.Data.ID, category.Data.BudgetID)
	assert.ElementsMatch(suite.T(), []uuid.UUID{first.Data.ID, second.Data.ID}, category.Data.Expenses)
	assert.Equal(suite.T(), category.Data.Links.Self+"/bindings", category.Data.Links.Bindings)

	categories := suite.getCategories(alice, budget.Data)
	suite.Require().Len(categories.Data, 1)
	assert.Equal(suite.T(), category.Data.ID, categories.Data[0].ID)
	assert.ElementsMatch(suite.T(), category.Data.Expenses, categories.Data[0].Expenses)
}

func (suite *TestSuiteStandard) TestCreateCategoryForeignExpense() {
	alice := suite.createTestUser("alice")

	budget := suite.createTestBudget(alice, nil)
	other := suite.createTestBudget(alice, map[string]any{"name": "Other"})

	own := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pizza", "value": "9.50"})
	foreign := suite.createTestExpense(alice, other.Data, map[string]any{"name": "Pasta", "value": "4.20"})

	r := suite.request(alice, http.MethodPost, budget.Data.Links.Categories, map[string]any{
		"name":     "Food",
		"expenses": []uuid.UUID{own.Data.ID, foreign.Data.ID},
	})
	e := suite.assertError(&r, http.StatusBadRequest, models.CodeInvalid)
	assert.Equal(suite.T(), "expenses", e.Field)

	// Nothing has been persisted
	assert.Empty(suite.T(), suite.getCategories(alice, budget.Data).Data)
}

func (suite *TestSuiteStandard) TestCategoryAccess() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	budget := suite.createTestBudget(alice, map[string]any{"name": "Shared", "participants": []uuid.UUID{bob.ID}})
	category := suite.createTestCategory(alice, budget.Data, map[string]any{"name": "Food"})

	_ = suite.createTestCategory(carol, budget.Data, map[string]any{"name": "Mine"}, http.StatusForbidden)

	r := suite.request(carol, http.MethodGet, budget.Data.Links.Categories, nil)
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(carol, http.MethodPatch, category.Data.Links.Self, map[string]any{"name": "Mine"})
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(carol, http.MethodDelete, category.Data.Links.Self, nil)
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	r = suite.request(carol, http.MethodPatch, category.Data.Links.Bindings, map[string]any{"expense": uuid.New()})
	suite.assertError(&r, http.StatusForbidden, "permission_denied")

	// Participants can edit categories they did not create
	r = suite.request(bob, http.MethodPatch, category.Data.Links.Self, map[string]any{"name": "Groceries"})
	suite.assertHTTPStatus(&r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestGetCategoriesOrdered() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)

	for _, name := range []string{"Rent", "Food", "Leisure"} {
		_ = suite.createTestCategory(alice, budget.Data, map[string]any{"name": name})
	}

	categories := suite.getCategories(alice, budget.Data)
	suite.Require().Len(categories.Data, 3)
	assert.Equal(suite.T(), "Food", categories.Data[0].Name)
	assert.Equal(suite.T(), "Leisure", categories.Data[1].Name)
	assert.Equal(suite.T(), "Rent", categories.Data[2].Name)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)
	other := suite.createTestBudget(alice, map[string]any{"name": "Other"})

	first := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pizza", "value": "9.50"})
	second := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pasta", "value": "4.20"})
	foreign := suite.createTestExpense(alice, other.Data, map[string]any{"name": "Sushi", "value": "20"})

	category := suite.createTestCategory(alice, budget.Data, map[string]any{"name": "Food", "expenses": []uuid.UUID{first.Data.ID}})

	// Expenses are added to the existing ones
	r := suite.request(alice, http.MethodPatch, category.Data.Links.Self, map[string]any{"expenses": []uuid.UUID{second.Data.ID}})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Food", updated.Data.Name)
	assert.ElementsMatch(suite.T(), []uuid.UUID{first.Data.ID, second.Data.ID}, updated.Data.Expenses)

	r = suite.request(alice, http.MethodPatch, category.Data.Links.Self, map[string]any{"expenses": []uuid.UUID{foreign.Data.ID}})
	suite.assertError(&r, http.StatusBadRequest, models.CodeInvalid)

	r = suite.request(alice, http.MethodPatch, category.Data.Links.Self, map[string]any{"name": "  "})
	suite.assertError(&r, http.StatusBadRequest, models.CodeBlank)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)
	expense := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pizza", "value": "9.50"})

	category := suite.createTestCategory(alice, budget.Data, map[string]any{"name": "Food", "expenses": []uuid.UUID{expense.Data.ID}})

	r := suite.request(alice, http.MethodDelete, category.Data.Links.Self, nil)
	suite.assertHTTPStatus(&r, http.StatusNoContent)

	assert.Empty(suite.T(), suite.getCategories(alice, budget.Data).Data)

	// Expenses survive the deletion of their category
	detail := suite.getBudget(alice, budget.Data.Links.Self)
	suite.Require().Len(detail.Data.Expenses, 1)
	assert.Equal(suite.T(), expense.Data.ID, detail.Data.Expenses[0].ID)
}

func (suite *TestSuiteStandard) TestRemoveCategoryBinding() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)
	first := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pizza", "value": "9.50"})
	second := suite.createTestExpense(alice, budget.Data, map[string]any{"name": "Pasta", "value": "4.20"})

	category := suite.createTestCategory(alice, budget.Data, map[string]any{"name": "Food", "expenses": []uuid.UUID{first.Data.ID, second.Data.ID}})

	r := suite.request(alice, http.MethodPatch, category.Data.Links.Bindings, map[string]any{})
	e := suite.assertError(&r, http.StatusBadRequest, models.CodeRequired)
	assert.Equal(suite.T(), "expense", e.Field)

	r = suite.request(alice, http.MethodPatch, category.Data.Links.Bindings, map[string]any{"expense": first.Data.ID})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), []uuid.UUID{second.Data.ID}, updated.Data.Expenses)

	// Removing a binding that does not exist is a no-op
	r = suite.request(alice, http.MethodPatch, category.Data.Links.Bindings, map[string]any{"expense": first.Data.ID})
	suite.assertHTTPStatus(&r, http.StatusOK)

	// The expense itself is not deleted
	detail := suite.getBudget(alice, budget.Data.Links.Self)
	assert.Len(suite.T(), detail.Data.Expenses, 2)
}

func (suite *TestSuiteStandard) TestOptionsCategory() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice, nil)
	category := suite.createTestCategory(alice, budget.Data, map[string]any{"name": "Food"})

	r := suite.request(alice, http.MethodOptions, category.Data.Links.Self, nil)
	suite.assertHTTPStatus(&r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, PATCH, DELETE", r.Header().Get("allow"))

	r = suite.request(alice, http.MethodOptions, category.Data.Links.Bindings, nil)
	suite.assertHTTPStatus(&r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, PATCH", r.Header().Get("allow"))
}
