package models_test

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func (suite *TestSuiteStandard) TestBudgetTrimWhitespace() {
	user := suite.createTestUser("alice")
	budget := models.Budget{CreatorID: user.ID, Name: "  Groceries \t"}

	suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&budget).Error)
	assert.Equal(suite.T(), "Groceries", budget.Name)
}

func (suite *TestSuiteStandard) TestBudgetNameValidation() {
	user := suite.createTestUser("alice")

	tests := []struct {
		name string
		code string
	}{
		{"   ", models.CodeBlank},
		{strings.Repeat("x", 31), models.CodeMaxLength},
	}

	for _, tt := range tests {
		budget := models.Budget{CreatorID: user.ID, Name: tt.name}
		err := suite.db.Omit(clause.Associations).Create(&budget).Error

		var verr models.ValidationError
		if assert.ErrorAs(suite.T(), err, &verr) {
			assert.Equal(suite.T(), tt.code, verr.Code)
			assert.Equal(suite.T(), "name", verr.Field)
		}
	}
}

func (suite *TestSuiteStandard) TestFindBudgetNotFound() {
	_, err := models.FindBudget(suite.db, uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no budget matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestParticipantsAreASet() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	budget := suite.createTestBudget(alice, bob)
	assert.True(suite.T(), budget.IsParticipant(bob.ID))
	assert.False(suite.T(), budget.IsParticipant(alice.ID))

	// Adding an existing participant again is a no-op
	suite.Require().Nil(budget.AddParticipants(suite.db, []uuid.UUID{bob.ID, carol.ID, carol.ID}))

	users, err := budget.Participants(suite.db)
	suite.Require().Nil(err)
	suite.Require().Len(users, 2)
	assert.Equal(suite.T(), "bob", users[0].Username)
	assert.Equal(suite.T(), "carol", users[1].Username)

	// Removing a user that does not participate is ignored
	suite.Require().Nil(budget.RemoveParticipants(suite.db, []uuid.UUID{bob.ID, alice.ID}))

	reloaded, err := models.FindBudget(suite.db, budget.ID)
	suite.Require().Nil(err)
	assert.Equal(suite.T(), []uuid.UUID{carol.ID}, reloaded.ParticipantIDs)
}

func (suite *TestSuiteStandard) TestAddUnknownParticipant() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	err := budget.AddParticipants(suite.db, []uuid.UUID{uuid.New()})

	var verr models.ValidationError
	if assert.ErrorAs(suite.T(), err, &verr) {
		assert.Equal(suite.T(), models.CodeDoesNotExist, verr.Code)
		assert.Equal(suite.T(), "participants", verr.Field)
	}
}

func (suite *TestSuiteStandard) TestVisibleBudgets() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	own := suite.createTestBudget(alice)
	shared := suite.createTestBudget(bob, alice)
	_ = suite.createTestBudget(carol)

	deleted := suite.createTestBudget(alice)
	deleted.Deleted = true
	suite.Require().Nil(suite.db.Omit(clause.Associations).Save(&deleted).Error)

	budgets, err := models.VisibleBudgets(suite.db, alice.ID)
	suite.Require().Nil(err)

	ids := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.ID)
	}

	assert.ElementsMatch(suite.T(), []uuid.UUID{own.ID, shared.ID}, ids)
}

func (suite *TestSuiteStandard) TestBudgetAggregation() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	sum, err := budget.ExpensesSum(suite.db)
	suite.Require().Nil(err)
	assert.True(suite.T(), sum.IsZero(), "Sum without expenses must be zero, is %s", sum)

	left, err := budget.BudgetLeft(suite.db)
	suite.Require().Nil(err)
	assert.True(suite.T(), left.IsZero())

	income := models.Income{CreatorID: alice.ID, BudgetID: budget.ID, Name: "Salary", Value: decimal.RequireFromString("100")}
	suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&income).Error)

	suite.createTestExpense(alice, budget, "10.41")
	suite.createTestExpense(alice, budget, "0.10")
	suite.createTestExpense(alice, budget, "0.20")

	sum, err = budget.ExpensesSum(suite.db)
	suite.Require().Nil(err)
	assert.True(suite.T(), sum.Equal(decimal.RequireFromString("10.71")), "Sum is %s", sum)

	left, err = budget.BudgetLeft(suite.db)
	suite.Require().Nil(err)
	assert.True(suite.T(), left.Equal(decimal.RequireFromString("89.29")), "Budget left is %s", left)
}

func (suite *TestSuiteStandard) TestBudgetLeftNegative() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	suite.createTestExpense(alice, budget, "12.5")

	left, err := budget.BudgetLeft(suite.db)
	suite.Require().Nil(err)
	assert.True(suite.T(), left.Equal(decimal.RequireFromString("-12.5")), "Budget left is %s", left)
}

func (suite *TestSuiteStandard) TestSecondIncomeRejected() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	first := models.Income{CreatorID: alice.ID, BudgetID: budget.ID, Name: "Salary", Value: decimal.NewFromInt(1)}
	suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&first).Error)

	second := models.Income{CreatorID: alice.ID, BudgetID: budget.ID, Name: "Bonus", Value: decimal.NewFromInt(1)}
	err := suite.db.Omit(clause.Associations).Create(&second).Error

	var verr models.ValidationError
	if assert.ErrorAs(suite.T(), err, &verr) {
		assert.Equal(suite.T(), models.CodeUnique, verr.Code)
	}
}

func (suite *TestSuiteStandard) TestExpensePagination() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	for range 5 {
		suite.createTestExpense(alice, budget, "1")
	}

	tests := []struct {
		page     int
		size     int
		wantPage int
		pages    int
		length   int
	}{
		{1, 2, 1, 3, 2},
		{3, 2, 3, 3, 1},
		{4, 2, 1, 3, 2},
		{0, 2, 1, 3, 2},
		{-3, 10, 1, 1, 5},
	}

	for _, tt := range tests {
		page, err := budget.Expenses(suite.db, tt.page, tt.size)
		suite.Require().Nil(err)

		assert.Equal(suite.T(), tt.wantPage, page.Page)
		assert.Equal(suite.T(), tt.pages, page.Pages)
		assert.Equal(suite.T(), int64(5), page.Count)
		assert.Len(suite.T(), page.Expenses, tt.length)
	}
}

func (suite *TestSuiteStandard) TestExpensesEmptyBudget() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	page, err := budget.Expenses(suite.db, 2, 20)
	suite.Require().Nil(err)
	assert.Equal(suite.T(), 1, page.Page)
	assert.Equal(suite.T(), 1, page.Pages)
	assert.Empty(suite.T(), page.Expenses)
}

func (suite *TestSuiteStandard) TestBudgetDeleteCascades() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	budget := suite.createTestBudget(alice, bob)
	expense := suite.createTestExpense(alice, budget, "5")

	category := models.Category{BudgetID: budget.ID, Name: "Food"}
	suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&category).Error)
	suite.Require().Nil(category.BindExpenses(suite.db, []uuid.UUID{expense.ID}))

	suite.Require().Nil(suite.db.Delete(&budget).Error)

	for _, model := range []any{&models.Expense{}, &models.Category{}, &models.CategoryExpense{}, &models.BudgetParticipant{}} {
		var count int64
		suite.Require().Nil(suite.db.Model(model).Count(&count).Error)
		assert.Equal(suite.T(), int64(0), count, "%T has not been deleted", model)
	}

	// Users are not affected
	var users int64
	suite.Require().Nil(suite.db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(suite.T(), int64(2), users)
}

func (suite *TestSuiteStandard) TestUserDeleteRestricted() {
	alice := suite.createTestUser("alice")
	_ = suite.createTestBudget(alice)

	err := suite.db.Delete(&alice).Error
	assert.True(suite.T(), errors.Is(err, models.ErrResourceInUse), "Deleting a budget creator must fail, got %v", err)
}
