package models_test

import (
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func (suite *TestSuiteStandard) TestCategoryBindings() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)
	other := suite.createTestBudget(alice)

	expense := suite.createTestExpense(alice, budget, "3")
	foreign := suite.createTestExpense(alice, other, "4")

	category := models.Category{BudgetID: budget.ID, Name: "Food"}
	suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&category).Error)

	// Binding twice keeps a single binding
	suite.Require().Nil(category.BindExpenses(suite.db, []uuid.UUID{expense.ID}))
	suite.Require().Nil(category.BindExpenses(suite.db, []uuid.UUID{expense.ID}))

	ids, err := category.ExpenseIDs(suite.db)
	suite.Require().Nil(err)
	assert.Equal(suite.T(), []uuid.UUID{expense.ID}, ids)

	categories, err := expense.CategoryIDs(suite.db)
	suite.Require().Nil(err)
	assert.Equal(suite.T(), []uuid.UUID{category.ID}, categories)

	// Expenses of other budgets cannot be bound
	err = category.BindExpenses(suite.db, []uuid.UUID{foreign.ID})
	var verr models.ValidationError
	if assert.ErrorAs(suite.T(), err, &verr) {
		assert.Equal(suite.T(), models.CodeInvalid, verr.Code)
	}

	// Unknown expenses cannot be bound
	err = category.BindExpenses(suite.db, []uuid.UUID{uuid.New()})
	if assert.ErrorAs(suite.T(), err, &verr) {
		assert.Equal(suite.T(), models.CodeDoesNotExist, verr.Code)
	}

	suite.Require().Nil(category.UnbindExpense(suite.db, expense.ID))
	suite.Require().Nil(category.UnbindExpense(suite.db, expense.ID))

	ids, err = category.ExpenseIDs(suite.db)
	suite.Require().Nil(err)
	assert.Empty(suite.T(), ids)
}

func (suite *TestSuiteStandard) TestExpenseDeleteRemovesBinding() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)
	expense := suite.createTestExpense(alice, budget, "3")

	category := models.Category{BudgetID: budget.ID, Name: "Food"}
	suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&category).Error)
	suite.Require().Nil(category.BindExpenses(suite.db, []uuid.UUID{expense.ID}))

	suite.Require().Nil(suite.db.Delete(&expense).Error)

	ids, err := category.ExpenseIDs(suite.db)
	suite.Require().Nil(err)
	assert.Empty(suite.T(), ids)

	_, err = models.FindCategory(suite.db, category.ID)
	assert.Nil(suite.T(), err, "The category must survive the deletion of its expenses")
}

func (suite *TestSuiteStandard) TestBudgetCategoriesOrdered() {
	alice := suite.createTestUser("alice")
	budget := suite.createTestBudget(alice)

	for _, name := range []string{"Rent", "Food", "Leisure"} {
		category := models.Category{BudgetID: budget.ID, Name: name}
		suite.Require().Nil(suite.db.Omit(clause.Associations).Create(&category).Error)
	}

	categories, err := models.BudgetCategories(suite.db, budget.ID)
	suite.Require().Nil(err)
	suite.Require().Len(categories, 3)
	assert.Equal(suite.T(), "Food", categories[0].Name)
	assert.Equal(suite.T(), "Rent", categories[2].Name)
}
