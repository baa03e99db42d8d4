package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/access"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
//
// Expenses are created through their budget, see RegisterBudgetRoutes.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// OptionsExpenseDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPatchDelete(c)
}

// CreateExpense creates an expense for a budget
//
//	@Summary		Create expense
//	@Description	Creates an expense for the budget. The authenticated user becomes its creator. If a category is given, the expense is bound to it.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	ExpenseResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/v1/budgets/{id}/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable ExpenseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	user := caller(c)
	expense := models.Expense{CreatorID: user.ID, Creator: user, BudgetID: id}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := activeBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsCreatorOrParticipant(user, budget)
		if err != nil {
			return err
		}

		if editable.Name == nil {
			return models.Required("name")
		}

		if editable.Value == nil {
			return models.Required("value")
		}

		editable.apply(&expense)
		err = tx.Omit(clause.Associations).Create(&expense).Error
		if err != nil {
			return err
		}

		if editable.Category == nil {
			return nil
		}

		category, err := models.FindCategory(tx, *editable.Category)
		if errors.Is(err, models.ErrResourceNotFound) {
			return models.ValidationError{Field: "category", Code: models.CodeDoesNotExist, Message: fmt.Sprintf("invalid pk \"%s\" - object does not exist", *editable.Category)}
		} else if err != nil {
			return err
		}

		if category.BudgetID != budget.ID {
			return models.ValidationError{Field: "category", Code: models.CodeInvalid, Message: "the category does not belong to the budget of this expense"}
		}

		return category.BindExpenses(tx, []uuid.UUID{expense.ID})
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: co.newExpense(c, expense)})
}

// UpdateExpense updates an expense
//
//	@Summary		Update expense
//	@Description	Updates an expense. Only values to be updated need to be specified. Only the creator of the expense or of its budget can update it.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	ExpenseResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable ExpenseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var expense models.Expense
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		expense, err = models.FindExpense(tx, id)
		if err != nil {
			return err
		}

		budget, err := models.FindBudget(tx, expense.BudgetID)
		if err != nil {
			return err
		}

		err = access.IsExpenseOrBudgetCreator(caller(c), expense, budget)
		if err != nil {
			return err
		}

		editable.apply(&expense)
		return tx.Omit(clause.Associations).Save(&expense).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: co.newExpense(c, expense)})
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense. Only the creator of the expense or of its budget can delete it.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		403	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		expense, err := models.FindExpense(tx, id)
		if err != nil {
			return err
		}

		budget, err := models.FindBudget(tx, expense.BudgetID)
		if err != nil {
			return err
		}

		err = access.IsExpenseOrBudgetCreator(caller(c), expense, budget)
		if err != nil {
			return err
		}

		return tx.Delete(&expense).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
