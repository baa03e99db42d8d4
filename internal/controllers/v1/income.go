package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homebudget/backend/internal/access"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Income with ID
	{
		r.OPTIONS("/:id", co.OptionsIncomeDetail)
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

// OptionsIncomeDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Incomes
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/incomes/{id} [options]
func (co Controller) OptionsIncomeDetail(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPatchDelete(c)
}

// CreateIncome sets the income of a budget
//
//	@Summary		Set income
//	@Description	Sets the income of the budget. A budget has at most one income, use PATCH /v1/incomes/{id} to change it.
//	@Tags			Incomes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	IncomeResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			income	body		IncomeEditable	true	"Income"
//	@Router			/v1/budgets/{id}/income [post]
func (co Controller) CreateIncome(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable IncomeEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	user := caller(c)
	income := models.Income{CreatorID: user.ID, Creator: user, BudgetID: id}

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

		editable.apply(&income)
		return tx.Omit(clause.Associations).Create(&income).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IncomeResponse{Data: co.newIncome(c, income)})
}

// UpdateIncome updates an income
//
//	@Summary		Update income
//	@Description	Updates an income. Only values to be updated need to be specified. Only the creator of the income or of its budget can update it.
//	@Tags			Incomes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	IncomeResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			income	body		IncomeEditable	true	"Income"
//	@Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable IncomeEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var income models.Income
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		income, err = models.FindIncome(tx, id)
		if err != nil {
			return err
		}

		budget, err := models.FindBudget(tx, income.BudgetID)
		if err != nil {
			return err
		}

		err = access.IsIncomeOrBudgetCreator(caller(c), income, budget)
		if err != nil {
			return err
		}

		editable.apply(&income)
		return tx.Omit(clause.Associations).Save(&income).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeResponse{Data: co.newIncome(c, income)})
}

// DeleteIncome deletes an income
//
//	@Summary		Delete income
//	@Description	Deletes an income. Only the creator of the income or of its budget can delete it.
//	@Tags			Incomes
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		403	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		income, err := models.FindIncome(tx, id)
		if err != nil {
			return err
		}

		budget, err := models.FindBudget(tx, income.BudgetID)
		if err != nil {
			return err
		}

		err = access.IsIncomeOrBudgetCreator(caller(c), income, budget)
		if err != nil {
			return err
		}

		return tx.Delete(&income).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
