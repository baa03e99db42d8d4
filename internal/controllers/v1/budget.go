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

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}

	// Nested resources
	{
		r.OPTIONS("/:id/participants", co.OptionsBudgetParticipants)
		r.PATCH("/:id/participants", co.RemoveBudgetParticipants)
		r.OPTIONS("/:id/expenses", co.OptionsBudgetExpenses)
		r.POST("/:id/expenses", co.CreateExpense)
		r.OPTIONS("/:id/income", co.OptionsBudgetIncome)
		r.POST("/:id/income", co.CreateIncome)
		r.OPTIONS("/:id/categories", co.OptionsBudgetCategories)
		r.GET("/:id/categories", co.GetBudgetCategories)
		r.POST("/:id/categories", co.CreateCategory)
	}
}

// OptionsBudgetList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Success		204
//	@Router			/v1/budgets [options]
func (co Controller) OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBudgetDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsBudgetParticipants returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id}/participants [options]
func (co Controller) OptionsBudgetParticipants(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPatch(c)
}

// OptionsBudgetExpenses returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id}/expenses [options]
func (co Controller) OptionsBudgetExpenses(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPost(c)
}

// OptionsBudgetIncome returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Incomes
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id}/income [options]
func (co Controller) OptionsBudgetIncome(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPost(c)
}

// OptionsBudgetCategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id}/categories [options]
func (co Controller) OptionsBudgetCategories(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsGetPost(c)
}

// CreateBudget creates a budget with the caller as creator
//
//	@Summary		Create budget
//	@Description	Creates a new budget. The authenticated user becomes its creator.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	BudgetResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	user := caller(c)
	budget := models.Budget{CreatorID: user.ID, Creator: user}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		if editable.Name == nil {
			return models.Required("name")
		}

		editable.apply(&budget)
		budget.Deleted = false

		err := tx.Omit(clause.Associations).Create(&budget).Error
		if err != nil {
			return err
		}

		return budget.AddParticipants(tx, editable.Participants)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := co.newBudget(c, co.DB, budget)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: data})
}

// GetBudgets returns the budgets of the caller
//
//	@Summary		List budgets
//	@Description	Returns all budgets the authenticated user created or participates in, newest first. Budgets marked as deleted are not listed.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	BudgetListResponse
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	budgets, err := models.VisibleBudgets(co.DB, caller(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}

	data := make([]BudgetListItem, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, BudgetListItem{
			ID:      budget.ID,
			Name:    budget.Name,
			Creator: co.newUser(budget.Creator),
			Links:   budgetLinks(c, budget.ID),
		})
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// GetBudget returns a budget with its expenses and totals
//
//	@Summary		Get budget
//	@Description	Returns a budget with its income, one page of its expenses and the computed totals. Only the creator and the participants can see a budget.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200		{object}	BudgetDetailResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			page	query		int		false	"Page of expenses, starting at 1. Invalid pages return the first page."
//	@Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	page := httputil.PageFromQuery(c)

	var detail BudgetDetail
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := activeBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsCreatorOrParticipant(caller(c), budget)
		if err != nil {
			return err
		}

		detail, err = co.newBudgetDetail(c, tx, budget, page)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetDetailResponse{Data: detail})
}

// UpdateBudget updates a budget
//
//	@Summary		Update budget
//	@Description	Updates an existing budget. Only values to be updated need to be specified. Participants are added to the existing ones. Only the creator can update a budget.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable BudgetEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var data Budget
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := models.FindBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsCreator(caller(c), budget)
		if err != nil {
			return err
		}

		editable.apply(&budget)
		err = tx.Omit(clause.Associations).Save(&budget).Error
		if err != nil {
			return err
		}

		err = budget.AddParticipants(tx, editable.Participants)
		if err != nil {
			return err
		}

		data, err = co.newBudget(c, tx, budget)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: data})
}

// RemoveBudgetParticipants removes participants from a budget
//
//	@Summary		Remove participants
//	@Description	Removes the listed users from the participants of the budget. Users that do not participate are ignored. Only the creator can remove participants.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200				{object}	BudgetResponse
//	@Failure		400				{object}	httpError
//	@Failure		401				{object}	httpError
//	@Failure		403				{object}	httpError
//	@Failure		404				{object}	httpError
//	@Failure		500				{object}	httpError
//	@Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			participants	body		ParticipantsEditable	true	"Participants to remove"
//	@Router			/v1/budgets/{id}/participants [patch]
func (co Controller) RemoveBudgetParticipants(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable ParticipantsEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var data Budget
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := models.FindBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsInstanceAndBudgetCreator(caller(c), budget.CreatorID, budget)
		if err != nil {
			return err
		}

		err = budget.RemoveParticipants(tx, editable.Participants)
		if err != nil {
			return err
		}

		data, err = co.newBudget(c, tx, budget)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: data})
}

// DeleteBudget deletes a budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget with its income, expenses and categories. Only the creator can delete a budget.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		403	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := models.FindBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsCreator(caller(c), budget)
		if err != nil {
			return err
		}

		return tx.Delete(&budget).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
