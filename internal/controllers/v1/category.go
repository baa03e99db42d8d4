package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/access"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
//
// Categories are created and listed through their budget, see RegisterBudgetRoutes.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Category with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}

	// Bindings
	{
		r.OPTIONS("/:id/bindings", co.OptionsCategoryBindings)
		r.PATCH("/:id/bindings", co.RemoveCategoryBinding)
	}
}

// OptionsCategoryDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPatchDelete(c)
}

// OptionsCategoryBindings returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id}/bindings [options]
func (co Controller) OptionsCategoryBindings(c *gin.Context) {
	if _, err := bindID(c); err != nil {
		writeError(c, err)
		return
	}

	httputil.OptionsPatch(c)
}

// CreateCategory creates a category for a budget
//
//	@Summary		Create category
//	@Description	Creates a category for the budget. All listed expenses must belong to the same budget.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	CategoryResponse
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		403			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			category	body		CategoryEditable	true	"Category"
//	@Router			/v1/budgets/{id}/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable CategoryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var data Category
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := activeBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsCreatorOrParticipant(caller(c), budget)
		if err != nil {
			return err
		}

		if editable.Name == nil {
			return models.Required("name")
		}

		category := models.Category{BudgetID: budget.ID, Name: *editable.Name}
		err = tx.Omit(clause.Associations).Create(&category).Error
		if err != nil {
			return err
		}

		err = category.BindExpenses(tx, editable.Expenses)
		if err != nil {
			return err
		}

		data, err = newCategory(c, tx, category)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: data})
}

// GetBudgetCategories returns the categories of a budget
//
//	@Summary		List categories
//	@Description	Returns the categories of the budget ordered by name, each with the IDs of its expenses
//	@Tags			Categories
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		403	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/budgets/{id}/categories [get]
func (co Controller) GetBudgetCategories(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var data []Category
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		budget, err := activeBudget(tx, id)
		if err != nil {
			return err
		}

		err = access.IsCreatorOrParticipant(caller(c), budget)
		if err != nil {
			return err
		}

		categories, err := models.BudgetCategories(tx, budget.ID)
		if err != nil {
			return err
		}

		data = make([]Category, 0, len(categories))
		for _, category := range categories {
			apiCategory, err := newCategory(c, tx, category)
			if err != nil {
				return err
			}
			data = append(data, apiCategory)
		}

		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// UpdateCategory updates a category
//
//	@Summary		Update category
//	@Description	Updates the name of a category and binds additional expenses to it. Expenses that are bound already stay bound.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	CategoryResponse
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		403			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			category	body		CategoryEditable	true	"Category"
//	@Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable CategoryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var data Category
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		category, err := co.authorizedCategory(c, tx, id)
		if err != nil {
			return err
		}

		if editable.Name != nil {
			category.Name = *editable.Name
			err = tx.Omit(clause.Associations).Save(&category).Error
			if err != nil {
				return err
			}
		}

		err = category.BindExpenses(tx, editable.Expenses)
		if err != nil {
			return err
		}

		data, err = newCategory(c, tx, category)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: data})
}

// DeleteCategory deletes a category
//
//	@Summary		Delete category
//	@Description	Deletes a category. The expenses bound to it are not deleted.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		403	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		category, err := co.authorizedCategory(c, tx, id)
		if err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveCategoryBinding removes an expense from a category
//
//	@Summary		Remove expense from category
//	@Description	Removes the binding between the category and the expense. Removing a binding that does not exist succeeds.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	CategoryResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		403		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			binding	body		CategoryBindingEditable	true	"Binding"
//	@Router			/v1/categories/{id}/bindings [patch]
func (co Controller) RemoveCategoryBinding(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var editable CategoryBindingEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		writeError(c, err)
		return
	}

	var data Category
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		category, err := co.authorizedCategory(c, tx, id)
		if err != nil {
			return err
		}

		if editable.Expense == nil {
			return models.Required("expense")
		}

		err = category.UnbindExpense(tx, *editable.Expense)
		if err != nil {
			return err
		}

		data, err = newCategory(c, tx, category)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: data})
}

// authorizedCategory loads the category and checks that the caller has
// access to its budget.
func (co Controller) authorizedCategory(c *gin.Context, tx *gorm.DB, id uuid.UUID) (models.Category, error) {
	category, err := models.FindCategory(tx, id)
	if err != nil {
		return models.Category{}, err
	}

	budget, err := models.FindBudget(tx, category.BudgetID)
	if err != nil {
		return models.Category{}, err
	}

	err = access.IsCreatorOrParticipant(caller(c), budget)
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}
