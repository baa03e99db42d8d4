package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
)

// BudgetEditable represents all user configurable parameters. Fields
// that are not sent are not changed.
type BudgetEditable struct {
	Name         *string     `json:"name" example:"Holiday 2024"`                                 // Name of the budget, at most 30 characters
	Content      *string     `json:"content" example:"Everything we spend in Italy"`              // Description of the budget
	Participants []uuid.UUID `json:"participants" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"` // IDs of users to add as participants
	Deleted      *bool       `json:"deleted" example:"false"`                                     // Marks the budget as deleted. Ignored on creation
}

func (editable BudgetEditable) apply(budget *models.Budget) {
	if editable.Name != nil {
		budget.Name = *editable.Name
	}

	if editable.Content != nil {
		budget.Content = *editable.Content
	}

	if editable.Deleted != nil {
		budget.Deleted = *editable.Deleted
	}
}

// ParticipantsEditable lists participants to remove from a budget.
type ParticipantsEditable struct {
	Participants []uuid.UUID `json:"participants" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"` // IDs of the users to remove
}

type BudgetLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // The budget itself
	Expenses   string `json:"expenses" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/expenses"`     // Create expenses for this budget
	Income     string `json:"income" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/income"`         // Set the income of this budget
	Categories string `json:"categories" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/categories"` // Categories of this budget
}

func budgetLinks(c *gin.Context, id uuid.UUID) BudgetLinks {
	self := fmt.Sprintf("%s/v1/budgets/%s", c.GetString(string(models.DBContextURL)), id)

	return BudgetLinks{
		Self:       self,
		Expenses:   self + "/expenses",
		Income:     self + "/income",
		Categories: self + "/categories",
	}
}

// Budget is the API representation of a budget.
type Budget struct {
	models.DefaultModel
	Name         string      `json:"name" example:"Holiday 2024"`
	Content      string      `json:"content" example:"Everything we spend in Italy"`
	Deleted      bool        `json:"deleted" example:"false"`
	Creator      User        `json:"creator"`
	Participants []User      `json:"participants"` // Participants ordered by username
	Links        BudgetLinks `json:"links"`
}

func (co Controller) newBudget(c *gin.Context, db *gorm.DB, model models.Budget) (Budget, error) {
	participants, err := model.Participants(db)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Content:      model.Content,
		Deleted:      model.Deleted,
		Creator:      co.newUser(model.Creator),
		Participants: co.newUsers(participants),
		Links:        budgetLinks(c, model.ID),
	}, nil
}

// BudgetListItem is the short form of a budget used in lists.
type BudgetListItem struct {
	ID      uuid.UUID   `json:"id" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`
	Name    string      `json:"name" example:"Holiday 2024"`
	Creator User        `json:"creator"`
	Links   BudgetLinks `json:"links"`
}

// BudgetDetail is a budget with its income, a page of its expenses and the
// computed totals.
type BudgetDetail struct {
	Budget
	Income      *Income    `json:"income"`                                            // The income of the budget, null if none is set
	Expenses    []Expense  `json:"expenses"`                                          // One page of expenses, newest first
	ExpensesSum Amount     `json:"expensesSum" swaggertype:"string" example:"110.18"` // Sum of all expenses of the budget
	BudgetLeft  Amount     `json:"budgetLeft" swaggertype:"string" example:"-110.18"` // Income minus the sum of all expenses
	Pagination  Pagination `json:"pagination"`                                        // Pagination information for the expenses
}

func (co Controller) newBudgetDetail(c *gin.Context, db *gorm.DB, model models.Budget, page int) (BudgetDetail, error) {
	budget, err := co.newBudget(c, db, model)
	if err != nil {
		return BudgetDetail{}, err
	}

	detail := BudgetDetail{Budget: budget}

	income, ok, err := model.Income(db)
	if err != nil {
		return BudgetDetail{}, err
	}

	if ok {
		i := co.newIncome(c, income)
		detail.Income = &i
	}

	expenses, err := model.Expenses(db, page, co.PageSize)
	if err != nil {
		return BudgetDetail{}, err
	}

	detail.Expenses = make([]Expense, 0, len(expenses.Expenses))
	for _, expense := range expenses.Expenses {
		detail.Expenses = append(detail.Expenses, co.newExpense(c, expense))
	}

	detail.Pagination = Pagination{
		Page:     expenses.Page,
		Pages:    expenses.Pages,
		PageSize: co.PageSize,
		Count:    expenses.Count,
	}

	sum, err := model.ExpensesSum(db)
	if err != nil {
		return BudgetDetail{}, err
	}
	detail.ExpensesSum = Amount{sum}

	left, err := model.BudgetLeft(db)
	if err != nil {
		return BudgetDetail{}, err
	}
	detail.BudgetLeft = Amount{left}

	return detail, nil
}

type BudgetResponse struct {
	Data Budget `json:"data"` // Data for the budget
}

type BudgetListResponse struct {
	Data []BudgetListItem `json:"data"` // List of budgets
}

type BudgetDetailResponse struct {
	Data BudgetDetail `json:"data"` // Data for the budget
}
