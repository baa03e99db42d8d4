// Package access decides whether a user may act on a budget or on one of
// its resources. All checks return nil when access is granted and an error
// wrapping models.ErrForbidden otherwise.
package access

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
)

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", models.ErrForbidden, reason)
}

// IsCreatorOrParticipant grants access to the creator and all participants of the budget.
// The participants must have been loaded with models.FindBudget.
func IsCreatorOrParticipant(user models.User, budget models.Budget) error {
	if budget.CreatorID == user.ID || budget.IsParticipant(user.ID) {
		return nil
	}

	return forbidden("only the creator and the participants of the budget have access to it")
}

// IsCreator grants access to the creator of the budget only.
func IsCreator(user models.User, budget models.Budget) error {
	if budget.CreatorID == user.ID {
		return nil
	}

	return forbidden("only the creator of the budget can perform this action")
}

// IsExpenseOrBudgetCreator grants access to the creator of the expense and to the creator of its budget.
func IsExpenseOrBudgetCreator(user models.User, expense models.Expense, budget models.Budget) error {
	if expense.CreatorID == user.ID || budget.CreatorID == user.ID {
		return nil
	}

	return forbidden("only the creator of the expense or of its budget can perform this action")
}

// IsIncomeOrBudgetCreator grants access to the creator of the income and to the creator of its budget.
func IsIncomeOrBudgetCreator(user models.User, income models.Income, budget models.Budget) error {
	if income.CreatorID == user.ID || budget.CreatorID == user.ID {
		return nil
	}

	return forbidden("only the creator of the income or of its budget can perform this action")
}

// IsInstanceAndBudgetCreator requires the user to have created both the resource and its budget.
func IsInstanceAndBudgetCreator(user models.User, instanceCreator uuid.UUID, budget models.Budget) error {
	if instanceCreator == user.ID && budget.CreatorID == user.ID {
		return nil
	}

	return forbidden("only a user who created both the resource and its budget can perform this action")
}
