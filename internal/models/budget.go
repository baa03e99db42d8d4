package models

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Budget is a shared spending plan. It is owned by its creator, participants
// can view it and record expenses.
type Budget struct {
	DefaultModel
	CreatorID uuid.UUID `json:"creatorId" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"`
	Creator   User      `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Name      string    `json:"name" example:"Holiday 2024"`
	Content   string    `json:"content" example:"Everything we spend in Italy"`
	Deleted   bool      `json:"deleted" example:"false"`

	// ParticipantIDs is loaded by FindBudget
	ParticipantIDs []uuid.UUID `json:"-" gorm:"-"`
}

// BudgetParticipant links a user to a budget they participate in.
type BudgetParticipant struct {
	BudgetID uuid.UUID `gorm:"primaryKey"`
	Budget   Budget    `gorm:"constraint:OnDelete:CASCADE"`
	UserID   uuid.UUID `gorm:"primaryKey;index"`
	User     User      `gorm:"constraint:OnDelete:CASCADE"`
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = normalizeName(b.Name)
	return validateName("name", b.Name, NameMaxLength)
}

// FindBudget loads a budget with its creator and participant IDs.
func FindBudget(db *gorm.DB, id uuid.UUID) (Budget, error) {
	var budget Budget
	err := db.Preload("Creator").First(&budget, "budgets.id = ?", id).Error
	if err != nil {
		return Budget{}, err
	}

	err = db.Model(&BudgetParticipant{}).Where("budget_id = ?", id).Pluck("user_id", &budget.ParticipantIDs).Error
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// VisibleBudgets returns all budgets the user created or participates in
// that are not marked deleted, newest first.
func VisibleBudgets(db *gorm.DB, userID uuid.UUID) ([]Budget, error) {
	participating := db.Model(&BudgetParticipant{}).Select("budget_id").Where("user_id = ?", userID)

	budgets := make([]Budget, 0)
	err := db.
		Preload("Creator").
		Where("deleted = ?", false).
		Where(db.Where("creator_id = ?", userID).Or("id IN (?)", participating)).
		Order("created_at DESC").
		Find(&budgets).
		Error

	return budgets, err
}

// IsParticipant reports if the user participates in the budget.
// The participants must have been loaded with FindBudget.
func (b Budget) IsParticipant(userID uuid.UUID) bool {
	return slices.Contains(b.ParticipantIDs, userID)
}

// Participants returns the participating users ordered by username.
func (b Budget) Participants(db *gorm.DB) ([]User, error) {
	users := make([]User, 0)
	err := db.
		Joins("JOIN budget_participants ON budget_participants.user_id = users.id").
		Where("budget_participants.budget_id = ?", b.ID).
		Order("users.username ASC").
		Find(&users).
		Error

	return users, err
}

// AddParticipants adds users to the participants. Users that already
// participate are left untouched, unknown users are rejected.
func (b *Budget) AddParticipants(db *gorm.DB, userIDs []uuid.UUID) error {
	ids := unique(userIDs)
	if len(ids) == 0 {
		return nil
	}

	existing, err := ExistingUserIDs(db, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !slices.Contains(existing, id) {
			return validationError("participants", CodeDoesNotExist, "invalid pk \"%s\" - object does not exist", id)
		}
	}

	rows := make([]BudgetParticipant, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, BudgetParticipant{BudgetID: b.ID, UserID: id})
	}

	err = db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !slices.Contains(b.ParticipantIDs, id) {
			b.ParticipantIDs = append(b.ParticipantIDs, id)
		}
	}

	return nil
}

// RemoveParticipants removes users from the participants. Users that do not
// participate are ignored.
func (b *Budget) RemoveParticipants(db *gorm.DB, userIDs []uuid.UUID) error {
	ids := unique(userIDs)
	if len(ids) == 0 {
		return nil
	}

	err := db.Where("budget_id = ? AND user_id IN ?", b.ID, ids).Delete(&BudgetParticipant{}).Error
	if err != nil {
		return err
	}

	b.ParticipantIDs = slices.DeleteFunc(b.ParticipantIDs, func(id uuid.UUID) bool {
		return slices.Contains(ids, id)
	})

	return nil
}

// Income returns the income of the budget, if there is one.
func (b Budget) Income(db *gorm.DB) (Income, bool, error) {
	var incomes []Income
	err := db.Preload("Creator").Where("budget_id = ?", b.ID).Limit(1).Find(&incomes).Error
	if err != nil {
		return Income{}, false, err
	}

	if len(incomes) == 0 {
		return Income{}, false, nil
	}

	return incomes[0], true, nil
}

// ExpensesSum returns the sum of all expenses of the budget.
func (b Budget) ExpensesSum(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.
		Table("expenses").
		Select("SUM(value)").
		Where("budget_id = ?", b.ID).
		Find(&sum).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no expenses are found, the value is nil
	if !sum.Valid {
		return decimal.Zero, nil
	}

	// sqlite sums values as floating point numbers, rounding removes
	// the representation artifacts
	return sum.Decimal.Round(valueMaxDecimalPlaces), nil
}

// BudgetLeft returns the income value minus the sum of all expenses.
// Without an income, the income value is 0.
func (b Budget) BudgetLeft(db *gorm.DB) (decimal.Decimal, error) {
	income, ok, err := b.Income(db)
	if err != nil {
		return decimal.Zero, err
	}

	left := decimal.Zero
	if ok {
		left = income.Value
	}

	sum, err := b.ExpensesSum(db)
	if err != nil {
		return decimal.Zero, err
	}

	return left.Sub(sum), nil
}

// ExpensePage is one page of the expenses of a budget.
type ExpensePage struct {
	Expenses []Expense
	Page     int
	Pages    int
	Count    int64
}

// Expenses returns a page of the expenses of the budget, newest first.
// Pages start at 1. A page outside of the available range returns the first page.
func (b Budget) Expenses(db *gorm.DB, page, size int) (ExpensePage, error) {
	if size < 1 {
		return ExpensePage{}, fmt.Errorf("page size must be positive, got %d", size)
	}

	var count int64
	err := db.Model(&Expense{}).Where("budget_id = ?", b.ID).Count(&count).Error
	if err != nil {
		return ExpensePage{}, err
	}

	pages := int(math.Ceil(float64(count) / float64(size)))
	if pages < 1 {
		pages = 1
	}

	if page < 1 || page > pages {
		page = 1
	}

	expenses := make([]Expense, 0, size)
	err = db.
		Preload("Creator").
		Where("budget_id = ?", b.ID).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&expenses).
		Error
	if err != nil {
		return ExpensePage{}, err
	}

	return ExpensePage{
		Expenses: expenses,
		Page:     page,
		Pages:    pages,
		Count:    count,
	}, nil
}

// unique returns ids without duplicates, keeping the first occurrence.
func unique(ids []uuid.UUID) []uuid.UUID {
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}
