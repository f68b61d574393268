package models

import (
	"encoding/json"
	"strings"

	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a dated outgoing monetary record.
type Expense struct {
	DefaultModel
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Category    Category        `json:"-"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date        types.Date
	Description string
}

// Income is a dated incoming monetary record.
//
// Expense and Income deliberately do not share a table or an embedded
// type. They are two record types with the same read capability, which
// keeps the aggregate queries symmetric without any subtype modeling.
type Income struct {
	DefaultModel
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Category    Category        `json:"-"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date        types.Date
	Description string
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	if e.Date.IsZero() {
		e.Date = types.Today()
	}
	e.Description = strings.TrimSpace(e.Description)

	return nil
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(e.Amount) {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	if i.Date.IsZero() {
		i.Date = types.Today()
	}
	i.Description = strings.TrimSpace(i.Description)

	return nil
}

func (i *Income) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(i.Amount) {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

// CategorySum is the aggregated total for a single category.
type CategorySum struct {
	CategoryName string          `json:"categoryName" example:"Groceries"`
	Total        decimal.Decimal `json:"totalAmount" example:"317.34"`
}

// ExpensesSum returns the sum of all expense amounts for the user in the
// inclusive date range, optionally restricted to a category.
func ExpensesSum(owner uuid.UUID, from, to types.Date, categoryID *uuid.UUID) (decimal.Decimal, error) {
	return transactionsSum("expenses", owner, from, to, categoryID)
}

// IncomesSum returns the sum of all income amounts for the user in the
// inclusive date range, optionally restricted to a category.
func IncomesSum(owner uuid.UUID, from, to types.Date, categoryID *uuid.UUID) (decimal.Decimal, error) {
	return transactionsSum("incomes", owner, from, to, categoryID)
}

func transactionsSum(table string, owner uuid.UUID, from, to types.Date, categoryID *uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	// Table queries do not go through the soft delete scope, therefore
	// deleted_at needs to be checked explicitly
	q := DB.Table(table).
		Select("SUM(amount)").
		Where("user_id = ?", owner).
		Where("deleted_at IS NULL").
		Where("date >= ? AND date <= ?", from, to)

	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	err := q.Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// ExpensesByCategory returns per-category expense totals for the user in
// the inclusive date range, sorted by total descending.
func ExpensesByCategory(owner uuid.UUID, from, to types.Date) ([]CategorySum, error) {
	return transactionsByCategory("expenses", owner, from, to)
}

// IncomesByCategory returns per-category income totals for the user in
// the inclusive date range, sorted by total descending.
func IncomesByCategory(owner uuid.UUID, from, to types.Date) ([]CategorySum, error) {
	return transactionsByCategory("incomes", owner, from, to)
}

func transactionsByCategory(table string, owner uuid.UUID, from, to types.Date) ([]CategorySum, error) {
	summaries := make([]CategorySum, 0)

	err := DB.Table(table).
		Select("categories.name AS category_name, SUM(amount) AS total").
		Joins("JOIN categories ON categories.id = "+table+".category_id AND categories.deleted_at IS NULL").
		Where(table+".user_id = ?", owner).
		Where(table+".deleted_at IS NULL").
		Where(table+".date >= ? AND "+table+".date <= ?", from, to).
		Group("categories.name").
		Order("total DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// ExpensesByMonth returns expense totals for the user bucketed by month.
func ExpensesByMonth(owner uuid.UUID, from, to types.Date) (map[types.Month]decimal.Decimal, error) {
	var expenses []Expense
	err := rangeQuery(owner, from, to).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[types.Month]decimal.Decimal)
	for _, expense := range expenses {
		month := expense.Date.MonthOfDate()
		totals[month] = totals[month].Add(expense.Amount)
	}

	return totals, nil
}

// IncomesByMonth returns income totals for the user bucketed by month.
func IncomesByMonth(owner uuid.UUID, from, to types.Date) (map[types.Month]decimal.Decimal, error) {
	var incomes []Income
	err := rangeQuery(owner, from, to).Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[types.Month]decimal.Decimal)
	for _, income := range incomes {
		month := income.Date.MonthOfDate()
		totals[month] = totals[month].Add(income.Amount)
	}

	return totals, nil
}

func rangeQuery(owner uuid.UUID, from, to types.Date) *gorm.DB {
	return DB.
		Where("user_id = ?", owner).
		Where("date >= ? AND date <= ?", from, to)
}

// Returns all expenses on this instance for export
func (Expense) Export() (json.RawMessage, error) {
	var expenses []Expense
	err := DB.Unscoped().Where(&Expense{}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&expenses)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Returns all incomes on this instance for export
func (Income) Export() (json.RawMessage, error) {
	var incomes []Income
	err := DB.Unscoped().Where(&Income{}).Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&incomes)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
