package models

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/centsible/backend/internal/progress"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget represents a spending limit for one category over an inclusive
// date range.
//
// A budget with a nil CategoryID is an overall budget that spans all
// categories of the user. For every user and category, the periods of
// non-archived budgets never overlap; periods that touch on a single
// day count as overlapping.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID       `gorm:"uniqueIndex:budget_period"`
	CategoryID *uuid.UUID      `gorm:"uniqueIndex:budget_period"`
	Category   *Category       `json:"-"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StartDate  types.Date      `gorm:"uniqueIndex:budget_period"`
	EndDate    types.Date      `gorm:"uniqueIndex:budget_period"`
	Rollover   bool
	Archived   bool
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(b.Amount) {
		return ErrBudgetAmountNotPositive
	}

	return nil
}

// Name returns the display name of the budget, which is the category
// name or "Overall Budget" for budgets without a category.
func (b Budget) Name() (string, error) {
	if b.CategoryID == nil {
		return "Overall Budget", nil
	}

	var category Category
	err := DB.First(&category, *b.CategoryID).Error
	if err != nil {
		return "", err
	}

	return category.Name, nil
}

// Spent returns the expenses charged against the budget in the
// inclusive date range. For overall budgets, all categories count.
func (b Budget) Spent(from, to types.Date) (decimal.Decimal, error) {
	return ExpensesSum(b.UserID, from, to, b.CategoryID)
}

// Progress returns the share of the budget's own period that is
// already spent, clamped to [0, 100] for display.
func (b Budget) Progress() (decimal.Decimal, error) {
	spent, err := b.Spent(b.StartDate, b.EndDate)
	if err != nil {
		return decimal.Zero, err
	}

	return progress.Clamped(spent, b.Amount), nil
}

// BudgetByID returns the budget with the ID if it belongs to the user.
func BudgetByID(id uuid.UUID, owner uuid.UUID) (Budget, error) {
	var budget Budget
	err := DB.Where("user_id = ?", owner).First(&budget, id).Error
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// BudgetsFor returns all budgets of the user, start date descending.
func BudgetsFor(owner uuid.UUID) ([]Budget, error) {
	var budgets []Budget
	err := DB.
		Where("user_id = ?", owner).
		Order("start_date DESC").
		Find(&budgets).Error

	return budgets, err
}

// ActiveBudgets returns the non-archived budgets of the user whose
// period contains asOf.
func ActiveBudgets(owner uuid.UUID, asOf types.Date) ([]Budget, error) {
	var budgets []Budget
	err := DB.
		Where("user_id = ?", owner).
		Where("archived = ?", false).
		Where("start_date <= ? AND end_date >= ?", asOf, asOf).
		Order("start_date DESC").
		Find(&budgets).Error

	return budgets, err
}

// ExpiredBudgets returns the archived budgets of the user, end date
// descending.
func ExpiredBudgets(owner uuid.UUID) ([]Budget, error) {
	var budgets []Budget
	err := DB.
		Where("user_id = ?", owner).
		Where("archived = ?", true).
		Order("end_date DESC").
		Find(&budgets).Error

	return budgets, err
}

// ArchiveExpired archives every non-archived budget of the user whose
// period ended before asOf. It is safe to call repeatedly.
func ArchiveExpired(owner uuid.UUID, asOf types.Date) error {
	result := DB.Model(&Budget{}).
		Where("user_id = ?", owner).
		Where("archived = ?", false).
		Where("end_date < ?", asOf).
		Update("archived", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Info().Str("user", owner.String()).Int64("count", result.RowsAffected).Msg("archived expired budgets")
	}

	return nil
}

// overlappingBudgets returns all non-archived budgets of the user and
// category whose inclusive period shares at least one day with
// [start, end]. A nil category only matches overall budgets. excludeID
// removes the budget that is being updated from the check.
// budgetTxOptions is set by Connect depending on the backend.
//
// Sqlite serializes all writers on its single connection. Postgres runs
// transactions at read committed by default, which is not enough for
// the overlap check: two concurrent writers can both pass the check and
// both commit. Serializable isolation makes one of them fail instead.
var budgetTxOptions []*sql.TxOptions

// inBudgetTransaction runs fn in a transaction that keeps the overlap
// check and the write on a stable snapshot. A serialization failure
// means another writer got there first, which the caller can retry.
func inBudgetTransaction(fn func(tx *gorm.DB) error) error {
	err := DB.Transaction(fn, budgetTxOptions...)
	if err != nil && strings.Contains(err.Error(), "SQLSTATE 40001") {
		return ErrBudgetConcurrentChange
	}

	return err
}

func overlappingBudgets(db *gorm.DB, owner uuid.UUID, categoryID *uuid.UUID, start, end types.Date, excludeID uuid.UUID) ([]Budget, error) {
	q := db.
		Where("user_id = ?", owner).
		Where("archived = ?", false).
		Where("start_date <= ? AND end_date >= ?", end, start)

	if categoryID == nil {
		q = q.Where("category_id IS NULL")
	} else {
		q = q.Where("category_id = ?", *categoryID)
	}

	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}

	var budgets []Budget
	err := q.Find(&budgets).Error
	return budgets, err
}

// CreateBudget validates and persists a new budget.
func CreateBudget(owner uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, start, end types.Date, rollover bool) (Budget, error) {
	if end.Before(start) {
		return Budget{}, ErrBudgetEndBeforeStart
	}

	if categoryID != nil {
		if _, err := CategoryByID(*categoryID, owner); err != nil {
			return Budget{}, err
		}
	}

	budget := Budget{
		UserID:     owner,
		CategoryID: categoryID,
		Amount:     amount,
		StartDate:  start,
		EndDate:    end,
		Rollover:   rollover,
		Archived:   false,
	}

	// The overlap check and the insert have to happen in the same
	// transaction, otherwise two concurrent creates can both pass the
	// check before either writes
	err := inBudgetTransaction(func(tx *gorm.DB) error {
		overlapping, err := overlappingBudgets(tx, owner, categoryID, start, end, uuid.Nil)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrBudgetOverlap
		}

		return tx.Create(&budget).Error
	})
	if err != nil {
		return Budget{}, err
	}

	log.Info().Str("user", owner.String()).Str("budget", budget.ID.String()).
		Stringer("start", start).Stringer("end", end).Msg("created budget")

	return budget, nil
}

// UpdateBudget validates and persists changes to an existing budget.
//
// Unlike the automatic archival sweep, the archived flag can be set in
// both directions here.
func UpdateBudget(id uuid.UUID, owner uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, start, end types.Date, rollover, archived bool) (Budget, error) {
	budget, err := BudgetByID(id, owner)
	if err != nil {
		return Budget{}, err
	}

	if end.Before(start) {
		return Budget{}, ErrBudgetEndBeforeStart
	}

	if categoryID != nil {
		if _, err := CategoryByID(*categoryID, owner); err != nil {
			return Budget{}, err
		}
	}

	err = inBudgetTransaction(func(tx *gorm.DB) error {
		overlapping, err := overlappingBudgets(tx, owner, categoryID, start, end, budget.ID)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrBudgetOverlap
		}

		budget.CategoryID = categoryID
		budget.Amount = amount
		budget.StartDate = start
		budget.EndDate = end
		budget.Rollover = rollover
		budget.Archived = archived

		return tx.Save(&budget).Error
	})
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// DeleteBudget deletes the budget with the ID if it belongs to the user.
func DeleteBudget(id uuid.UUID, owner uuid.UUID) error {
	budget, err := BudgetByID(id, owner)
	if err != nil {
		return err
	}

	return DB.Delete(&budget).Error
}

// rolloverPeriod is the period a rollover budget will cover.
type rolloverPeriod struct {
	Start types.Date
	End   types.Date
}

// nextRolloverPeriod computes the period that follows [start, end].
//
// Full calendar months roll over to the next full calendar month so
// that monthly budgets stay aligned with months of differing lengths.
// All other periods keep their exact day count and start the day after
// the source period ends.
func nextRolloverPeriod(start, end types.Date) rolloverPeriod {
	if start.Day() == 1 && end.Equal(end.LastOfMonth()) {
		next := end.AddDays(1)
		return rolloverPeriod{Start: next, End: next.LastOfMonth()}
	}

	length := start.DaysUntil(end) + 1
	newStart := end.AddDays(1)
	return rolloverPeriod{Start: newStart, End: newStart.AddDays(length - 1)}
}

// RolloverBudget creates a new budget for the period immediately
// following an ended budget, with the same category and amount.
//
// The source budget only needs to have ended, it does not need to be
// archived yet. It is never modified.
func RolloverBudget(id uuid.UUID, owner uuid.UUID, today types.Date) (Budget, error) {
	source, err := BudgetByID(id, owner)
	if err != nil {
		return Budget{}, err
	}

	if !source.EndDate.Before(today) {
		return Budget{}, ErrBudgetRolloverActive
	}

	period := nextRolloverPeriod(source.StartDate, source.EndDate)

	budget := Budget{
		UserID:     owner,
		CategoryID: source.CategoryID,
		Amount:     source.Amount,
		StartDate:  period.Start,
		EndDate:    period.End,
		Rollover:   true,
		Archived:   false,
	}

	err = inBudgetTransaction(func(tx *gorm.DB) error {
		overlapping, err := overlappingBudgets(tx, owner, source.CategoryID, period.Start, period.End, uuid.Nil)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrBudgetOverlap
		}

		return tx.Create(&budget).Error
	})
	if err != nil {
		return Budget{}, err
	}

	log.Info().Str("user", owner.String()).Str("source", source.ID.String()).
		Str("budget", budget.ID.String()).Msg("rolled over budget")

	return budget, nil
}

// Returns all budgets on this instance for export
func (Budget) Export() (json.RawMessage, error) {
	var budgets []Budget
	err := DB.Unscoped().Where(&Budget{}).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&budgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
