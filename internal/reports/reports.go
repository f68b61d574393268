// Package reports builds aggregated financial reports over a date range.
//
// All operations are read-only compositions of ledger aggregates,
// budget state and saving goal state. They never write and never
// return partial data: any store error aborts the whole report.
package reports

import (
	"errors"
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/progress"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	ErrRangeMissing     = errors.New("both the start and the end of the report range must be set")
	ErrRangeInverted    = errors.New("the start of the report range must not be after its end")
	ErrRangeFutureStart = errors.New("the report range must not start in the future")
)

var hundred = decimal.NewFromInt(100)

// validateRange checks the report range against the rules that apply
// to every report operation.
func validateRange(from, to types.Date) error {
	if from.IsZero() || to.IsZero() {
		return ErrRangeMissing
	}
	if from.After(to) {
		return ErrRangeInverted
	}
	if from.After(types.Today()) {
		return ErrRangeFutureStart
	}

	return nil
}

// Report is the full financial report for a date range. Dashboard
// requests carry the same shape without the budget and saving goal
// sections.
type Report struct {
	From              types.Date           `json:"from" example:"2024-01-01"`
	To                types.Date           `json:"to" example:"2024-01-31"`
	TotalIncome       decimal.Decimal      `json:"totalIncome" example:"2317.34"`
	TotalExpense      decimal.Decimal      `json:"totalExpense" example:"1702.21"`
	Balance           decimal.Decimal      `json:"balance" example:"615.13"`
	ExpenseByCategory []models.CategorySum `json:"expenseByCategory"`
	IncomeByCategory  []models.CategorySum `json:"incomeByCategory"`
	EmptyData         bool                 `json:"emptyData" example:"false"` // True when the range contains no data at all, used for onboarding states
	Budgets           []BudgetRow          `json:"budgets,omitempty"`
	SavingGoals       []SavingGoalRow      `json:"savingGoals,omitempty"`
}

// BudgetRow is the report line for one budget.
type BudgetRow struct {
	Name               string          `json:"budgetName" example:"Groceries"`
	Amount             decimal.Decimal `json:"amount" example:"500"`
	Spent              decimal.Decimal `json:"spent" example:"133.70"`
	ProgressPercentage decimal.Decimal `json:"progressPercentage" example:"26.74"` // Unclamped, can exceed 100
	Exceeded           bool            `json:"exceeded" example:"false"`
}

// SavingGoalRow is the report line for one saving goal.
type SavingGoalRow struct {
	Name               string          `json:"name" example:"Vacation Fund"`
	TargetAmount       decimal.Decimal `json:"targetAmount" example:"3000"`
	CurrentAmount      decimal.Decimal `json:"currentAmount" example:"1250"`
	ProgressPercentage decimal.Decimal `json:"progressPercentage" example:"41.67"`
	Achieved           bool            `json:"achieved" example:"false"`
}

// Dashboard computes the lightweight aggregate for the range: totals,
// balance and the per-category breakdowns.
func Dashboard(owner uuid.UUID, from, to types.Date) (Report, error) {
	if err := validateRange(from, to); err != nil {
		return Report{}, err
	}

	totalExpense, err := models.ExpensesSum(owner, from, to, nil)
	if err != nil {
		return Report{}, err
	}

	totalIncome, err := models.IncomesSum(owner, from, to, nil)
	if err != nil {
		return Report{}, err
	}

	expenseByCategory, err := models.ExpensesByCategory(owner, from, to)
	if err != nil {
		return Report{}, err
	}

	incomeByCategory, err := models.IncomesByCategory(owner, from, to)
	if err != nil {
		return Report{}, err
	}

	empty := totalIncome.IsZero() && totalExpense.IsZero() &&
		len(expenseByCategory) == 0 && len(incomeByCategory) == 0

	return Report{
		From:              from,
		To:                to,
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		Balance:           totalIncome.Sub(totalExpense),
		ExpenseByCategory: expenseByCategory,
		IncomeByCategory:  incomeByCategory,
		EmptyData:         empty,
	}, nil
}

// Full computes the full report for the range: the dashboard plus the
// budget and saving goal sections.
func Full(owner uuid.UUID, from, to types.Date) (Report, error) {
	report, err := Dashboard(owner, from, to)
	if err != nil {
		return Report{}, err
	}

	report.Budgets, err = budgetRows(owner, from, to)
	if err != nil {
		return Report{}, err
	}

	report.SavingGoals, err = savingGoalRows(owner)
	if err != nil {
		return Report{}, err
	}

	return report, nil
}

// budgetRows maps every budget whose period overlaps the report range
// to a report line.
//
// Spending is computed over the intersection of the budget period and
// the report range, so budgets that only partially fall into the range
// are only charged for the days inside it.
func budgetRows(owner uuid.UUID, from, to types.Date) ([]BudgetRow, error) {
	budgets, err := models.BudgetsFor(owner)
	if err != nil {
		return nil, err
	}

	rows := make([]BudgetRow, 0, len(budgets))
	for _, budget := range budgets {
		if budget.EndDate.Before(from) || budget.StartDate.After(to) {
			continue
		}

		effectiveFrom := from
		if budget.StartDate.After(from) {
			effectiveFrom = budget.StartDate
		}

		effectiveTo := to
		if budget.EndDate.Before(to) {
			effectiveTo = budget.EndDate
		}

		name, err := budget.Name()
		if err != nil {
			return nil, err
		}

		spent, err := budget.Spent(effectiveFrom, effectiveTo)
		if err != nil {
			return nil, err
		}

		percentage := progress.Percentage(spent, budget.Amount)

		rows = append(rows, BudgetRow{
			Name:               name,
			Amount:             budget.Amount,
			Spent:              spent,
			ProgressPercentage: percentage,
			Exceeded:           percentage.GreaterThan(hundred),
		})
	}

	return rows, nil
}

func savingGoalRows(owner uuid.UUID) ([]SavingGoalRow, error) {
	goals, err := models.SavingGoalsFor(owner)
	if err != nil {
		return nil, err
	}

	rows := make([]SavingGoalRow, 0, len(goals))
	for _, goal := range goals {
		rows = append(rows, SavingGoalRow{
			Name:               goal.Name,
			TargetAmount:       goal.TargetAmount,
			CurrentAmount:      goal.CurrentAmount,
			ProgressPercentage: progress.Percentage(goal.CurrentAmount, goal.TargetAmount),
			Achieved:           goal.Achieved,
		})
	}

	return rows, nil
}

// MonthlyTrend is the income and expense aggregate for one month.
type MonthlyTrend struct {
	Month         types.Month     `json:"period" example:"2024-01"`
	TotalIncome   decimal.Decimal `json:"totalIncome" example:"2317.34"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"1702.21"`
	Savings       decimal.Decimal `json:"savings" example:"615.13"`
	SavingsRate   decimal.Decimal `json:"savingsRate" example:"26.54"`
}

// MonthlyTrends groups incomes and expenses into months over the
// range. A month appears as soon as either side has at least one
// entry; the other side is then reported as zero. Rows are sorted
// chronologically.
func MonthlyTrends(owner uuid.UUID, from, to types.Date) ([]MonthlyTrend, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	expenses, err := models.ExpensesByMonth(owner, from, to)
	if err != nil {
		return nil, err
	}

	incomes, err := models.IncomesByMonth(owner, from, to)
	if err != nil {
		return nil, err
	}

	seen := make(map[types.Month]bool)
	months := make([]types.Month, 0, len(expenses)+len(incomes))
	for month := range expenses {
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	for month := range incomes {
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}

	slices.SortFunc(months, func(a, b types.Month) int {
		return time.Time(a).Compare(time.Time(b))
	})

	trends := make([]MonthlyTrend, 0, len(months))
	for _, month := range months {
		income := incomes[month]
		expense := expenses[month]
		savings := income.Sub(expense)

		trends = append(trends, MonthlyTrend{
			Month:         month,
			TotalIncome:   income,
			TotalExpenses: expense,
			Savings:       savings,
			SavingsRate:   savingsRate(income, savings),
		})
	}

	return trends, nil
}

// savingsRate returns savings as a percentage of income, or zero when
// there is no income.
func savingsRate(income, savings decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}

	return savings.Div(income).Mul(hundred).Round(2)
}

// CategoryBreakdown is the per-category aggregate for one transaction type.
type CategoryBreakdown struct {
	Type            models.CategoryType  `json:"type" example:"EXPENSE"`
	TotalAmount     decimal.Decimal      `json:"totalAmount" example:"1702.21"`
	Categories      []models.CategorySum `json:"categories"`
	TopCategory     *models.CategorySum  `json:"topCategory"`
	TotalCategories int                  `json:"totalCategories" example:"4"`
}

// Breakdown computes the per-category sums for one transaction type.
// Any type other than INCOME is treated as EXPENSE.
func Breakdown(owner uuid.UUID, from, to types.Date, categoryType models.CategoryType) (CategoryBreakdown, error) {
	if err := validateRange(from, to); err != nil {
		return CategoryBreakdown{}, err
	}

	var categories []models.CategorySum
	var err error

	if categoryType == models.CategoryTypeIncome {
		categories, err = models.IncomesByCategory(owner, from, to)
	} else {
		categoryType = models.CategoryTypeExpense
		categories, err = models.ExpensesByCategory(owner, from, to)
	}
	if err != nil {
		return CategoryBreakdown{}, err
	}

	total := decimal.Zero
	for _, category := range categories {
		total = total.Add(category.Total)
	}

	// The lists are sorted by total descending, so ties resolve to the
	// first category in sorted order
	var top *models.CategorySum
	if len(categories) > 0 {
		top = &categories[0]
	}

	return CategoryBreakdown{
		Type:            categoryType,
		TotalAmount:     total,
		Categories:      categories,
		TopCategory:     top,
		TotalCategories: len(categories),
	}, nil
}

// BudgetPerformance classifies the budget report lines of the range.
type BudgetPerformance struct {
	TotalBudgets       int             `json:"totalBudgets" example:"3"`
	OnTrack            int             `json:"onTrack" example:"1"`  // Progress below 90
	AtRisk             int             `json:"atRisk" example:"1"`   // Progress between 90 and 100
	Exceeded           int             `json:"exceeded" example:"1"` // Progress above 100
	TotalBudgeted      decimal.Decimal `json:"totalBudgeted" example:"300"`
	TotalSpent         decimal.Decimal `json:"totalSpent" example:"262"`
	OverallUtilization decimal.Decimal `json:"overallUtilization" example:"87.33"`
	Budgets            []BudgetRow     `json:"budgets"`
}

var ninety = decimal.NewFromInt(90)

// Performance aggregates the budget rows of the range into on-track,
// at-risk and exceeded buckets.
func Performance(owner uuid.UUID, from, to types.Date) (BudgetPerformance, error) {
	if err := validateRange(from, to); err != nil {
		return BudgetPerformance{}, err
	}

	rows, err := budgetRows(owner, from, to)
	if err != nil {
		return BudgetPerformance{}, err
	}

	performance := BudgetPerformance{
		TotalBudgets: len(rows),
		Budgets:      rows,
	}

	for _, row := range rows {
		switch {
		case row.ProgressPercentage.LessThan(ninety):
			performance.OnTrack++
		case row.ProgressPercentage.LessThanOrEqual(hundred):
			performance.AtRisk++
		default:
			performance.Exceeded++
		}

		performance.TotalBudgeted = performance.TotalBudgeted.Add(row.Amount)
		performance.TotalSpent = performance.TotalSpent.Add(row.Spent)
	}

	if performance.TotalBudgeted.IsPositive() {
		performance.OverallUtilization = performance.TotalSpent.Div(performance.TotalBudgeted).Mul(hundred).Round(2)
	}

	return performance, nil
}

// QuickStats is the compact overview for the range.
type QuickStats struct {
	CurrentBalance       decimal.Decimal `json:"currentBalance" example:"615.13"`
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome" example:"2317.34"`
	MonthlyExpenses      decimal.Decimal `json:"monthlyExpenses" example:"1702.21"`
	NetCashFlow          decimal.Decimal `json:"netCashFlow" example:"615.13"`
	SavingsRate          decimal.Decimal `json:"savingsRate" example:"26.54"`
	ActiveBudgets        int             `json:"activeBudgets" example:"2"`
	ActiveSavingGoals    int             `json:"activeSavingGoals" example:"1"`
	TotalSavingsProgress decimal.Decimal `json:"totalSavingsProgress" example:"41.67"`
}

// Stats computes the quick stats for the range.
func Stats(owner uuid.UUID, from, to types.Date) (QuickStats, error) {
	if err := validateRange(from, to); err != nil {
		return QuickStats{}, err
	}

	income, err := models.IncomesSum(owner, from, to, nil)
	if err != nil {
		return QuickStats{}, err
	}

	expenses, err := models.ExpensesSum(owner, from, to, nil)
	if err != nil {
		return QuickStats{}, err
	}

	net := income.Sub(expenses)

	active, err := models.ActiveBudgets(owner, types.Today())
	if err != nil {
		return QuickStats{}, err
	}

	goals, err := models.SavingGoalsFor(owner)
	if err != nil {
		return QuickStats{}, err
	}

	activeGoals := 0
	totalProgress := decimal.Zero
	for _, goal := range goals {
		if goal.Achieved {
			continue
		}
		activeGoals++

		// Goals with a zero target can not report progress, they only
		// count towards the number of active goals
		if goal.TargetAmount.IsPositive() {
			totalProgress = totalProgress.Add(goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred))
		}
	}

	averageProgress := decimal.Zero
	if activeGoals > 0 {
		averageProgress = totalProgress.Div(decimal.NewFromInt(int64(activeGoals))).Round(2)
	}

	return QuickStats{
		CurrentBalance:       net,
		MonthlyIncome:        income,
		MonthlyExpenses:      expenses,
		NetCashFlow:          net,
		SavingsRate:          savingsRate(income, net),
		ActiveBudgets:        len(active),
		ActiveSavingGoals:    activeGoals,
		TotalSavingsProgress: averageProgress,
	}, nil
}
