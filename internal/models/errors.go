package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Budget period validation errors.
var (
	ErrBudgetEndBeforeStart   = errors.New("the budget end date must not be before its start date")
	ErrBudgetOverlap          = errors.New("the budget period overlaps with an existing budget for the same category")
	ErrBudgetRolloverActive   = errors.New("only budgets whose period has ended can be rolled over")
	ErrBudgetPeriodNotUnique  = errors.New("a budget with the same category and period already exists")
	ErrBudgetConcurrentChange = errors.New("the budget was not saved because of a concurrent change, please try again")
)

// Category errors.
var ErrCategoryNameNotUnique = errors.New("the category name is already in use")

// Amount validation errors.
var (
	ErrBudgetAmountNotPositive      = errors.New("budget amounts must be larger than zero")
	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrGoalTargetNotPositive        = errors.New("saving goal targets must be larger than zero")
)

// Saving goal validation errors.
var (
	ErrGoalTargetBelowCurrent      = errors.New("the saving goal target must not be below the amount already saved")
	ErrGoalContributionNotPositive = errors.New("contributions and withdrawals must be larger than zero")
	ErrGoalWithdrawTooLarge        = errors.New("you can not withdraw more than the amount already saved")
)
