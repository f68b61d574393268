package models

import (
	"encoding/json"
	"strings"

	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingGoal represents a target amount a user wants to save up, with
// the amount accumulated so far.
type SavingGoal struct {
	DefaultModel
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Deadline      *types.Date
	Achieved      bool
}

func (g *SavingGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	// Achieved is always derived from the amounts, it can not be set
	// directly
	g.Achieved = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)

	return nil
}

func (g *SavingGoal) AfterSave(_ *gorm.DB) error {
	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	return nil
}

// SavingGoalByID returns the saving goal with the ID if it belongs to the user.
func SavingGoalByID(id uuid.UUID, owner uuid.UUID) (SavingGoal, error) {
	var goal SavingGoal
	err := DB.Where("user_id = ?", owner).First(&goal, id).Error
	if err != nil {
		return SavingGoal{}, err
	}

	return goal, nil
}

// SavingGoalsFor returns all saving goals of the user, newest first.
func SavingGoalsFor(owner uuid.UUID) ([]SavingGoal, error) {
	var goals []SavingGoal
	err := DB.
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&goals).Error

	return goals, err
}

// UpdateTarget changes the name, target and deadline of the goal. The
// target must not drop below the amount already saved.
func (g *SavingGoal) UpdateTarget(name string, target decimal.Decimal, deadline *types.Date) error {
	if target.LessThan(g.CurrentAmount) {
		return ErrGoalTargetBelowCurrent
	}

	g.Name = name
	g.TargetAmount = target
	g.Deadline = deadline

	return DB.Save(g).Error
}

// Contribute adds the amount to the goal and records it in the
// contribution history.
func (g *SavingGoal) Contribute(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrGoalContributionNotPositive
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)

	return g.saveWithContribution(amount, GoalContributionDeposit)
}

// Withdraw removes the amount from the goal and records it in the
// contribution history. At most the amount already saved can be
// withdrawn.
func (g *SavingGoal) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrGoalContributionNotPositive
	}
	if g.CurrentAmount.LessThan(amount) {
		return ErrGoalWithdrawTooLarge
	}

	g.CurrentAmount = g.CurrentAmount.Sub(amount)

	return g.saveWithContribution(amount, GoalContributionWithdrawal)
}

// saveWithContribution persists the changed amounts together with the
// matching history entry. Either both are written or neither is.
func (g *SavingGoal) saveWithContribution(amount decimal.Decimal, contributionType GoalContributionType) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Save(g).Error
		if err != nil {
			return err
		}

		return tx.Create(&GoalContribution{
			SavingGoalID: g.ID,
			Amount:       amount,
			Type:         contributionType,
		}).Error
	})
}

// Returns all saving goals on this instance for export
func (SavingGoal) Export() (json.RawMessage, error) {
	var goals []SavingGoal
	err := DB.Unscoped().Where(&SavingGoal{}).Find(&goals).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&goals)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// GoalContributionType distinguishes the direction of a contribution.
type GoalContributionType string

const (
	GoalContributionDeposit    GoalContributionType = "DEPOSIT"
	GoalContributionWithdrawal GoalContributionType = "WITHDRAWAL"
)

// GoalContribution is one entry in the history of a saving goal. Every
// contribute and withdraw call records one.
type GoalContribution struct {
	DefaultModel
	SavingGoalID uuid.UUID
	SavingGoal   *SavingGoal     `json:"-"`
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type         GoalContributionType
}

// ContributionsFor returns the contribution history of the goal, newest
// first.
func ContributionsFor(goalID uuid.UUID) ([]GoalContribution, error) {
	var contributions []GoalContribution
	err := DB.
		Where("saving_goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&contributions).Error

	return contributions, err
}

// Returns all goal contributions on this instance for export
func (GoalContribution) Export() (json.RawMessage, error) {
	var contributions []GoalContribution
	err := DB.Unscoped().Where(&GoalContribution{}).Find(&contributions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&contributions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
