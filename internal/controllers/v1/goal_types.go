package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/progress"
	"github.com/centsible/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SavingGoalEditable represents all user configurable parameters
type SavingGoalEditable struct {
	Name         string          `json:"name" example:"Vacation Fund" default:""`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"3000" minimum:"0.00000001" maximum:"999999999999"`
	Deadline     *types.Date     `json:"deadline" example:"2024-12-31"` // Day the goal should be reached by. Optional
}

// SavingGoalAmount is the body of contribute and withdraw requests.
type SavingGoalAmount struct {
	Amount decimal.Decimal `json:"amount" example:"50" minimum:"0.00000001" maximum:"999999999999"`
}

type SavingGoalLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/saving-goals/3b1ea324-d438-4419-882a-2fc91d71772f"`                        // The saving goal itself
	Contribute    string `json:"contribute" example:"https://example.com/api/v1/saving-goals/3b1ea324-d438-4419-882a-2fc91d71772f/contribute"`       // Add to the saved amount
	Withdraw      string `json:"withdraw" example:"https://example.com/api/v1/saving-goals/3b1ea324-d438-4419-882a-2fc91d71772f/withdraw"`           // Take from the saved amount
	Contributions string `json:"contributions" example:"https://example.com/api/v1/saving-goals/3b1ea324-d438-4419-882a-2fc91d71772f/contributions"` // History of amount changes
}

type SavingGoal struct {
	models.DefaultModel
	SavingGoalEditable

	// These fields are computed
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"1250"` // Amount saved so far, changed via contribute and withdraw
	Progress      decimal.Decimal `json:"progress" example:"41.67"`     // Share of the target that is saved, not clamped
	Achieved      bool            `json:"achieved" example:"false"`     // Whether the current amount has reached the target

	Links SavingGoalLinks `json:"links"`
}

func newSavingGoal(c *gin.Context, model models.SavingGoal) SavingGoal {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/saving-goals/%s", url, model.ID)

	return SavingGoal{
		DefaultModel: model.DefaultModel,
		SavingGoalEditable: SavingGoalEditable{
			Name:         model.Name,
			TargetAmount: model.TargetAmount,
			Deadline:     model.Deadline,
		},
		CurrentAmount: model.CurrentAmount,
		Progress:      progress.Percentage(model.CurrentAmount, model.TargetAmount),
		Achieved:      model.Achieved,
		Links: SavingGoalLinks{
			Self:          self,
			Contribute:    self + "/contribute",
			Withdraw:      self + "/withdraw",
			Contributions: self + "/contributions",
		},
	}
}

// GoalContribution is one entry in the history of a saving goal.
type GoalContribution struct {
	models.DefaultModel

	Amount decimal.Decimal             `json:"amount" example:"50"`
	Type   models.GoalContributionType `json:"type" example:"DEPOSIT"` // DEPOSIT or WITHDRAWAL
}

func newGoalContribution(model models.GoalContribution) GoalContribution {
	return GoalContribution{
		DefaultModel: model.DefaultModel,
		Amount:       model.Amount,
		Type:         model.Type,
	}
}

type SavingGoalResponse struct {
	Data  *SavingGoal `json:"data"`                                                          // Data for the SavingGoal
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SavingGoalListResponse struct {
	Data  []SavingGoal `json:"data"`                                                          // List of SavingGoals
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalContributionListResponse struct {
	Data  []GoalContribution `json:"data"`                                                          // Contribution history, newest first
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
