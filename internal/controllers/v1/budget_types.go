package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID *uuid.UUID      `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category the budget limits. null for an overall budget
	Amount     decimal.Decimal `json:"amount" example:"500" minimum:"0.00000001" maximum:"999999999999"`
	StartDate  types.Date      `json:"startDate" example:"2024-01-01"`           // First day of the budget period
	EndDate    types.Date      `json:"endDate" example:"2024-01-31"`             // Last day of the budget period, inclusive
	Rollover   bool            `json:"rollover" example:"false" default:"false"` // Whether the budget was created by a rollover
	Archived   bool            `json:"archived" example:"false" default:"false"` // Is the budget archived?
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The budget itself
	Rollover string `json:"rollover" example:"https://example.com/api/v1/budgets/3b1ea324-d438-4419-882a-2fc91d71772f/rollover"` // Roll the budget over into a new period
}

type Budget struct {
	models.DefaultModel
	BudgetEditable

	// These fields are computed
	Name     string          `json:"name" example:"Groceries"`                           // Category name or "Overall Budget"
	Progress decimal.Decimal `json:"progress" example:"26.74" minimum:"0" maximum:"100"` // Share of the budget period already spent, clamped to [0, 100]

	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) (Budget, error) {
	url := c.GetString(string(models.DBContextURL))

	name, err := model.Name()
	if err != nil {
		return Budget{}, err
	}

	progress, err := model.Progress()
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			CategoryID: model.CategoryID,
			Amount:     model.Amount,
			StartDate:  model.StartDate,
			EndDate:    model.EndDate,
			Rollover:   model.Rollover,
			Archived:   model.Archived,
		},
		Name:     name,
		Progress: progress,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Rollover: fmt.Sprintf("%s/v1/budgets/%s/rollover", url, model.ID),
		},
	}, nil
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                          // List of Budgets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Expired bool `form:"expired"` // Only archived budgets, most recently ended first
	Active  bool `form:"active"`  // Only budgets whose period contains the current day
}
