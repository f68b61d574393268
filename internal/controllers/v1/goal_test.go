package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/centsible/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSavingGoalsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestSavingGoalsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No SavingGoal with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"SavingGoal exists", suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/saving-goals/%s", tt.id)
			r := test.Request(t, http.MethodOptions, path, "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestSavingGoalsCreate() {
	deadline := types.NewDate(2026, 12, 31)
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		Name:         "Vacation Fund",
		TargetAmount: decimal.NewFromInt(3000),
		Deadline:     &deadline,
	})

	require.NotNil(suite.T(), goal.Data)
	assert.Equal(suite.T(), "Vacation Fund", goal.Data.Name)
	assert.True(suite.T(), goal.Data.TargetAmount.Equal(decimal.NewFromInt(3000)))
	assert.True(suite.T(), goal.Data.CurrentAmount.IsZero())
	assert.True(suite.T(), goal.Data.Progress.IsZero())
	assert.False(suite.T(), goal.Data.Achieved)
	assert.Contains(suite.T(), goal.Data.Links.Contribute, "/contribute")
	assert.Contains(suite.T(), goal.Data.Links.Withdraw, "/withdraw")
}

func (suite *TestSuiteStandard) TestSavingGoalsCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `{ "targetAmount": "broken" }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Zero target", map[string]any{"name": "No target"}, http.StatusBadRequest},
		{"Negative target", map[string]any{"name": "Negative", "targetAmount": -100}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/saving-goals", tt.body, suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingGoalsContribute() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		TargetAmount: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(250),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SavingGoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.CurrentAmount.Equal(decimal.NewFromInt(250)))
	assert.True(suite.T(), updated.Data.Progress.Equal(decimal.NewFromInt(25)))
	assert.False(suite.T(), updated.Data.Achieved)
}

// TestSavingGoalsAchieved verifies that reaching the target marks the
// goal as achieved.
func (suite *TestSuiteStandard) TestSavingGoalsAchieved() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		TargetAmount: decimal.NewFromInt(100),
	})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(100),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SavingGoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Achieved)
}

func (suite *TestSuiteStandard) TestSavingGoalsContributeFails() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Zero amount", v1.SavingGoalAmount{}, http.StatusBadRequest},
		{"Negative amount", map[string]any{"amount": -50}, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, goal.Data.Links.Contribute, tt.body, suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingGoalsWithdraw() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		TargetAmount: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(100),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, goal.Data.Links.Withdraw, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(40),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SavingGoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.CurrentAmount.Equal(decimal.NewFromInt(60)))

	// More than the current amount can not be withdrawn
	r = test.Request(suite.T(), http.MethodPost, goal.Data.Links.Withdraw, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(100),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSavingGoalsUpdate() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		Name:         "Old name",
		TargetAmount: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, v1.SavingGoalEditable{
		Name:         "New name",
		TargetAmount: decimal.NewFromInt(2000),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SavingGoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "New name", updated.Data.Name)
	assert.True(suite.T(), updated.Data.TargetAmount.Equal(decimal.NewFromInt(2000)))
}

// TestSavingGoalsUpdateBelowCurrent verifies that the target can not
// drop below the amount already saved.
func (suite *TestSuiteStandard) TestSavingGoalsUpdateBelowCurrent() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		TargetAmount: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(500),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, v1.SavingGoalEditable{
		Name:         "Smaller",
		TargetAmount: decimal.NewFromInt(100),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSavingGoalsGetSingle() {
	g := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing SavingGoal", g.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No SavingGoal with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/saving-goals/%s", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingGoalsDelete() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing SavingGoal", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				g := suite.createTestSavingGoal(t, v1.SavingGoalEditable{})
				tt.id = g.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/saving-goals/%s", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingGoalsContributionsOptions() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{})

	r := test.Request(suite.T(), http.MethodOptions, goal.Data.Links.Contributions, "", suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestSavingGoalsContributions() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{
		TargetAmount: decimal.NewFromInt(1000),
	})

	var list v1.GoalContributionListResponse
	r := test.Request(suite.T(), http.MethodGet, goal.Data.Links.Contributions, "", suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 0)

	r = test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(100),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, goal.Data.Links.Withdraw, v1.SavingGoalAmount{
		Amount: decimal.NewFromInt(40),
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Contributions, "", suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 2)

	byType := make(map[models.GoalContributionType]decimal.Decimal)
	for _, contribution := range list.Data {
		byType[contribution.Type] = contribution.Amount
	}

	assert.True(suite.T(), byType[models.GoalContributionDeposit].Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), byType[models.GoalContributionWithdrawal].Equal(decimal.NewFromInt(40)))
}

func (suite *TestSuiteStandard) TestSavingGoalsContributionsOtherUser() {
	goal := suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{})

	r := test.Request(suite.T(), http.MethodGet, goal.Data.Links.Contributions, "", map[string]string{
		"X-User-ID": uuid.New().String(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
