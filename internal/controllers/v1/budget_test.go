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

// TestBudgetsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Budget with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Budget exists", suite.createTestBudget(suite.T(), v1.BudgetEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id)
			r := test.Request(t, http.MethodOptions, path, "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	categoryID := category.Data.ID

	budget := suite.createTestBudget(suite.T(), v1.BudgetEditable{
		CategoryID: &categoryID,
		Amount:     decimal.NewFromInt(500),
		StartDate:  types.NewDate(2024, 1, 1),
		EndDate:    types.NewDate(2024, 1, 31),
	})

	require.NotNil(suite.T(), budget.Data)
	assert.Equal(suite.T(), "Groceries", budget.Data.Name)
	assert.True(suite.T(), budget.Data.Amount.Equal(decimal.NewFromInt(500)))
	assert.Contains(suite.T(), budget.Data.Links.Self, "/v1/budgets/")
	assert.Contains(suite.T(), budget.Data.Links.Rollover, "/rollover")
}

func (suite *TestSuiteStandard) TestBudgetsCreateOverall() {
	budget := suite.createTestBudget(suite.T(), v1.BudgetEditable{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	require.NotNil(suite.T(), budget.Data)
	assert.Nil(suite.T(), budget.Data.CategoryID)
	assert.Equal(suite.T(), "Overall Budget", budget.Data.Name)
}

func (suite *TestSuiteStandard) TestBudgetsCreateFails() {
	suite.createTestBudget(suite.T(), v1.BudgetEditable{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `{ "amount": "broken" }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{
			"End before start",
			v1.BudgetEditable{
				Amount:    decimal.NewFromInt(100),
				StartDate: types.NewDate(2024, 2, 10),
				EndDate:   types.NewDate(2024, 2, 1),
			},
			http.StatusBadRequest,
		},
		{
			"Non-existing category",
			map[string]any{
				"categoryId": uuid.New().String(),
				"amount":     100,
				"startDate":  "2024-02-01",
				"endDate":    "2024-02-29",
			},
			http.StatusNotFound,
		},
		{
			"Overlapping period",
			v1.BudgetEditable{
				Amount:    decimal.NewFromInt(100),
				StartDate: types.NewDate(2024, 1, 15),
				EndDate:   types.NewDate(2024, 2, 15),
			},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", tt.body, suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsGetSingle() {
	b := suite.createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Budget", b.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Budget with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsGetOtherUser() {
	b := suite.createTestBudget(suite.T(), v1.BudgetEditable{})

	otherUser := map[string]string{"X-User-ID": uuid.New().String()}
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", b.Data.ID), "", otherUser)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	// An expired budget, swept into the archive by the list endpoint
	suite.createTestBudget(suite.T(), v1.BudgetEditable{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	// A budget that is active right now
	suite.createTestBudget(suite.T(), v1.BudgetEditable{
		StartDate: types.Today().FirstOfMonth(),
		EndDate:   types.Today().LastOfMonth(),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 2},
		{"Active", "active=true", 1},
		{"Expired", "expired=true", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.BudgetListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestBudgetsListArchivesExpired verifies that listing budgets sweeps
// ended periods into the archive.
func (suite *TestSuiteStandard) TestBudgetsListArchivesExpired() {
	b := suite.createTestBudget(suite.T(), v1.BudgetEditable{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})
	assert.False(suite.T(), b.Data.Archived)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "", suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.True(suite.T(), response.Data[0].Archived)
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	b := suite.createTestBudget(suite.T(), v1.BudgetEditable{
		Amount:    decimal.NewFromInt(100),
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	r := test.Request(suite.T(), http.MethodPatch, b.Data.Links.Self, v1.BudgetEditable{
		Amount:    decimal.NewFromInt(250),
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
		Archived:  true,
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.Amount.Equal(decimal.NewFromInt(250)))
	assert.True(suite.T(), updated.Data.Archived)
}

func (suite *TestSuiteStandard) TestBudgetsUpdateFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Broken JSON", "", `{ "amount": 2" }`, http.StatusBadRequest},
		{"Non-existing Budget", uuid.New().String(), `{ "amount": 50 }`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.id == "" {
				tt.id = suite.createTestBudget(t, v1.BudgetEditable{}).Data.ID.String()
			}

			r := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), tt.body, suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Budget", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				b := suite.createTestBudget(t, v1.BudgetEditable{})
				tt.id = b.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsRollover() {
	b := suite.createTestBudget(suite.T(), v1.BudgetEditable{
		Amount:    decimal.NewFromInt(500),
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 31),
	})

	r := test.Request(suite.T(), http.MethodPost, b.Data.Links.Rollover, "", suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var rollover v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &rollover)

	require.NotNil(suite.T(), rollover.Data)
	assert.True(suite.T(), rollover.Data.StartDate.Equal(types.NewDate(2024, 2, 1)))
	assert.True(suite.T(), rollover.Data.EndDate.Equal(types.NewDate(2024, 2, 29)))
	assert.True(suite.T(), rollover.Data.Amount.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), rollover.Data.Rollover)
}

func (suite *TestSuiteStandard) TestBudgetsRolloverFails() {
	active := suite.createTestBudget(suite.T(), v1.BudgetEditable{
		StartDate: types.Today().FirstOfMonth(),
		EndDate:   types.Today().LastOfMonth(),
	})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Still active", active.Data.ID.String(), http.StatusBadRequest},
		{"Non-existing Budget", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/budgets/%s/rollover", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestBudgetsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				suite.createTestBudget(t, v1.BudgetEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/budgets", "", suite.ownerHeader())
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.BudgetListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}
