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

// TestExpensesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestExpensesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Expense with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Expense exists", suite.createTestExpense(suite.T(), v1.TransactionEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/expenses/%s", tt.id)
			r := test.Request(t, http.MethodOptions, path, "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesCreate() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	expense := suite.createTestExpense(suite.T(), v1.TransactionEditable{
		CategoryID:  category.Data.ID,
		Amount:      decimal.NewFromFloat(14.99),
		Date:        types.NewDate(2024, 1, 17),
		Description: "Groceries at the corner store",
	})

	require.NotNil(suite.T(), expense.Data)
	assert.True(suite.T(), expense.Data.Amount.Equal(decimal.NewFromFloat(14.99)))
	assert.True(suite.T(), expense.Data.Date.Equal(types.NewDate(2024, 1, 17)))
	assert.Equal(suite.T(), "Groceries at the corner store", expense.Data.Description)
	assert.Contains(suite.T(), expense.Data.Links.Self, "/v1/expenses/")
}

// TestExpensesCreateDateDefault verifies that expenses without a date
// are booked on the current day.
func (suite *TestSuiteStandard) TestExpensesCreateDateDefault() {
	expense := suite.createTestExpense(suite.T(), v1.TransactionEditable{})

	require.NotNil(suite.T(), expense.Data)
	assert.True(suite.T(), expense.Data.Date.Equal(types.Today()))
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `{ "amount": "broken" }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{
			"Non-existing category",
			map[string]any{"categoryId": uuid.New().String(), "amount": 10},
			http.StatusNotFound,
		},
		{
			"Negative amount",
			map[string]any{"categoryId": category.Data.ID.String(), "amount": -10},
			http.StatusBadRequest,
		},
		{
			"Zero amount",
			map[string]any{"categoryId": category.Data.ID.String()},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/expenses", tt.body, suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestIncomesCreate verifies that the income endpoints mirror the
// expense endpoints.
func (suite *TestSuiteStandard) TestIncomesCreate() {
	income := suite.createTestIncome(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromInt(2000),
		Date:   types.NewDate(2024, 1, 1),
	})

	require.NotNil(suite.T(), income.Data)
	assert.True(suite.T(), income.Data.Amount.Equal(decimal.NewFromInt(2000)))
	assert.Contains(suite.T(), income.Data.Links.Self, "/v1/incomes/")
}

// TestTransactionsGetSorted verifies that records are returned newest
// first.
func (suite *TestSuiteStandard) TestTransactionsGetSorted() {
	first := suite.createTestExpense(suite.T(), v1.TransactionEditable{Date: types.NewDate(2024, 1, 10)})
	second := suite.createTestExpense(suite.T(), v1.TransactionEditable{Date: types.NewDate(2024, 3, 1)})
	third := suite.createTestExpense(suite.T(), v1.TransactionEditable{Date: types.NewDate(2024, 2, 1)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", "", suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), second.Data.ID, response.Data[0].ID)
	assert.Equal(suite.T(), third.Data.ID, response.Data[1].ID)
	assert.Equal(suite.T(), first.Data.ID, response.Data[2].ID)
}

// TestTransactionsOwnerIsolation verifies that users only ever see
// their own records.
func (suite *TestSuiteStandard) TestTransactionsOwnerIsolation() {
	expense := suite.createTestExpense(suite.T(), v1.TransactionEditable{})

	otherUser := map[string]string{"X-User-ID": uuid.New().String()}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", "", otherUser)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)

	r = test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "", otherUser)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesGetSingle() {
	e := suite.createTestExpense(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Expense", e.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/expenses/%s", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	expense := suite.createTestExpense(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromInt(10),
		Date:   types.NewDate(2024, 1, 17),
	})

	r := test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, v1.TransactionEditable{
		CategoryID:  expense.Data.CategoryID,
		Amount:      decimal.NewFromInt(25),
		Date:        types.NewDate(2024, 1, 18),
		Description: "Corrected",
	}, suite.ownerHeader())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.Amount.Equal(decimal.NewFromInt(25)))
	assert.True(suite.T(), updated.Data.Date.Equal(types.NewDate(2024, 1, 18)))
	assert.Equal(suite.T(), "Corrected", updated.Data.Description)
}

func (suite *TestSuiteStandard) TestIncomesDelete() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Income", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				i := suite.createTestIncome(t, v1.TransactionEditable{})
				tt.id = i.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/incomes/%s", tt.id), "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestExpensesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestExpensesDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/expenses", "", suite.ownerHeader())
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.TransactionListResponse
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
