package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{})
	_ = suite.createTestExpense(suite.T(), v1.TransactionEditable{})
	_ = suite.createTestIncome(suite.T(), v1.TransactionEditable{})
	_ = suite.createTestSavingGoal(suite.T(), v1.SavingGoalEditable{})

	tests := []string{"budgets", "categories", "expenses", "incomes", "saving-goals"}

	// The cleanup does not act for a user, it wipes the whole instance
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	for _, r := range tests {
		suite.T().Run(r, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "http://example.com/v1/"+r, "", suite.ownerHeader())
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", r)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"no confirmation", ""},
		{"wrong confirmation", "?confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, "http://example.com/v1"+tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.NotEmpty(suite.T(), response.Error)
}

// Verify that the cleanup only leaves the schema in place, system
// categories included.
func (suite *TestSuiteStandard) TestCleanupShared() {
	shared := models.Category{Name: "Everyone", Type: models.CategoryTypeExpense}
	suite.Require().Nil(models.DB.Create(&shared).Error)

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
