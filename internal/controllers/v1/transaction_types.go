package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters of
// expenses and incomes. Both record types share the same field set.
type TransactionEditable struct {
	CategoryID  uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Amount      decimal.Decimal `json:"amount" example:"14.99" minimum:"0.00000001" maximum:"999999999999"`
	Date        types.Date      `json:"date" example:"2024-01-17"` // Day the record is booked on. Defaults to the current day
	Description string          `json:"description" example:"Groceries at the corner store" default:""`
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expenses/3b1ea324-d438-4419-882a-2fc91d71772f"` // The record itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable

	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, resource string, model models.DefaultModel, editable TransactionEditable) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel:        model,
		TransactionEditable: editable,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/%s/%s", url, resource, model.ID),
		},
	}
}

func newExpense(c *gin.Context, model models.Expense) Transaction {
	return newTransaction(c, "expenses", model.DefaultModel, TransactionEditable{
		CategoryID:  model.CategoryID,
		Amount:      model.Amount,
		Date:        model.Date,
		Description: model.Description,
	})
}

func newIncome(c *gin.Context, model models.Income) Transaction {
	return newTransaction(c, "incomes", model.DefaultModel, TransactionEditable{
		CategoryID:  model.CategoryID,
		Amount:      model.Amount,
		Date:        model.Date,
		Description: model.Description,
	})
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the record
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                          // List of records
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
