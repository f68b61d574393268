package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name   string              `json:"name" example:"Groceries" default:""`
	Type   models.CategoryType `json:"type" example:"EXPENSE" default:"EXPENSE"` // EXPENSE or INCOME
	Hidden bool                `json:"hidden" example:"false" default:"false"`   // Hidden categories stay usable but are not offered for new records
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:   editable.Name,
		Type:   editable.Type,
		Hidden: editable.Hidden,
	}
}

type CategoryLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category itself
}

type Category struct {
	models.DefaultModel
	CategoryEditable

	// Shared is computed, system categories are visible to every user
	Shared bool `json:"shared" example:"false"`

	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:   model.Name,
			Type:   model.Type,
			Hidden: model.Hidden,
		},
		Shared: model.UserID == nil,
		Links: CategoryLinks{
			Self: fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
		},
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of Categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
