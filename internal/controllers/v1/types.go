package v1

import (
	ct_uuid "github.com/centsible/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/centsible/backend/internal/models"
)

type URIID struct {
	ID ct_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// ReportQuery is the date range every report endpoint accepts.
type ReportQuery struct {
	From string `form:"from" example:"2024-01-01"` // Start of the report range
	To   string `form:"to" example:"2024-01-31"`   // End of the report range
}

// owner returns the user the request acts for. The middleware
// guarantees it is set for everything routed below /v1.
func owner(c *gin.Context) uuid.UUID {
	return c.MustGet(string(models.ContextOwner)).(uuid.UUID)
}
