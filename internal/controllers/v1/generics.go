package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// fetchOwnedResource binds the id URI parameter and loads the matching
// resource of the requesting user into resource. On failure the error
// response has already been written and false is returned.
func fetchOwnedResource(c *gin.Context, resource any) bool {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return false
	}

	err = models.DB.Where("user_id = ?", owner(c)).First(resource, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return false
	}

	return true
}

// deleteOwnedResource deletes the resource with the id URI parameter
// if it belongs to the requesting user.
func deleteOwnedResource(c *gin.Context, resource any) {
	if !fetchOwnedResource(c, resource) {
		return
	}

	err := models.DB.Delete(resource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail(c *gin.Context, resource any) {
	if !fetchOwnedResource(c, resource) {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
