// controllers/place.go
package controllers

import (
	"net/http"

	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetPlace looks a business up by place id or free-text query so the
// CRM can fill in the tenant's review link during settings setup.
func GetPlace(c *gin.Context) {
	if _, ok := tenantFromContext(c); !ok {
		return
	}

	placeID := c.Query("placeId")
	query := c.Query("query")

	switch {
	case placeID != "":
		result, err := Places.LookupByID(placeID)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	case query != "":
		result, err := Places.Search(query)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	default:
		utils.HandleError(c, &utils.ValidationError{Message: "placeId or query is required"})
	}
}
