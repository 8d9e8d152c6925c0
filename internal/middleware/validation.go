package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cycle-nutrition/server/internal/schemas"
	"github.com/cycle-nutrition/server/internal/utils"
	"github.com/cycle-nutrition/server/internal/validators"
)

// ValidateAndSanitizeStruct binds the JSON body into obj, strips any markup
// from its string fields and runs the struct validators. The sanitized
// payload lands in the context for the handler to pick up.
func ValidateAndSanitizeStruct(obj interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.ShouldBindJSON(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		validator := validators.GetValidator()
		if err := validator.SanitizeData(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		if err := validator.Validate.Struct(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), obj)
		c.Next()
	}
}
