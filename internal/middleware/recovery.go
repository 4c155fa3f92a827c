package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

// Recover turns panics into a 500 response. Outside of production the panic value is exposed in the details.
func Recover(production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := fmt.Errorf("panic: %v", recovered)
		customErr := schemas.InternalServerError
		if !production {
			customErr = customErr.WithDetails(err.Error())
		}
		utils.WriteAndLogError(c, customErr, http.StatusInternalServerError, err)
	})
}
