package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

const bearerPrefix = "Bearer "

// Authenticate resolves the acting user from the bearer token of the request.
// A missing or malformed header fails with NoToken, an invalid or expired token with TokenFailed
// and a token of a user that no longer exists with UserNotFound.
func Authenticate(jwtMgr managers.JWTMgr, databaseMgr managers.DatabaseMgr) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) || strings.TrimSpace(header[len(bearerPrefix):]) == "" {
			utils.WriteAndLogError(c, schemas.NoToken, http.StatusUnauthorized, errors.New("no bearer token"))
			return
		}

		claims, err := jwtMgr.ValidateJWT(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			utils.LogMessageWithFieldsAndError(c, "debug", "Token rejected", err)
			utils.WriteAndLogError(c, schemas.TokenFailed, http.StatusUnauthorized, err)
			return
		}

		userId, err := jwtMgr.ExtractUserId(claims)
		if err == nil {
			_, err = uuid.Parse(userId)
		}
		if err != nil {
			utils.WriteAndLogError(c, schemas.TokenFailed, http.StatusUnauthorized, err)
			return
		}

		user, err := utils.FindUserById(c, databaseMgr.GetPool(), userId)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusUnauthorized, err)
				return
			}
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}

		c.Set(utils.ClaimsKey.String(), claims)
		c.Set(utils.UserKey.String(), user)
		c.Next()
	}
}
