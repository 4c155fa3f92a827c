package utils

import (
	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/schemas"
)

// WriteAndLogResponse writes the response object as JSON with the provided status code.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the provided error and aborts the request with the error envelope.
func WriteAndLogError(ctx *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	if err != nil {
		LogMessageWithFieldsAndError(ctx, "error", "Error occurred", err)
	}
	LogMessageWithFields(ctx, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	errorDto := &schemas.ErrorDTO{
		Error: *customErr,
	}
	ctx.AbortWithStatusJSON(statusCode, errorDto)
}

// GetAuthenticatedUser returns the user resolved by the authentication middleware.
func GetAuthenticatedUser(ctx *gin.Context) *schemas.User {
	user, ok := ctx.Value(UserKey.String()).(*schemas.User)
	if !ok {
		return nil
	}
	return user
}

// GetSanitizedPayload returns the request body validated by the validation middleware.
func GetSanitizedPayload[T any](ctx *gin.Context) *T {
	payload, ok := ctx.Value(SanitizedPayloadKey.String()).(*T)
	if !ok {
		return nil
	}
	return payload
}
