package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

// ValidateAndSanitizeStruct binds the request body into a fresh instance of the type of obj,
// sanitizes and validates it and stores it under utils.SanitizedPayloadKey.
// JSON and form bodies are accepted depending on the Content-Type.
func ValidateAndSanitizeStruct(obj interface{}) gin.HandlerFunc {
	payloadType := reflect.TypeOf(obj).Elem()

	return func(c *gin.Context) {
		payload := reflect.New(payloadType).Interface()

		if err := c.ShouldBind(payload); err != nil {
			utils.WriteAndLogError(c, schemas.ValidationFailed.WithDetails(bindingViolations(err)), http.StatusBadRequest, err)
			return
		}

		validator := utils.GetValidator()
		if err := validator.SanitizeData(payload); err != nil {
			utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
			return
		}

		if violations, missingRequired := validator.ValidateStruct(payload); len(violations) > 0 {
			customErr := schemas.ValidationFailed
			if missingRequired {
				customErr = schemas.MissingRequiredField
			}
			utils.WriteAndLogError(c, customErr.WithDetails(violations), http.StatusBadRequest, errors.New("payload invalid"))
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), payload)
		c.Next()
	}
}

// bindingViolations turns decoding errors into field violations where the field is known.
func bindingViolations(err error) []schemas.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []schemas.FieldError{{Field: typeErr.Field, Message: "Field must be of type " + typeErr.Type.String()}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []schemas.FieldError{{Message: "Request body is not valid JSON"}}
	}

	return []schemas.FieldError{{Message: "Request body could not be read"}}
}
