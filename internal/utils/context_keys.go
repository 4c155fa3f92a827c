package utils

// contextKey is a type used for context keys to avoid conflicts with other packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// ClaimsKey stores the verified JWT claims of the request.
var ClaimsKey = &contextKey{"claims"}

// UserKey stores the *schemas.User resolved by the authentication middleware.
var UserKey = &contextKey{"user"}

var TraceIdKey = &contextKey{"traceId"}
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}
