package schemas

// CustomError is the error payload returned to clients.
// Code is a stable identifier, Message a human readable description and Details optional context
// such as the list of validation violations.
type CustomError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// WithDetails returns a copy of the error carrying the given details.
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Details: details}
}

// FieldError describes a single violated field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	// 400
	ValidationFailed        = &CustomError{Code: "ValidationFailed", Message: "Validation failed"}
	MissingRequiredField    = &CustomError{Code: "MissingRequiredField", Message: "All fields are required"}
	UserExists              = &CustomError{Code: "UserExists", Message: "User already exists"}
	EmailInUse              = &CustomError{Code: "EmailInUse", Message: "Email already in use"}
	EmailUnreachable        = &CustomError{Code: "EmailUnreachable", Message: "The email address cannot receive mail"}
	CurrentPasswordRequired = &CustomError{Code: "CurrentPasswordRequired", Message: "Current password is required to change email or password"}
	InvalidResetToken       = &CustomError{Code: "InvalidResetToken", Message: "Invalid or expired token"}
	NoFileUploaded          = &CustomError{Code: "NoFileUploaded", Message: "No file uploaded"}
	FileTooLarge            = &CustomError{Code: "FileTooLarge", Message: "The uploaded file is too large"}
	UnsupportedFileType     = &CustomError{Code: "UnsupportedFileType", Message: "Only image uploads are allowed"}
	BadRequest              = &CustomError{Code: "BadRequest", Message: "The request body is invalid"}

	// 401
	InvalidCredentials       = &CustomError{Code: "InvalidCredentials", Message: "Invalid credentials"}
	CurrentPasswordIncorrect = &CustomError{Code: "CurrentPasswordIncorrect", Message: "Current password is incorrect"}
	NoToken                  = &CustomError{Code: "NoToken", Message: "Not authorized, no token"}
	TokenFailed              = &CustomError{Code: "TokenFailed", Message: "Not authorized, token failed"}
	UserNotFound             = &CustomError{Code: "UserNotFound", Message: "User not found"}

	// 403
	Forbidden = &CustomError{Code: "Forbidden", Message: "Not authorized to access this entry"}

	// 404
	NotFound      = &CustomError{Code: "NotFound", Message: "Entry not found"}
	RouteNotFound = &CustomError{Code: "RouteNotFound", Message: "Route not found"}

	// 429
	TooManyRequests = &CustomError{Code: "TooManyRequests", Message: "Too many requests, please try again later"}

	// 500
	DatabaseError       = &CustomError{Code: "DatabaseError", Message: "A database error occurred"}
	InternalServerError = &CustomError{Code: "InternalServerError", Message: "Internal server error"}
)
