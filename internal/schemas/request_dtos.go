package schemas

import "strings"

// RegistrationRequest is a struct that represents a registration request
// Email is required, lowercased and must be a valid email
// Password is required, 8 characters to 72 bytes long, with mixed character classes
type RegistrationRequest struct {
	Email     string `json:"email" sanitize:"trim,lower" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max_bytes=72,password_validation"`
	FirstName string `json:"firstName" sanitize:"trim,html" validate:"max=50"`
	LastName  string `json:"lastName" sanitize:"trim,html" validate:"max=50"`
}

// LoginRequest is a struct that represents a login request
// Password is only checked for presence, the strength rule does not apply to logins
type LoginRequest struct {
	Email    string `json:"email" sanitize:"trim,lower" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest is a struct that represents a request for a password reset link
type ForgotPasswordRequest struct {
	Email string `json:"email" sanitize:"trim,lower" validate:"required,email"`
}

// ResetPasswordRequest is a struct that represents a password reset with a mailed token
type ResetPasswordRequest struct {
	Email       string `json:"email" sanitize:"trim,lower" validate:"required,email"`
	Token       string `json:"token" sanitize:"trim" validate:"required,hexadecimal,len=64"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max_bytes=72,password_validation"`
}

// UpdateProfileRequest is a struct that represents a profile change, sent either as JSON or multipart form
// Changing Email or NewPassword requires CurrentPassword, a null GoalWeight clears the goal
type UpdateProfileRequest struct {
	Email           *string           `json:"email" form:"email" sanitize:"trim,lower" validate:"omitempty,email"`
	FirstName       *string           `json:"firstName" form:"firstName" sanitize:"trim,html" validate:"omitempty,max=50"`
	LastName        *string           `json:"lastName" form:"lastName" sanitize:"trim,html" validate:"omitempty,max=50"`
	GoalWeight      Optional[float64] `json:"goalWeight" form:"goalWeight" validate:"omitempty,min=0,max=1000"`
	GoalUnit        *string           `json:"goalUnit" form:"goalUnit" sanitize:"trim" validate:"omitempty,oneof=kg lbs"`
	CurrentPassword *string           `json:"currentPassword" form:"currentPassword"`
	NewPassword     *string           `json:"newPassword" form:"newPassword" validate:"omitempty,min=8,max_bytes=72,password_validation"`
}

// WeightRequest is a struct that represents the creation of a weight entry
// Weight is required and must lie within [0, 1000]
// Unit defaults to kg, Date defaults to the current time
type WeightRequest struct {
	Weight *float64 `json:"weight" validate:"required,min=0,max=1000"`
	Unit   string   `json:"unit" sanitize:"trim" validate:"omitempty,oneof=kg lbs"`
	Date   string   `json:"date" sanitize:"trim" validate:"omitempty,iso_date"`
	Notes  string   `json:"notes" sanitize:"trim,html" validate:"max=500"`
}

// WeightUpdateRequest is a partial update of a weight entry, absent fields are left untouched
type WeightUpdateRequest struct {
	Weight Optional[float64] `json:"weight" validate:"omitempty,min=0,max=1000"`
	Unit   Optional[string]  `json:"unit" sanitize:"trim" validate:"omitempty,oneof=kg lbs"`
	Date   Optional[string]  `json:"date" sanitize:"trim" validate:"omitempty,iso_date"`
	Notes  Optional[string]  `json:"notes" sanitize:"trim,html" validate:"omitempty,max=500"`
}

// Validate rejects clearing the mandatory weight field.
func (r *WeightUpdateRequest) Validate() []FieldError {
	if r.Weight.Null {
		return []FieldError{{Field: "weight", Message: "Weight is required"}}
	}
	return nil
}

// ActivityRequest is a struct that represents the creation of an activity entry
// Type and Duration are required, Unit defaults to minutes and CaloriesBurned to 0
type ActivityRequest struct {
	Type           string   `json:"type" sanitize:"trim,html" validate:"required,max=100"`
	Duration       *float64 `json:"duration" validate:"required,min=0,max=1440"`
	Unit           string   `json:"unit" sanitize:"trim" validate:"omitempty,oneof=minutes hours"`
	CaloriesBurned *float64 `json:"caloriesBurned" validate:"omitempty,min=0,max=10000"`
	Date           string   `json:"date" sanitize:"trim" validate:"omitempty,iso_date"`
	Notes          string   `json:"notes" sanitize:"trim,html" validate:"max=500"`
}

// ActivityUpdateRequest is a partial update of an activity entry, absent fields are left untouched
type ActivityUpdateRequest struct {
	Type           Optional[string]  `json:"type" sanitize:"trim,html" validate:"omitempty,max=100"`
	Duration       Optional[float64] `json:"duration" validate:"omitempty,min=0,max=1440"`
	Unit           Optional[string]  `json:"unit" sanitize:"trim" validate:"omitempty,oneof=minutes hours"`
	CaloriesBurned Optional[float64] `json:"caloriesBurned" validate:"omitempty,min=0,max=10000"`
	Date           Optional[string]  `json:"date" sanitize:"trim" validate:"omitempty,iso_date"`
	Notes          Optional[string]  `json:"notes" sanitize:"trim,html" validate:"omitempty,max=500"`
}

// Validate rejects clearing the mandatory type and duration fields.
func (r *ActivityUpdateRequest) Validate() []FieldError {
	var violations []FieldError
	if r.Type.Set && strings.TrimSpace(r.Type.Value) == "" {
		violations = append(violations, FieldError{Field: "type", Message: "Type is required"})
	}
	if r.Duration.Null {
		violations = append(violations, FieldError{Field: "duration", Message: "Duration is required"})
	}
	return violations
}

// ProgressPhotoRequest holds the text fields of a multipart progress photo upload
type ProgressPhotoRequest struct {
	Caption string `form:"caption" sanitize:"trim,html" validate:"max=200"`
	Date    string `form:"date" sanitize:"trim" validate:"omitempty,iso_date"`
}
