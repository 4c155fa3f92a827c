package schemas

// ErrorDTO is a struct that represents an error response
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// MessageDTO is a struct that represents a plain confirmation message
type MessageDTO struct {
	Message string `json:"message"`
}

// AuthDTO is returned on registration and login
// Token is the signed session token valid for one hour
type AuthDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// ProfileUpdatedDTO is returned after a successful profile change
type ProfileUpdatedDTO struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// PageMetadata describes the page of a paginated list
// Page is 1-indexed, TotalPages is ceil(Total / Limit)
type PageMetadata struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// WeightPageDTO is a page of weight entries
type WeightPageDTO struct {
	Weights []*WeightEntry `json:"weights"`
	PageMetadata
}

// ActivityPageDTO is a page of activity entries
type ActivityPageDTO struct {
	Activities []*ActivityEntry `json:"activities"`
	PageMetadata
}

// ProgressPhotoUploadedDTO is returned after a successful photo upload
type ProgressPhotoUploadedDTO struct {
	Message       string         `json:"message"`
	ProgressPhoto *ProgressPhoto `json:"progressPhoto"`
}

// HealthDTO is returned by the health route
// Uptime is given in seconds
type HealthDTO struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Database  string  `json:"database"`
}

// MetadataDTO is returned by the root route
type MetadataDTO struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// RouteNotFoundDTO extends the error envelope with the requested path
type RouteNotFoundDTO struct {
	Error CustomError `json:"error"`
	Path  string      `json:"path"`
}
