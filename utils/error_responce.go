package utils

// ErrorResponse is the JSON body returned on every error path.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
