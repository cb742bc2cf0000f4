package dto

// ErrorResponse is the standard error body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the standard body for acknowledged operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse creates an error body with just a message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
