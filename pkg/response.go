// Package pkg provides shared response types and route constants for the Synopsis API.
package pkg

// Client-facing error messages.
const (
	MsgInternalError   = "Internal server error"
	MsgInvalidID       = "Invalid snippet ID"
	MsgNotFound        = "Snippet not found"
	MsgInvalidJSONBody = "Invalid JSON body"
	MsgBodyTooLarge    = "Request body too large"
	MsgRouteNotFound   = "Not found"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewError wraps a message into an ErrorResponse.
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}
