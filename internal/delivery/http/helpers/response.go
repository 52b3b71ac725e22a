package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Validation map[string]string `json:"validation,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an ErrorResponse with the short message and the specific error text.
func WriteJSONError(w http.ResponseWriter, statusCode int, message, errText string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message, Error: errText})
}

// WriteValidationError writes an ErrorResponse that carries per-field messages.
func WriteValidationError(w http.ResponseWriter, statusCode int, message, errText string, fields map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message, Error: errText, Validation: fields})
}
