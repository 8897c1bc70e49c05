package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
)

// UnavailableWarning is the message sent with every WARNING roster outcome.
const UnavailableWarning = "Some allocated staff are not available on this day"

// Response is the envelope of every JSON reply. Outcome is set only by roster
// changes, which report whether the day now holds unavailable staff.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Outcome roster.Outcome `json:"outcome,omitempty"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "status", statusCode, "error", err)
	}
}

func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// RosterOutcome replies to a template apply or an ad hoc day edit. A WARNING
// outcome swaps message for UnavailableWarning; the change itself was saved.
func RosterOutcome(w http.ResponseWriter, statusCode int, outcome roster.Outcome, message string, data interface{}) {
	if outcome == roster.OutcomeWarning {
		message = UnavailableWarning
	}
	writeJSON(w, statusCode, Response{Success: true, Message: message, Outcome: outcome, Data: data})
}

func errorJSON(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, Response{
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	errorJSON(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	errorJSON(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// Conflict covers duplicates and concurrent writers losing a uniqueness race;
// the client may retry after reloading.
func Conflict(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusConflict, "CONFLICT", message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	errorJSON(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}
