// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler turns request-path errors into the webhook's JSON failure response.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorResponse is the body written for any failed webhook request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError logs err and writes the failure response. It returns the
// normalized error so callers can label metrics with its code.
func (h *ErrorHandler) HandleRequestError(w http.ResponseWriter, r *http.Request, err error) *StandardError {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logger.Error("Request failed", map[string]interface{}{
		"method":        r.Method,
		"path":          r.URL.Path,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
	})

	WriteJSON(w, status, ErrorResponse{Success: false, Error: stdErr.Error()})
	return stdErr
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
