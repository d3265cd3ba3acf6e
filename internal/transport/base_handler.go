package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

// ErrorResponse is the wire shape for every failure the API emits.
type ErrorResponse struct {
	Status  int                   `json:"status"`
	Message string                `json:"message"`
	Path    string                `json:"path"`
	Errors  []internal.FieldError `json:"errors,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error body with the request path filled in.
func (h *BaseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, message string, fields ...internal.FieldError) {
	h.Logger.Warn("http error", "status", status, "message", message, "path", r.URL.Path)
	h.WriteJSON(w, status, ErrorResponse{
		Status:  status,
		Message: message,
		Path:    r.URL.Path,
		Errors:  fields,
	})
}

// HandleServiceError maps a service failure onto the error body. Typed
// AppErrors pass through with their own status; anything else is an
// opaque 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, r, appErr.StatusCode, appErr.Message, appErr.Fields...)
		return
	}

	h.Logger.Error("unexpected service error", "error", err, "path", r.URL.Path)
	h.WriteError(w, r, http.StatusInternalServerError, "Unexpected error")
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
