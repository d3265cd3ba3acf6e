package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

type ServiceAPI interface {
	Register(dto CredentialsDTO) error
	Authenticate(dto CredentialsDTO) (*TokenResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	if err := h.Service.Register(dto); err != nil {
		switch err {
		case ErrMissingCredentials:
			h.WriteError(w, r, http.StatusBadRequest, err.Error())
		case ErrUsernameTaken:
			h.WriteError(w, r, http.StatusConflict, "Username already exists")
		default:
			h.Logger.Error("registration failed", "error", err)
			h.WriteError(w, r, http.StatusInternalServerError, "Unexpected error")
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "User registered"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		switch err {
		case ErrMissingCredentials:
			h.WriteError(w, r, http.StatusBadRequest, err.Error())
		case ErrInvalidCredentials:
			h.WriteError(w, r, http.StatusUnauthorized, "Invalid username or password")
		default:
			h.Logger.Error("authentication failed", "error", err)
			h.WriteError(w, r, http.StatusInternalServerError, "Unexpected error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// AuthMiddleware enforces a valid bearer token and puts the caller's
// username on the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, r, http.StatusUnauthorized, "Missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.WriteError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := internal.ContextWithUsername(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
