package api

import (
	"log/slog"
	"net/http"

	"github.com/fennwick/libris-api/internal/api/shared"
	"github.com/fennwick/libris-api/internal/service"
)

// AuthHandler handles account registration and login requests.
type AuthHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService service.AccountService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		accountService: accountService,
		logger:         logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}

	user, err := h.accountService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

// Login handles POST /api/auth/login.
//
// Unknown email and wrong password produce the same response so the
// endpoint does not leak which accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}

	user, err := h.accountService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}
