package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/swiftship/internal/auth"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/service"
	"github.com/erazemk/swiftship/internal/store"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
	Accounts  *service.Accounts
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string         `json:"token"`
	Account *model.Account `json:"account"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := h.Accounts.Register(r.Context(), req)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, acct.ID, acct.Email, acct.Role)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	jsonResponse(w, http.StatusCreated, sessionResponse{Token: token, Account: acct})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	acct, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr, "error", err)
		serviceError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, acct.ID, acct.Email, acct.Role)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("account logged in", "account_id", acct.ID, "role", acct.Role)
	jsonResponse(w, http.StatusOK, sessionResponse{Token: token, Account: acct})
}

// Verify handles GET /api/auth/verify?token=, the emailed confirmation link.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		jsonError(w, http.StatusBadRequest, "token required")
		return
	}

	acct, err := h.Accounts.VerifyToken(r.Context(), token)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, acct)
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	slog.Info("account logged out", "account_id", claims.AccountID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		jsonError(w, http.StatusBadRequest, "current and new password required")
		return
	}

	if err := h.Accounts.ChangePassword(r.Context(), GetAccount(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}
