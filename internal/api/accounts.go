package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/swiftship/internal/service"
)

// AccountsHandler handles account administration endpoints (admin only).
type AccountsHandler struct {
	Accounts *service.Accounts
}

type inviteRequest struct {
	Email string `json:"email"`
}

func accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid account id")
		return 0, false
	}
	return id, true
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Accounts.List(r.Context(), GetAccount(r.Context()))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, accounts)
}

// Get handles GET /api/accounts/{id}.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}
	acct, err := h.Accounts.Get(r.Context(), GetAccount(r.Context()), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, acct)
}

// Verify handles POST /api/accounts/{id}/verify.
func (h *AccountsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}
	if err := h.Accounts.Verify(r.Context(), id); err != nil {
		serviceError(w, r, err)
		return
	}

	actor := GetAccount(r.Context())
	slog.Info("account verified by admin", "account_id", id, "by", actor.ID)

	acct, err := h.Accounts.Get(r.Context(), actor, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, acct)
}

// Invite handles POST /api/invitations.
func (h *AccountsHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.Accounts.CreateInvitation(r.Context(), GetAccount(r.Context()), req.Email)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, inv)
}

// Suite handles GET /api/suites/{suite}.
func (h *AccountsHandler) Suite(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Accounts.LookupSuite(r.Context(), GetAccount(r.Context()), r.PathValue("suite"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}
