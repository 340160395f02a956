package api

import (
	"net/http"

	"github.com/erazemk/swiftship/internal/service"
)

// MeHandler serves the authenticated account's own profile.
type MeHandler struct {
	Accounts *service.Accounts
}

// Get handles GET /api/me.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, GetAccount(r.Context()))
}

// Address handles GET /api/me/address.
func (h *MeHandler) Address(w http.ResponseWriter, r *http.Request) {
	addr, err := h.Accounts.MailingAddress(GetAccount(r.Context()))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, addr)
}

// ResendVerification handles POST /api/me/verification. Delivery failure is
// reported in the body, never as an error status.
func (h *MeHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	sent := h.Accounts.ResendVerification(r.Context(), GetAccount(r.Context()))
	jsonResponse(w, http.StatusOK, map[string]bool{"sent": sent})
}
