package api

import (
	"net/http"

	"github.com/erazemk/swiftship/internal/rates"
	"github.com/erazemk/swiftship/internal/service"
)

// RatesHandler serves the tariff and the estimator.
type RatesHandler struct {
	Rates *service.Rates
}

type ratesResponse struct {
	rates.Config
	Categories []string `json:"categories"`
}

// Get handles GET /api/rates.
func (h *RatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Rates.Current(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, ratesResponse{Config: cfg, Categories: cfg.Categories()})
}

// Update handles PUT /api/rates.
func (h *RatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req rates.Config
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.Rates.Update(r.Context(), GetAccount(r.Context()), req)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, ratesResponse{Config: cfg, Categories: cfg.Categories()})
}

// Estimate handles POST /api/rates/estimate.
func (h *RatesHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req rates.Input
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.Rates.Estimate(r.Context(), req)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, q)
}
