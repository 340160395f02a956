package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erazemk/swiftship/internal/imaging"
	"github.com/erazemk/swiftship/internal/service"
)

// PackagesHandler handles package ledger endpoints.
type PackagesHandler struct {
	Ledger *service.Ledger
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func packageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid package id")
		return 0, false
	}
	return id, true
}

// List handles GET /api/packages[?active=true].
func (h *PackagesHandler) List(w http.ResponseWriter, r *http.Request) {
	active, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	packages, err := h.Ledger.ListFor(r.Context(), GetAccount(r.Context()), service.ListOptions{ActiveOnly: active})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, packages)
}

// Create handles POST /api/packages (pre-alert).
func (h *PackagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.PreAlertInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.Ledger.PreAlert(r.Context(), GetAccount(r.Context()), req)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, pkg)
}

// Get handles GET /api/packages/{id}.
func (h *PackagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}
	pkg, err := h.Ledger.Get(r.Context(), GetAccount(r.Context()), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, pkg)
}

// History handles GET /api/packages/{id}/history.
func (h *PackagesHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}
	events, err := h.Ledger.History(r.Context(), GetAccount(r.Context()), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, events)
}

// UpdateStatus handles PUT /api/packages/{id}/status.
func (h *PackagesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.Ledger.UpdateStatus(r.Context(), GetAccount(r.Context()), id, req.Status)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, pkg)
}

// UploadPhoto handles PUT /api/packages/{id}/photo (multipart field "photo").
func (h *PackagesHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "photo too large")
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	pkg, err := h.Ledger.SetPhoto(r.Context(), GetAccount(r.Context()), id, file)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, pkg)
}

// GetPhoto handles GET /api/packages/{id}/photo[?size=thumb].
func (h *PackagesHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}

	thumb := r.URL.Query().Get("size") == "thumb"
	data, mime, err := h.Ledger.Photo(r.Context(), GetAccount(r.Context()), id, thumb)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// Track handles GET /api/track?q=, the public tracking lookup.
func (h *PackagesHandler) Track(w http.ResponseWriter, r *http.Request) {
	view, err := h.Ledger.FindByTracking(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}
