package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/paratodos/storefront/internal/core/port"
)

type LeadsHandler struct {
	service port.LeadsService
}

func RegisterLeads(mux *http.ServeMux, service port.LeadsService) {
	h := LeadsHandler{service}
	mux.HandleFunc("POST /leads", h.CreateLead)
	mux.HandleFunc("GET /leads/{slug}", h.CountLeads)
}

type createLeadRequest struct {
	ProductID int64 `json:"product_id"`
	StoreID   int64 `json:"store_id"`
}

func (h LeadsHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	const op = "LeadsHandler.CreateLead"
	log := slog.With("op", op)

	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "invalid JSON data"})
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.ProductID == 0 || req.StoreID == 0 {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "product_id and store_id are required"})
		return
	}

	lead, err := h.service.CreateLead(r.Context(), req.ProductID, req.StoreID)
	if err != nil {
		writeError(w, err)
		log.Warn("failed to create lead", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, leadResponse{
		Success: true,
		Message: "lead created",
		LeadID:  lead.ID,
	})
}

func (h LeadsHandler) CountLeads(w http.ResponseWriter, r *http.Request) {
	const op = "LeadsHandler.CountLeads"
	log := slog.With("op", op)

	count, err := h.service.StoreLeadCount(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		log.Warn("failed to count leads", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Success: true, Count: count})
}
