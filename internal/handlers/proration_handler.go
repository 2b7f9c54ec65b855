package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentflow-backend/internal/middleware"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/services"
	"rentflow-backend/pkg/utils"
)

type ProrationHandler struct {
	Service *services.ProrationService
}

func NewProrationHandler(service *services.ProrationService) *ProrationHandler {
	return &ProrationHandler{Service: service}
}

// Preview computes a prorated amount without touching storage.
func (h *ProrationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.ProrationPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Preview(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

func (h *ProrationHandler) UpsertRule(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	var req models.CreateProrationRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule, err := h.Service.UpsertRule(r.Context(), orgID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rule)
}

func (h *ProrationHandler) GetRuleForLease(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	leaseID, err := strconv.ParseInt(mux.Vars(r)["leaseId"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid lease ID")
		return
	}

	rule, err := h.Service.GetRuleForLease(r.Context(), orgID, leaseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rule)
}
