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

type LeaseHandler struct {
	Service *services.LeaseService
}

func NewLeaseHandler(service *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{Service: service}
}

func (h *LeaseHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	var req models.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lease, err := h.Service.CreateLease(r.Context(), orgID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, lease)
}

func (h *LeaseHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid lease ID")
		return
	}

	lease, err := h.Service.GetLease(r.Context(), orgID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) ListLeases(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	leases, err := h.Service.ListLeases(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, leases)
}

func (h *LeaseHandler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid lease ID")
		return
	}

	var req models.UpdateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lease, err := h.Service.UpdateLease(r.Context(), orgID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, lease)
}
