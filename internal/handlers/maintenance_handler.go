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

type MaintenanceHandler struct {
	Service *services.MaintenanceService
}

func NewMaintenanceHandler(service *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{Service: service}
}

func (h *MaintenanceHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	var req models.CreateMaintenanceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mr, err := h.Service.CreateRequest(r.Context(), orgID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, mr)
}

func (h *MaintenanceHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	mr, err := h.Service.GetRequest(r.Context(), orgID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, mr)
}

func (h *MaintenanceHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	var leaseID int64
	if raw := r.URL.Query().Get("lease_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid lease_id filter")
			return
		}
		leaseID = parsed
	}
	status := r.URL.Query().Get("status")

	requests, err := h.Service.ListRequests(r.Context(), orgID, leaseID, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, requests)
}

func (h *MaintenanceHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req models.UpdateMaintenanceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mr, err := h.Service.UpdateRequest(r.Context(), orgID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, mr)
}

func (h *MaintenanceHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	var req models.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vendor, err := h.Service.CreateVendor(r.Context(), orgID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, vendor)
}

func (h *MaintenanceHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	vendors, err := h.Service.ListVendors(r.Context(), orgID, activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, vendors)
}

func (h *MaintenanceHandler) SetVendorActive(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.SetVendorActive(r.Context(), orgID, id, req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
