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

type LateFeeRuleHandler struct {
	Service       *services.LateFeeRuleService
	LedgerService *services.RentLedgerService
}

func NewLateFeeRuleHandler(service *services.LateFeeRuleService, ledgerService *services.RentLedgerService) *LateFeeRuleHandler {
	return &LateFeeRuleHandler{Service: service, LedgerService: ledgerService}
}

func (h *LateFeeRuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	var rule models.LateFeeRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.CreateRule(r.Context(), orgID, &rule)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, created)
}

func (h *LateFeeRuleHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	rule, err := h.Service.GetRule(r.Context(), orgID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rule)
}

func (h *LateFeeRuleHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	rules, err := h.Service.ListRules(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rules)
}

func (h *LateFeeRuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	var rule models.LateFeeRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rule.ID = id

	updated, err := h.Service.UpdateRule(r.Context(), orgID, &rule)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

// ResolveForLease returns the rule the late-fee sweep would apply to the
// lease: a lease-specific rule when one exists, otherwise the org default.
func (h *LateFeeRuleHandler) ResolveForLease(w http.ResponseWriter, r *http.Request) {
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

	rule, err := h.LedgerService.ResolveRuleForLease(r.Context(), orgID, leaseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rule)
}
