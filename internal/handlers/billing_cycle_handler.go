package handlers

import (
	"net/http"
	"time"

	"rentflow-backend/internal/middleware"
	"rentflow-backend/internal/services"
	"rentflow-backend/pkg/utils"
)

type BillingCycleHandler struct {
	Service *services.BillingCycleService
}

func NewBillingCycleHandler(service *services.BillingCycleService) *BillingCycleHandler {
	return &BillingCycleHandler{Service: service}
}

// RunNow triggers the daily billing cycle for the caller's org outside the
// cron window. Admin only; useful after backfilling schedules or rules.
func (h *BillingCycleHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	if err := h.Service.RunOrg(r.Context(), orgID, time.Now().UTC()); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "completed"})
}
