package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentflow-backend/internal/middleware"
	"rentflow-backend/internal/services"
	"rentflow-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// RentRoll returns the current rent roll for the org as JSON.
func (h *ReportHandler) RentRoll(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	rows, err := h.Service.GetRentRollData(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rows)
}

// RentRollPDF streams the current rent roll for the org as a PDF.
func (h *ReportHandler) RentRollPDF(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.GetOrgIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Org not found in context")
		return
	}

	rows, err := h.Service.GetRentRollData(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pdf, err := h.Service.GenerateRentRollPDF(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("rent-roll-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *ReportHandler) LeaseStatementPDF(w http.ResponseWriter, r *http.Request) {
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

	pdf, err := h.Service.GenerateLeaseStatementPDF(r.Context(), orgID, leaseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("lease-%d-statement.pdf", leaseID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *ReportHandler) LedgerCSV(w http.ResponseWriter, r *http.Request) {
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

	csvData, err := h.Service.ExportLedgerCSV(r.Context(), orgID, leaseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("lease-%d-ledger.csv", leaseID)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(csvData)
}
