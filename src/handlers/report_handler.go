// backend/src/handlers/report_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/portfolio"
	"github.com/username/brokerledger/backend/src/services"
	"github.com/username/brokerledger/backend/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: service}
}

// requestedFY reads the fy query parameter, defaulting to the current
// financial year.
func requestedFY(r *http.Request) string {
	fy := r.URL.Query().Get("fy")
	if fy == "" {
		return portfolio.CurrentFinancialYear()
	}
	return fy
}

func (h *ReportHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	fy := requestedFY(r)

	data, err := h.reportService.Dashboard(fy)
	if err != nil {
		ctxLogger.Error("Error assembling dashboard", "fy", fy, "error", err)
		utils.SendJSONError(w, "Error assembling dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *ReportHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	data, err := h.reportService.Summary()
	if err != nil {
		ctxLogger.Error("Error assembling summary report", "error", err)
		utils.SendJSONError(w, "Error assembling summary report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *ReportHandler) HandleGetRealized(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	fy := requestedFY(r)

	rows, err := h.reportService.Realized(fy)
	if err != nil {
		ctxLogger.Error("Error assembling realized P&L report", "fy", fy, "error", err)
		utils.SendJSONError(w, "Error assembling realized P&L report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"fy": fy, "rows": rows})
}
