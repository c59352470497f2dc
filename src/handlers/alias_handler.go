// backend/src/handlers/alias_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/model"
	"github.com/username/brokerledger/backend/src/models"
	"github.com/username/brokerledger/backend/src/services"
	"github.com/username/brokerledger/backend/src/utils"
)

type AliasHandler struct {
	db            *sql.DB
	reportService services.ReportService
}

func NewAliasHandler(db *sql.DB, reportService services.ReportService) *AliasHandler {
	return &AliasHandler{db: db, reportService: reportService}
}

func (h *AliasHandler) HandleGetAliases(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	aliases, err := model.GetAliases(h.db)
	if err != nil {
		ctxLogger.Error("Error loading symbol aliases", "error", err)
		utils.SendJSONError(w, "Error loading symbol aliases", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"aliases": aliases})
}

// HandleSaveAliases upserts ticker aliases and invalidates cached reports so
// the next dashboard request retries price lookups with the new mappings.
func (h *AliasHandler) HandleSaveAliases(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var payload struct {
		Aliases []models.SymbolAlias `json:"aliases"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid alias payload", http.StatusBadRequest)
		return
	}
	if len(payload.Aliases) == 0 {
		utils.SendJSONError(w, "At least one alias is required", http.StatusBadRequest)
		return
	}

	if err := model.UpsertAliases(h.db, payload.Aliases); err != nil {
		ctxLogger.Error("Error saving symbol aliases", "error", err)
		utils.SendJSONError(w, "Error saving symbol aliases", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateCache()

	ctxLogger.Info("Saved symbol aliases", "count", len(payload.Aliases))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Aliases saved."})
}
