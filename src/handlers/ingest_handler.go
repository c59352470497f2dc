// backend/src/handlers/ingest_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/username/brokerledger/backend/src/config"
	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/services"
	"github.com/username/brokerledger/backend/src/utils"
)

type IngestHandler struct {
	stagingService services.StagingService
}

func NewIngestHandler(service services.StagingService) *IngestHandler {
	return &IngestHandler{stagingService: service}
}

// HandleIngestPreview parses the uploaded tradebook and contract notes,
// reconciles them, and stages the result for a later commit. Nothing is
// written to the database here.
func (h *IngestHandler) HandleIngestPreview(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or it is too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	tradebookFile, tradebookHeader, err := r.FormFile("tradebook")
	if err != nil {
		ctxLogger.Warn("Upload request missing 'tradebook' file", "error", err)
		utils.SendJSONError(w, "Tradebook CSV is required. Ensure the 'tradebook' field is used.", http.StatusBadRequest)
		return
	}
	defer tradebookFile.Close()

	var contracts []services.NamedFile
	var openFiles []io.Closer
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()
	for _, header := range r.MultipartForm.File["contracts"] {
		f, err := header.Open()
		if err != nil {
			ctxLogger.Warn("Failed to open uploaded contract note", "file", header.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Failed to read contract note %s", header.Filename), http.StatusBadRequest)
			return
		}
		openFiles = append(openFiles, f)
		contracts = append(contracts, services.NamedFile{Name: header.Filename, Reader: f})
	}

	ctxLogger.Info("Received ingest preview request",
		"tradebook", tradebookHeader.Filename,
		"contractNotes", len(contracts))

	preview, err := h.stagingService.Preview(
		services.NamedFile{Name: tradebookHeader.Filename, Reader: tradebookFile},
		contracts,
	)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			ctxLogger.Warn("Tradebook parsing failed", "file", tradebookHeader.Filename, "error", err)
			utils.SendJSONError(w, "Could not parse the tradebook CSV. Check the file format.", http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Error staging upload preview", "error", err)
		utils.SendJSONError(w, "Error processing uploaded files", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preview)
}

// HandleIngestCommit persists a previously staged preview.
func (h *IngestHandler) HandleIngestCommit(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var payload struct {
		StagingID string `json:"staging_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.StagingID == "" {
		utils.SendJSONError(w, "staging_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.stagingService.Commit(payload.StagingID)
	if err != nil {
		if errors.Is(err, services.ErrStagingNotFound) {
			ctxLogger.Warn("Commit requested for unknown or expired staging", "stagingID", payload.StagingID)
			utils.SendJSONError(w, "Staged preview not found or expired. Upload the files again.", http.StatusNotFound)
			return
		}
		ctxLogger.Error("Error committing staged upload", "stagingID", payload.StagingID, "error", err)
		utils.SendJSONError(w, "Error committing staged upload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
