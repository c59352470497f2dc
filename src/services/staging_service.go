// backend/src/services/staging_service.go
package services

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/model"
	"github.com/username/brokerledger/backend/src/models"
	"github.com/username/brokerledger/backend/src/parsers/zerodha"
	"github.com/username/brokerledger/backend/src/reconcile"
)

type stagingServiceImpl struct {
	db            *sql.DB
	stagingCache  *cache.Cache
	reportService ReportService
}

// NewStagingService creates the staging service. Staged previews live in
// stagingCache until committed or expired; committing invalidates the report
// service's caches.
func NewStagingService(db *sql.DB, ttl time.Duration, reportService ReportService) StagingService {
	return &stagingServiceImpl{
		db:            db,
		stagingCache:  cache.New(ttl, ttl),
		reportService: reportService,
	}
}

func (s *stagingServiceImpl) Preview(tradebook NamedFile, contracts []NamedFile) (*StagedPreview, error) {
	tradeRows, err := zerodha.ParseTradebook(tradebook.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	var (
		contractTradeRows  []models.ContractTradeRow
		contractChargeRows []models.ContractChargeRow
		warnings           []string
	)
	for _, f := range contracts {
		data, err := zerodha.ParseContractNote(f.Reader, f.Name)
		if err != nil {
			logger.L.Warn("Skipping unreadable contract note", "file", f.Name, "error", err)
			warnings = append(warnings, fmt.Sprintf("could not parse contract note %s", f.Name))
			continue
		}
		if data.Charge != nil && data.Charge.TradeDate == "" {
			warnings = append(warnings, fmt.Sprintf("contract note %s has no recognizable trade date", f.Name))
		}
		contractTradeRows = append(contractTradeRows, data.TradeRows...)
		if data.Charge != nil {
			contractChargeRows = append(contractChargeRows, *data.Charge)
		}
	}

	preview := &StagedPreview{
		StagingID: uuid.New().String(),
		Summary: PreviewSummary{
			TradesCount:              len(tradeRows),
			ContractNotesCount:       len(contracts),
			ContractTradeRowsCount:   len(contractTradeRows),
			ContractChargeRowsCount:  len(contractChargeRows),
			MissingContractNoteDates: missingNoteDates(tradeRows, contractChargeRows),
			Warnings:                 warnings,
		},
		TradeRows:          tradeRows,
		ContractTradeRows:  contractTradeRows,
		ContractChargeRows: contractChargeRows,
		Reconciliation:     reconcile.Reconcile(tradeRows, contractTradeRows, contractChargeRows),
	}

	s.stagingCache.SetDefault(preview.StagingID, preview)
	logger.L.Info("Staged upload preview",
		"stagingID", preview.StagingID,
		"trades", len(tradeRows),
		"contractTradeRows", len(contractTradeRows),
		"chargeRows", len(contractChargeRows))
	return preview, nil
}

func (s *stagingServiceImpl) Commit(stagingID string) (*CommitResult, error) {
	staged, ok := s.stagingCache.Get(stagingID)
	if !ok {
		return nil, ErrStagingNotFound
	}
	preview := staged.(*StagedPreview)

	trades := make([]models.Trade, 0, len(preview.TradeRows))
	for _, r := range preview.TradeRows {
		if !r.Quantity.Valid || r.Quantity.Value <= 0 || !r.Price.Valid {
			logger.L.Warn("Skipping tradebook row with unusable quantity/price", "tradeID", r.TradeID, "symbol", r.Symbol)
			continue
		}
		trades = append(trades, models.Trade{
			TradeID:     r.TradeID,
			Symbol:      r.Symbol,
			Date:        r.Date,
			Type:        r.Type,
			Quantity:    r.Quantity.Value,
			Price:       r.Price.Value,
			GrossAmount: r.Quantity.Value * r.Price.Value,
		})
	}

	inserted, err := model.InsertTrades(s.db, trades)
	if err != nil {
		return nil, fmt.Errorf("committing trades: %w", err)
	}

	notes := 0
	for i := range preview.ContractChargeRows {
		charge := &preview.ContractChargeRows[i]
		if charge.TradeDate == "" {
			continue
		}
		noteKey := reconcile.NoteKeyForCharge(charge)
		if err := model.UpsertContractNote(s.db, noteKey, charge.TradeDate, charge, noteNetTotal(charge)); err != nil {
			return nil, fmt.Errorf("committing contract note: %w", err)
		}
		notes++
	}

	s.stagingCache.Delete(stagingID)
	s.reportService.InvalidateCache()
	logger.L.Info("Committed staged upload", "stagingID", stagingID, "tradesInserted", inserted, "notesUpserted", notes)

	return &CommitResult{
		TradesInserted: inserted,
		NotesUpserted:  notes,
		Message:        fmt.Sprintf("Committed %d trades and %d contract notes.", inserted, notes),
	}, nil
}

// noteNetTotal sums the note's charge components into one signed outflow.
// Components are stored as magnitudes; the total is negative because charges
// leave the account.
func noteNetTotal(c *models.ContractChargeRow) float64 {
	var total float64
	for _, f := range []models.OptFloat{
		reconcile.ChargeBrokerage(c),
		c.ExchangeTxnCharges,
		c.ClearingCharges,
		c.IGST,
		c.CGST,
		c.SGST,
		reconcile.ChargeSEBIFees(c),
		c.StampDuty,
	} {
		if f.Valid {
			total += f.Value
		}
	}
	return -total
}

// missingNoteDates lists tradebook dates with no charge row, ascending.
func missingNoteDates(tradeRows []models.TradebookRow, chargeRows []models.ContractChargeRow) []string {
	covered := make(map[string]bool, len(chargeRows))
	for _, c := range chargeRows {
		covered[c.TradeDate] = true
	}
	seen := make(map[string]bool)
	missing := make([]string, 0)
	for _, t := range tradeRows {
		if t.Date == "" || covered[t.Date] || seen[t.Date] {
			continue
		}
		seen[t.Date] = true
		missing = append(missing, t.Date)
	}
	sort.Strings(missing)
	return missing
}
