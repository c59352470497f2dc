// backend/src/services/interfaces.go
package services

import (
	"errors"
	"io"

	"github.com/username/brokerledger/backend/src/models"
	"github.com/username/brokerledger/backend/src/reconcile"
)

// Define common service errors
var (
	ErrParsingFailed   = errors.New("csv parsing failed")
	ErrStagingNotFound = errors.New("staged preview not found or expired")
)

// NamedFile pairs an uploaded file's content with its original name, which
// doubles as a note identity fallback.
type NamedFile struct {
	Name   string
	Reader io.Reader
}

// PreviewSummary is the headline counts shown above the preview tables.
type PreviewSummary struct {
	TradesCount              int      `json:"trades_count"`
	ContractNotesCount       int      `json:"contract_notes_count"`
	ContractTradeRowsCount   int      `json:"contract_trade_rows_count"`
	ContractChargeRowsCount  int      `json:"contract_charge_rows_count"`
	MissingContractNoteDates []string `json:"missing_contract_note_dates"`
	Warnings                 []string `json:"warnings"`
}

// StagedPreview is one parsed-and-reconciled upload, held in memory until the
// user confirms or it expires.
type StagedPreview struct {
	StagingID          string                     `json:"staging_id"`
	Summary            PreviewSummary             `json:"summary"`
	TradeRows          []models.TradebookRow      `json:"trade_rows_preview"`
	ContractTradeRows  []models.ContractTradeRow  `json:"contract_trade_rows_preview"`
	ContractChargeRows []models.ContractChargeRow `json:"contract_charge_rows_preview"`
	Reconciliation     reconcile.Result           `json:"reconciliation"`
}

// CommitResult reports what a commit wrote.
type CommitResult struct {
	TradesInserted int    `json:"trades_inserted"`
	NotesUpserted  int    `json:"notes_upserted"`
	Message        string `json:"message"`
}

// StagingService stages upload previews and commits confirmed ones.
type StagingService interface {
	Preview(tradebook NamedFile, contracts []NamedFile) (*StagedPreview, error)
	Commit(stagingID string) (*CommitResult, error)
}

// ReportService assembles dashboard and report payloads from committed data.
type ReportService interface {
	Dashboard(fy string) (*models.DashboardData, error)
	Summary() (*models.SummaryData, error)
	Realized(fy string) ([]models.RealizedRow, error)
	InvalidateCache()
}

// Quote is the price lookup result for one portfolio symbol.
type Quote struct {
	Symbol    string  // portfolio symbol as held
	Attempted string  // ticker actually queried (after alias resolution)
	Price     float64 // last traded price; zero when not OK
	OK        bool
}

// PriceService fetches current market prices for portfolio symbols. Alias
// resolution happens inside so callers always pass raw held symbols.
type PriceService interface {
	GetQuotes(symbols []string, aliases map[string]string) map[string]Quote
}
