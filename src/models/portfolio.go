// backend/src/models/portfolio.go
package models

// Trade is a committed tradebook entry as stored in the trades table.
type Trade struct {
	ID          int64   `json:"id,omitempty"`
	TradeID     string  `json:"trade_id"`
	Symbol      string  `json:"symbol"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"` // "BUY" or "SELL"
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	GrossAmount float64 `json:"gross_amount"`
}

// NoteCharge is the committed per-note charge summary used for cost
// prorating and the charges-by-FY report. NetTotal is signed: outflows are
// negative.
type NoteCharge struct {
	NoteKey   string  `json:"note_key"`
	TradeDate string  `json:"trade_date"`
	NetTotal  float64 `json:"net_total"`
}

// Holding is one current position with its market valuation.
type Holding struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	AvgPrice    float64 `json:"avg_price"`
	CMP         float64 `json:"cmp"`
	InvestedVal float64 `json:"invested_val"`
	CurrentVal  float64 `json:"current_val"`
	PnL         float64 `json:"pnl"`
	PnLPct      float64 `json:"pnl_pct"`
}

// RealizedRow is one realized sale event: a SELL matched against prior BUY
// lots at their weighted average cost.
type RealizedRow struct {
	Symbol      string  `json:"symbol"`
	SellDate    string  `json:"sell_date"`
	SellQty     float64 `json:"sell_qty"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
	SellPrice   float64 `json:"sell_price"`
	RealizedPnL float64 `json:"realized_pnl"`
}

// UnmatchedSell flags a SELL with more quantity than the ledger holds; the
// realized figures for that symbol are suspect until the missing BUY history
// is imported.
type UnmatchedSell struct {
	Symbol       string  `json:"symbol"`
	SellDate     string  `json:"sell_date"`
	SellQty      float64 `json:"sell_qty"`
	UnmatchedQty float64 `json:"unmatched_qty"`
}

// MissingSymbol is a symbol the price service could not resolve, with the
// ticker that was attempted.
type MissingSymbol struct {
	Symbol    string `json:"symbol"`
	Attempted string `json:"attempted"`
}

// FYNetworth is one point of the net-worth-over-time series.
type FYNetworth struct {
	FY       string  `json:"fy"`
	Networth float64 `json:"networth"`
}

// FYCharges is one financial year's total charges, signed as stored.
type FYCharges struct {
	FY      string  `json:"fy"`
	Charges float64 `json:"charges"`
}

// DataWarnings groups data-quality warnings shown on the dashboard.
type DataWarnings struct {
	UnmatchedSells []UnmatchedSell `json:"unmatched_sells"`
}

// DashboardData is the full dashboard snapshot for one financial year.
type DashboardData struct {
	Holdings       []Holding         `json:"holdings"`
	HealthIssues   []string          `json:"health_issues"`
	DataWarnings   DataWarnings      `json:"data_warnings"`
	RealizedPnL    float64           `json:"realized_pnl"`
	NetWorth       float64           `json:"net_worth"`
	NetWorthYoY    float64           `json:"net_worth_yoy"`
	FYList         []string          `json:"fy_list"`
	MissingSymbols []MissingSymbol   `json:"missing_symbols"`
	SymbolAliases  map[string]string `json:"symbol_aliases"`
}

// SummaryData is the reports/summary payload.
type SummaryData struct {
	NetworthByFY []FYNetworth `json:"networth_by_fy"`
	ChargesByFY  []FYCharges  `json:"charges_by_fy"`
}
