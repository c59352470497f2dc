// backend/src/models/rows.go
package models

// TradebookRow is one executed trade as reported by the broker's trade log.
// Dates are normalized to YYYY-MM-DD strings at parse time so they compare
// and sort lexicographically.
type TradebookRow struct {
	TradeID  string   `json:"trade_id"`
	Symbol   string   `json:"symbol"`
	Date     string   `json:"date"`
	Type     string   `json:"type"` // "BUY" or "SELL"
	Quantity OptFloat `json:"quantity"`
	Price    OptFloat `json:"price"`
}

// ContractTradeRow is a trade line inside a contract note. The quantity sign
// may encode direction; the magnitude is what matters for matching.
type ContractTradeRow struct {
	SecurityDesc   string   `json:"security_desc"`
	TradeDate      string   `json:"trade_date"`
	Quantity       OptFloat `json:"quantity"`
	GrossRate      OptFloat `json:"gross_rate"`
	NetTotal       OptFloat `json:"net_total"`
	ContractNoteNo string   `json:"contract_note_no,omitempty"`
	FileName       string   `json:"file_name,omitempty"`
	SheetName      string   `json:"sheet_name,omitempty"`
}

// ContractChargeRow is the charge breakdown of one contract note. Older note
// layouts name brokerage "taxable value of supply" and the SEBI fee "SEBI
// transaction tax"; both variants are kept so the resolution priority stays a
// documented contract (see reconcile.ChargeBrokerage / ChargeSEBIFees).
type ContractChargeRow struct {
	TradeDate            string            `json:"trade_date"`
	Brokerage            OptFloat          `json:"brokerage"`
	TaxableValueOfSupply OptFloat          `json:"taxable_value_of_supply"`
	ExchangeTxnCharges   OptFloat          `json:"exchange_txn_charges"`
	ClearingCharges      OptFloat          `json:"clearing_charges"`
	IGST                 OptFloat          `json:"igst"`
	CGST                 OptFloat          `json:"cgst"`
	SGST                 OptFloat          `json:"sgst"`
	SEBITurnoverFees     OptFloat          `json:"sebi_turnover_fees"`
	SEBITxnTax           OptFloat          `json:"sebi_txn_tax"`
	StampDuty            OptFloat          `json:"stamp_duty"`
	PayInOutObligation   OptFloat          `json:"pay_in_out_obligation"`
	NetAmountReceivable  OptFloat          `json:"net_amount_receivable"`
	ContractNoteNo       string            `json:"contract_note_no,omitempty"`
	FileName             string            `json:"file_name,omitempty"`
	SheetName            string            `json:"sheet_name,omitempty"`
	Debug                map[string]string `json:"debug,omitempty"`
}

// SymbolAlias maps a traded symbol to the ticker used for price lookups,
// covering renames like ZOMATO -> ETERNAL.
type SymbolAlias struct {
	FromSymbol string `json:"from_symbol"`
	ToSymbol   string `json:"to_symbol"`
}
