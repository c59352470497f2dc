// backend/src/reconcile/reconcile.go

// Package reconcile matches broker tradebook rows against contract-note rows
// and builds the per-date reconciliation table shown during import preview.
// Everything here is a pure function over in-memory collections: feed it the
// same input twice and the output is identical.
package reconcile

import "github.com/username/brokerledger/backend/src/models"

// AnnotatedTrade is a tradebook row decorated with its contract-note match.
type AnnotatedTrade struct {
	models.TradebookRow
	NoteKey       string          `json:"note_key"`
	NoteDisplay   string          `json:"note_display"`
	ContractPrice models.OptFloat `json:"cn_price"`
	Mismatch      bool            `json:"mismatch"`
}

// Result is one complete reconciliation pass.
type Result struct {
	TradeRows    []AnnotatedTrade  `json:"trade_rows"`
	ContractRows []ContractRow     `json:"contract_rows"`
	NoteColors   map[string]string `json:"note_colors"`
}

// Reconcile runs the full pass: filter noise rows, match each tradebook row,
// flag price mismatches, build the per-date contract table, and assign note
// colors. Color order is contract-note rows first (input order), then any
// additional keys reached through tradebook matches, so the assignment is
// stable for the session without any ambient counter.
func Reconcile(tradebook []models.TradebookRow, contractTrades []models.ContractTradeRow, contractCharges []models.ContractChargeRow) Result {
	filtered := FilterTradeRows(contractTrades)
	counts := CountTradesByNoteDate(filtered)

	var orderedKeys []string
	seen := make(map[string]bool)
	addKey := func(k string) {
		if !seen[k] {
			seen[k] = true
			orderedKeys = append(orderedKeys, k)
		}
	}
	for i := range filtered {
		addKey(NoteKeyForTrade(&filtered[i]))
	}

	annotated := make([]AnnotatedTrade, 0, len(tradebook))
	for _, t := range tradebook {
		match := FindContractMatch(t, filtered)
		noteKey := NoteKeyForTrade(match)
		addKey(noteKey)
		cnPrice := EffectiveContractPrice(match)
		annotated = append(annotated, AnnotatedTrade{
			TradebookRow:  t,
			NoteKey:       noteKey,
			NoteDisplay:   NoteDisplay(noteKey, counts[NoteDateKey{NoteKey: noteKey, Date: t.Date}]),
			ContractPrice: cnPrice,
			Mismatch:      IsMismatch(t, cnPrice),
		})
	}

	return Result{
		TradeRows:    annotated,
		ContractRows: BuildContractRows(tradebook, filtered, contractCharges),
		NoteColors:   AssignColors(orderedKeys),
	}
}
