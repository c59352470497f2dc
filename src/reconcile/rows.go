// backend/src/reconcile/rows.go
package reconcile

import (
	"sort"
	"strings"

	"github.com/username/brokerledger/backend/src/models"
)

// ContractRow is one line of the per-date reconciliation table: the date's
// representative contract-note trade and charge rows, plus the tradebook side
// used when the note itself does not reveal buy vs sell.
type ContractRow struct {
	Date         string                    `json:"date"`
	Trade        *models.ContractTradeRow  `json:"trade,omitempty"`
	Charge       *models.ContractChargeRow `json:"charge,omitempty"`
	FallbackSide string                    `json:"fallback_side,omitempty"`
	NoteKey      string                    `json:"note_key"`
	NoteDisplay  string                    `json:"note_display"`
}

type dateSymbolKey struct {
	Date   string
	Symbol string
}

// BuildContractRows merges contract-note trade rows and charge rows into one
// row per distinct trade date (union of both sets, ascending). Each index
// below is first-occurrence-in-input-order-wins: the first trade row and
// first charge row of a date represent it, collapsing same-day multi-lot
// activity into the single row a contract note settles as.
func BuildContractRows(tradebook []models.TradebookRow, tradeRows []models.ContractTradeRow, chargeRows []models.ContractChargeRow) []ContractRow {
	tradebookByDateSymbol := make(map[dateSymbolKey]*models.TradebookRow)
	for i := range tradebook {
		t := &tradebook[i]
		k := dateSymbolKey{Date: t.Date, Symbol: strings.ToUpper(t.Symbol)}
		if _, ok := tradebookByDateSymbol[k]; !ok {
			tradebookByDateSymbol[k] = t
		}
	}

	tradeByDate := make(map[string]*models.ContractTradeRow)
	for i := range tradeRows {
		if _, ok := tradeByDate[tradeRows[i].TradeDate]; !ok {
			tradeByDate[tradeRows[i].TradeDate] = &tradeRows[i]
		}
	}

	chargeByDate := make(map[string]*models.ContractChargeRow)
	for i := range chargeRows {
		if _, ok := chargeByDate[chargeRows[i].TradeDate]; !ok {
			chargeByDate[chargeRows[i].TradeDate] = &chargeRows[i]
		}
	}

	seen := make(map[string]bool)
	var dates []string
	for _, rows := range [][]string{mapKeys(tradeByDate), mapKeys2(chargeByDate)} {
		for _, d := range rows {
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}
	sort.Strings(dates)

	counts := CountTradesByNoteDate(tradeRows)

	rows := make([]ContractRow, 0, len(dates))
	for _, d := range dates {
		trade := tradeByDate[d]
		charge := chargeByDate[d]

		var symbol string
		if trade != nil {
			symbol = ExtractSymbol(trade.SecurityDesc)
		}
		var fallbackSide string
		if tb, ok := tradebookByDateSymbol[dateSymbolKey{Date: d, Symbol: strings.ToUpper(symbol)}]; ok {
			fallbackSide = tb.Type
		}

		noteKey := NoteKeyForTrade(trade)
		count := counts[NoteDateKey{NoteKey: noteKey, Date: d}]

		rows = append(rows, ContractRow{
			Date:         d,
			Trade:        trade,
			Charge:       charge,
			FallbackSide: fallbackSide,
			NoteKey:      noteKey,
			NoteDisplay:  NoteDisplay(noteKey, count),
		})
	}
	return rows
}

func mapKeys(m map[string]*models.ContractTradeRow) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapKeys2(m map[string]*models.ContractChargeRow) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
