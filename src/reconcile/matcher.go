// backend/src/reconcile/matcher.go
package reconcile

import (
	"math"
	"strings"

	"github.com/username/brokerledger/backend/src/models"
)

// quantityTolerance is the absolute tolerance for the quantity tie-break.
const quantityTolerance = 0.001

// FilterTradeRows drops contract-note trade rows that cannot participate in
// matching: blank descriptions and zero or unparsable quantities are header
// artifacts, not trades.
func FilterTradeRows(rows []models.ContractTradeRow) []models.ContractTradeRow {
	out := make([]models.ContractTradeRow, 0, len(rows))
	for _, r := range rows {
		if r.SecurityDesc == "" || !r.Quantity.Valid || r.Quantity.Value == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FindContractMatch pairs one tradebook row with its best contract-note trade
// row. Candidates must carry the tradebook symbol as a substring of their
// upper-cased description (contract notes append suffixes like "-EQ") and
// trade on the same date. Among survivors, a quantity match within the
// tolerance wins; otherwise the first candidate in input order does.
//
// Matching is independent per tradebook row: two tradebook rows can claim the
// same contract row. The output is an advisory preview, so ambiguity is
// surfaced through mismatch highlighting rather than blocked.
func FindContractMatch(trade models.TradebookRow, candidates []models.ContractTradeRow) *models.ContractTradeRow {
	tSymbol := strings.ToUpper(trade.Symbol)
	var matches []*models.ContractTradeRow
	for i := range candidates {
		c := &candidates[i]
		if !strings.Contains(strings.ToUpper(c.SecurityDesc), tSymbol) {
			continue
		}
		if c.TradeDate != trade.Date {
			continue
		}
		matches = append(matches, c)
	}
	if len(matches) == 0 {
		return nil
	}
	if trade.Quantity.Valid {
		for _, m := range matches {
			if m.Quantity.Valid && math.Abs(m.Quantity.Value-trade.Quantity.Value) < quantityTolerance {
				return m
			}
		}
	}
	return matches[0]
}
