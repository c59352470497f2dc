// backend/src/reconcile/price.go
package reconcile

import (
	"math"

	"github.com/username/brokerledger/backend/src/models"
)

// EffectiveContractPrice computes the per-unit price implied by a matched
// contract-note row: the gross rate when present, else net total over
// quantity. Sign is stripped; the direction lives elsewhere. An absent result
// means no mismatch check can be made.
func EffectiveContractPrice(match *models.ContractTradeRow) models.OptFloat {
	if match == nil {
		return models.OptFloat{}
	}
	if match.GrossRate.Valid {
		return models.Num(math.Abs(match.GrossRate.Value))
	}
	if !match.Quantity.Valid || match.Quantity.Value == 0 {
		return models.OptFloat{}
	}
	if !match.NetTotal.Valid || match.NetTotal.Value == 0 {
		return models.OptFloat{}
	}
	return models.Num(math.Abs(match.NetTotal.Value / match.Quantity.Value))
}

// IsMismatch reports whether the tradebook price disagrees with the
// contract-note price beyond tolerance. The band is a hybrid: a flat 0.1
// floor, or 0.1% of the trade price, whichever is larger, so neither very
// cheap nor very expensive instruments produce false positives.
func IsMismatch(trade models.TradebookRow, contractPrice models.OptFloat) bool {
	if !trade.Price.Valid || !contractPrice.Valid {
		return false
	}
	diff := math.Abs(trade.Price.Value - contractPrice.Value)
	threshold := math.Max(0.1, trade.Price.Value*0.001)
	return diff > threshold
}
