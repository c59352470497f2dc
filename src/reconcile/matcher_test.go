// backend/src/reconcile/matcher_test.go
package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/brokerledger/backend/src/models"
)

func TestFilterTradeRows(t *testing.T) {
	rows := []models.ContractTradeRow{
		{SecurityDesc: "INFY-EQ", Quantity: models.Num(10)},
		{SecurityDesc: "", Quantity: models.Num(5)},
		{SecurityDesc: "TCS-EQ", Quantity: models.OptFloat{}},
		{SecurityDesc: "TCS-EQ", Quantity: models.Num(0)},
	}

	filtered := FilterTradeRows(rows)
	require.Len(t, filtered, 1)
	assert.Equal(t, "INFY-EQ", filtered[0].SecurityDesc)
}

func TestFindContractMatchSymbolAndDate(t *testing.T) {
	trade := models.TradebookRow{Symbol: "INFY", Date: "2025-11-07", Quantity: models.Num(10)}
	candidates := []models.ContractTradeRow{
		{SecurityDesc: "TCS-EQ", TradeDate: "2025-11-07", Quantity: models.Num(10)},
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-06", Quantity: models.Num(10)},
		{SecurityDesc: "infy-eq", TradeDate: "2025-11-07", Quantity: models.Num(10)},
	}

	match := FindContractMatch(trade, candidates)
	require.NotNil(t, match)
	assert.Equal(t, "infy-eq", match.SecurityDesc)
}

func TestFindContractMatchNilWhenNoDateMatches(t *testing.T) {
	trade := models.TradebookRow{Symbol: "INFY", Date: "2025-11-07"}
	candidates := []models.ContractTradeRow{
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-06"},
	}
	assert.Nil(t, FindContractMatch(trade, candidates))
}

func TestFindContractMatchQuantityTieBreak(t *testing.T) {
	trade := models.TradebookRow{Symbol: "INFY", Date: "2025-11-07", Quantity: models.Num(25)}
	candidates := []models.ContractTradeRow{
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-07", Quantity: models.Num(100)},
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-07", Quantity: models.Num(25)},
	}

	// The exact-quantity candidate wins over the earlier one.
	match := FindContractMatch(trade, candidates)
	require.NotNil(t, match)
	assert.Equal(t, 25.0, match.Quantity.Value)
}

func TestFindContractMatchFallsBackToFirstCandidate(t *testing.T) {
	trade := models.TradebookRow{Symbol: "INFY", Date: "2025-11-07", Quantity: models.Num(30)}
	candidates := []models.ContractTradeRow{
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-07", Quantity: models.Num(100)},
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-07", Quantity: models.Num(200)},
	}

	match := FindContractMatch(trade, candidates)
	require.NotNil(t, match)
	assert.Equal(t, 100.0, match.Quantity.Value)
}

func TestFindContractMatchIsIndependentPerTrade(t *testing.T) {
	// Two tradebook rows may claim the same contract row; the preview
	// surfaces ambiguity rather than blocking it.
	candidates := []models.ContractTradeRow{
		{SecurityDesc: "INFY-EQ", TradeDate: "2025-11-07", Quantity: models.Num(10)},
	}
	a := FindContractMatch(models.TradebookRow{Symbol: "INFY", Date: "2025-11-07", Quantity: models.Num(10)}, candidates)
	b := FindContractMatch(models.TradebookRow{Symbol: "INFY", Date: "2025-11-07", Quantity: models.Num(7)}, candidates)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a, b)
}
