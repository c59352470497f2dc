// backend/src/portfolio/aggregator_test.go
package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/brokerledger/backend/src/models"
)

func TestTotalHoldings(t *testing.T) {
	totals := TotalHoldings([]models.Holding{
		{InvestedVal: 1000, CurrentVal: 1200},
		{InvestedVal: 500, CurrentVal: 400},
	})

	assert.Equal(t, 1500.0, totals.Invested)
	assert.Equal(t, 1600.0, totals.Current)
	assert.Equal(t, 100.0, totals.PnL)
	assert.InDelta(t, 6.6667, totals.PnLPct, 0.001)
}

func TestTotalHoldingsZeroInvested(t *testing.T) {
	totals := TotalHoldings(nil)
	assert.Equal(t, 0.0, totals.PnLPct)

	totals = TotalHoldings([]models.Holding{{InvestedVal: 0, CurrentVal: 100}})
	assert.Equal(t, 0.0, totals.PnLPct)
}

func TestNetWorthRangeTitle(t *testing.T) {
	series := []models.FYNetworth{
		{FY: "FY2024"}, {FY: "FY2023"}, {FY: "FY2025"},
	}
	assert.Equal(t, "Net Worth Over Time (2023–2025)", NetWorthRangeTitle(series))
}

func TestNetWorthRangeTitleWithoutParsableYears(t *testing.T) {
	assert.Equal(t, "Net Worth Over Time", NetWorthRangeTitle(nil))
	assert.Equal(t, "Net Worth Over Time", NetWorthRangeTitle([]models.FYNetworth{{FY: "unknown"}}))
}

func TestNormalizeChargesPicksLakhs(t *testing.T) {
	series := NormalizeCharges([]models.FYCharges{
		{FY: "FY2024", Charges: -150000},
		{FY: "FY2025", Charges: -50000},
	})

	assert.Equal(t, "lakhs", series.Unit)
	assert.Equal(t, 100000.0, series.Scale)
	assert.Equal(t, 150000.0, series.Rows[0].Charges)
	assert.InDelta(t, 1.5, series.Scaled[0], 1e-9)
	assert.InDelta(t, 0.5, series.Scaled[1], 1e-9)
}

func TestNormalizeChargesPicksThousands(t *testing.T) {
	series := NormalizeCharges([]models.FYCharges{
		{FY: "FY2024", Charges: -50000},
	})

	assert.Equal(t, "thousands", series.Unit)
	assert.Equal(t, 1000.0, series.Scale)
	assert.InDelta(t, 50.0, series.Scaled[0], 1e-9)
}
