// backend/src/portfolio/aggregator.go
package portfolio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/username/brokerledger/backend/src/models"
)

// HoldingsTotals are the portfolio-level sums across current holdings.
type HoldingsTotals struct {
	Invested float64 `json:"invested"`
	Current  float64 `json:"current"`
	PnL      float64 `json:"pnl"`
	PnLPct   float64 `json:"pnl_pct"`
}

// TotalHoldings sums invested and current value across holdings. A zero
// invested base yields a zero percentage, never a division by zero.
func TotalHoldings(holdings []models.Holding) HoldingsTotals {
	var t HoldingsTotals
	for _, h := range holdings {
		t.Invested += h.InvestedVal
		t.Current += h.CurrentVal
	}
	t.PnL = t.Current - t.Invested
	if t.Invested > 0 {
		t.PnLPct = t.PnL / t.Invested * 100
	}
	return t
}

// netWorthBaseTitle is the chart title used when no numeric year is present.
const netWorthBaseTitle = "Net Worth Over Time"

// NetWorthRangeTitle derives the net-worth chart title from the FY series:
// the numeric years of the labels, reported as "(min–max)". Labels without a
// parsable year are ignored; with none left the base title stands alone.
func NetWorthRangeTitle(series []models.FYNetworth) string {
	minYear, maxYear := 0, 0
	found := false
	for _, e := range series {
		year, err := strconv.Atoi(strings.Replace(e.FY, "FY", "", 1))
		if err != nil {
			continue
		}
		if !found || year < minYear {
			minYear = year
		}
		if !found || year > maxYear {
			maxYear = year
		}
		found = true
	}
	if !found {
		return netWorthBaseTitle
	}
	return fmt.Sprintf("%s (%d–%d)", netWorthBaseTitle, minYear, maxYear)
}

// Display units for the charges series. One global unit keeps all years
// visually comparable on a single axis.
const (
	lakhScale     = 100000
	thousandScale = 1000
)

// ChargesSeries is the charges-by-FY series normalized for display: absolute
// values plus the single unit chosen for the whole series.
type ChargesSeries struct {
	Unit   string             `json:"unit"` // "lakhs" or "thousands"
	Scale  float64            `json:"scale"`
	Rows   []models.FYCharges `json:"rows"`
	Scaled []float64          `json:"scaled"`
}

// NormalizeCharges takes the signed charges series (outflows negative),
// flips every year to its absolute value, and picks the display unit: lakhs
// when the largest year reaches 100000, thousands otherwise.
func NormalizeCharges(series []models.FYCharges) ChargesSeries {
	rows := make([]models.FYCharges, len(series))
	var max float64
	for i, r := range series {
		rows[i] = models.FYCharges{FY: r.FY, Charges: math.Abs(r.Charges)}
		if rows[i].Charges > max {
			max = rows[i].Charges
		}
	}

	unit, scale := "thousands", float64(thousandScale)
	if max >= lakhScale {
		unit, scale = "lakhs", float64(lakhScale)
	}

	scaled := make([]float64, len(rows))
	for i, r := range rows {
		scaled[i] = r.Charges / scale
	}
	return ChargesSeries{Unit: unit, Scale: scale, Rows: rows, Scaled: scaled}
}
