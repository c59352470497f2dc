// backend/src/portfolio/fifo.go
package portfolio

import (
	"sort"

	"github.com/username/brokerledger/backend/src/models"
	"github.com/username/brokerledger/backend/src/utils"
)

// Lot is an open purchase lot. Price includes the lot's prorated share of
// that day's contract-note charges.
type Lot struct {
	Symbol string
	Date   string
	Qty    float64
	Price  float64
}

// LedgerResult is the outcome of replaying a trade history.
type LedgerResult struct {
	// Lots holds the remaining open lots per symbol, oldest first.
	Lots           map[string][]Lot
	Realized       []models.RealizedRow
	UnmatchedSells []models.UnmatchedSell
}

// RunFIFO replays committed trades chronologically: buys append lots, sells
// consume the oldest lots first. chargesByDate carries the absolute
// contract-note charge total per trade date; it is prorated across that
// day's buys in proportion to gross amount and baked into the lot price.
//
// A sell larger than the held quantity realizes what it can and reports the
// remainder as an UnmatchedSell warning; missing buy history is a data
// problem to surface, not an error to fail on.
func RunFIFO(trades []models.Trade, chargesByDate map[string]float64) LedgerResult {
	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].ID < ordered[j].ID
	})

	// Gross bought per date, for prorating the day's charges.
	buyGrossByDate := make(map[string]float64)
	for _, t := range ordered {
		if t.Type == "BUY" {
			buyGrossByDate[t.Date] += grossAmount(t)
		}
	}

	result := LedgerResult{Lots: make(map[string][]Lot)}
	for _, t := range ordered {
		switch t.Type {
		case "BUY":
			if t.Quantity <= 0 {
				continue
			}
			gross := grossAmount(t)
			price := gross / t.Quantity
			if charge := chargesByDate[t.Date]; charge > 0 && buyGrossByDate[t.Date] > 0 {
				allocated := charge * gross / buyGrossByDate[t.Date]
				price += allocated / t.Quantity
			}
			result.Lots[t.Symbol] = append(result.Lots[t.Symbol], Lot{
				Symbol: t.Symbol,
				Date:   t.Date,
				Qty:    t.Quantity,
				Price:  price,
			})

		case "SELL":
			if t.Quantity <= 0 {
				continue
			}
			sellPrice := t.Price
			if gross := grossAmount(t); gross > 0 {
				sellPrice = gross / t.Quantity
			}

			remaining := t.Quantity
			var matchedQty, matchedCost float64
			lots := result.Lots[t.Symbol]
			for len(lots) > 0 && remaining > 0 {
				lot := &lots[0]
				take := lot.Qty
				if take > remaining {
					take = remaining
				}
				matchedQty += take
				matchedCost += take * lot.Price
				lot.Qty -= take
				remaining -= take
				if lot.Qty <= 0 {
					lots = lots[1:]
				}
			}
			result.Lots[t.Symbol] = lots

			if matchedQty > 0 {
				avgBuy := matchedCost / matchedQty
				result.Realized = append(result.Realized, models.RealizedRow{
					Symbol:      t.Symbol,
					SellDate:    t.Date,
					SellQty:     t.Quantity,
					AvgBuyPrice: utils.RoundFloat(avgBuy, 2),
					SellPrice:   utils.RoundFloat(sellPrice, 2),
					RealizedPnL: utils.RoundFloat((sellPrice-avgBuy)*matchedQty, 2),
				})
			}
			if remaining > 0 {
				result.UnmatchedSells = append(result.UnmatchedSells, models.UnmatchedSell{
					Symbol:       t.Symbol,
					SellDate:     t.Date,
					SellQty:      t.Quantity,
					UnmatchedQty: remaining,
				})
			}
		}
	}
	return result
}

func grossAmount(t models.Trade) float64 {
	if t.GrossAmount != 0 {
		return t.GrossAmount
	}
	return t.Quantity * t.Price
}

// HoldingsFromLots aggregates open lots into per-symbol holdings (quantity,
// weighted average price, invested value). Market valuation fields are filled
// in later by whoever has prices.
func HoldingsFromLots(lots map[string][]Lot) []models.Holding {
	symbols := make([]string, 0, len(lots))
	for sym, symLots := range lots {
		var qty float64
		for _, l := range symLots {
			qty += l.Qty
		}
		if qty > 0 {
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)

	holdings := make([]models.Holding, 0, len(symbols))
	for _, sym := range symbols {
		var qty, cost float64
		for _, l := range lots[sym] {
			qty += l.Qty
			cost += l.Qty * l.Price
		}
		holdings = append(holdings, models.Holding{
			Symbol:      sym,
			Quantity:    qty,
			AvgPrice:    utils.RoundFloat(cost/qty, 2),
			InvestedVal: utils.RoundFloat(cost, 2),
		})
	}
	return holdings
}

// FYList returns the sorted distinct financial years touched by the trades.
func FYList(trades []models.Trade) []string {
	seen := make(map[string]bool)
	var fys []string
	for _, t := range trades {
		fy := FinancialYearOfDate(t.Date)
		if fy == "" || seen[fy] {
			continue
		}
		seen[fy] = true
		fys = append(fys, fy)
	}
	sort.Strings(fys)
	return fys
}

// NetWorthByFY replays the ledger up to each financial year's end and values
// the surviving lots at cost. Recomputed from scratch per year so the series
// is a pure function of the committed trades.
func NetWorthByFY(trades []models.Trade, chargesByDate map[string]float64) []models.FYNetworth {
	series := make([]models.FYNetworth, 0)
	for _, fy := range FYList(trades) {
		end := FYEndDate(fy)
		var upTo []models.Trade
		for _, t := range trades {
			if end == "" || t.Date <= end {
				upTo = append(upTo, t)
			}
		}
		res := RunFIFO(upTo, chargesByDate)
		var total float64
		for _, symLots := range res.Lots {
			for _, l := range symLots {
				total += l.Qty * l.Price
			}
		}
		series = append(series, models.FYNetworth{FY: fy, Networth: utils.RoundFloat(total, 2)})
	}
	return series
}

// ChargesByFY sums signed contract-note net totals per financial year.
func ChargesByFY(notes []models.NoteCharge) []models.FYCharges {
	byFY := make(map[string]float64)
	for _, n := range notes {
		fy := FinancialYearOfDate(n.TradeDate)
		if fy == "" {
			continue
		}
		byFY[fy] += n.NetTotal
	}
	fys := make([]string, 0, len(byFY))
	for fy := range byFY {
		fys = append(fys, fy)
	}
	sort.Strings(fys)

	series := make([]models.FYCharges, 0, len(fys))
	for _, fy := range fys {
		series = append(series, models.FYCharges{FY: fy, Charges: utils.RoundFloat(byFY[fy], 2)})
	}
	return series
}

// RealizedForFY filters realized rows to sells falling in the given FY.
func RealizedForFY(rows []models.RealizedRow, fy string) []models.RealizedRow {
	out := make([]models.RealizedRow, 0)
	for _, r := range rows {
		if FinancialYearOfDate(r.SellDate) == fy {
			out = append(out, r)
		}
	}
	return out
}
