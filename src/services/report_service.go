// backend/src/services/report_service.go
package services

import (
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/patrickmn/go-cache"
	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/model"
	"github.com/username/brokerledger/backend/src/models"
	"github.com/username/brokerledger/backend/src/portfolio"
	"github.com/username/brokerledger/backend/src/utils"
)

const (
	dashboardCachePrefix = "dashboard::"
	summaryCacheKey      = "summary"
)

type reportServiceImpl struct {
	db           *sql.DB
	priceService PriceService
	reportCache  *cache.Cache
}

// NewReportService creates the report service. Reports are pure functions of
// the committed trades and notes, so they are cached until the next commit.
func NewReportService(db *sql.DB, priceService PriceService, reportCache *cache.Cache) ReportService {
	return &reportServiceImpl{
		db:           db,
		priceService: priceService,
		reportCache:  reportCache,
	}
}

func (s *reportServiceImpl) InvalidateCache() {
	s.reportCache.Flush()
}

// loadLedger pulls committed data and replays it through the FIFO engine.
func (s *reportServiceImpl) loadLedger() ([]models.Trade, []models.NoteCharge, portfolio.LedgerResult, error) {
	trades, err := model.GetAllTrades(s.db)
	if err != nil {
		return nil, nil, portfolio.LedgerResult{}, fmt.Errorf("loading trades: %w", err)
	}
	notes, err := model.GetNoteCharges(s.db)
	if err != nil {
		return nil, nil, portfolio.LedgerResult{}, fmt.Errorf("loading contract notes: %w", err)
	}
	ledger := portfolio.RunFIFO(trades, chargesByDate(notes))
	return trades, notes, ledger, nil
}

func (s *reportServiceImpl) Dashboard(fy string) (*models.DashboardData, error) {
	cacheKey := dashboardCachePrefix + fy
	if cached, ok := s.reportCache.Get(cacheKey); ok {
		return cached.(*models.DashboardData), nil
	}

	trades, notes, ledger, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	holdings := portfolio.HoldingsFromLots(ledger.Lots)

	aliases, err := model.GetAliases(s.db)
	if err != nil {
		logger.L.Warn("Could not load symbol aliases, resolving symbols as-is", "error", err)
		aliases = map[string]string{}
	}

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	quotes := s.priceService.GetQuotes(symbols, aliases)

	missing := make([]models.MissingSymbol, 0)
	var currentTotal float64
	for i := range holdings {
		h := &holdings[i]
		q, ok := quotes[h.Symbol]
		if !ok || !q.OK {
			missing = append(missing, models.MissingSymbol{Symbol: h.Symbol, Attempted: q.Attempted})
			continue
		}
		h.CMP = q.Price
		h.CurrentVal = utils.RoundFloat(h.Quantity*q.Price, 2)
		h.PnL = utils.RoundFloat(h.CurrentVal-h.InvestedVal, 2)
		if h.InvestedVal > 0 {
			h.PnLPct = utils.RoundFloat(h.PnL/h.InvestedVal*100, 2)
		}
		currentTotal += h.CurrentVal
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Symbol < missing[j].Symbol })

	realizedFY := portfolio.RealizedForFY(ledger.Realized, fy)
	var realizedPnL float64
	for _, r := range realizedFY {
		realizedPnL += r.RealizedPnL
	}

	netWorth := utils.RoundFloat(currentTotal, 2)
	networthSeries := portfolio.NetWorthByFY(trades, chargesByDate(notes))

	unmatched := ledger.UnmatchedSells
	if unmatched == nil {
		unmatched = []models.UnmatchedSell{}
	}

	data := &models.DashboardData{
		Holdings:       holdings,
		HealthIssues:   []string{},
		DataWarnings:   models.DataWarnings{UnmatchedSells: unmatched},
		RealizedPnL:    utils.RoundFloat(realizedPnL, 2),
		NetWorth:       netWorth,
		NetWorthYoY:    netWorthYoY(netWorth, fy, networthSeries),
		FYList:         portfolio.FYList(trades),
		MissingSymbols: missing,
		SymbolAliases:  aliases,
	}

	s.reportCache.SetDefault(cacheKey, data)
	return data, nil
}

func (s *reportServiceImpl) Summary() (*models.SummaryData, error) {
	if cached, ok := s.reportCache.Get(summaryCacheKey); ok {
		return cached.(*models.SummaryData), nil
	}

	trades, notes, _, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	data := &models.SummaryData{
		NetworthByFY: portfolio.NetWorthByFY(trades, chargesByDate(notes)),
		ChargesByFY:  portfolio.ChargesByFY(notes),
	}
	s.reportCache.SetDefault(summaryCacheKey, data)
	return data, nil
}

func (s *reportServiceImpl) Realized(fy string) ([]models.RealizedRow, error) {
	_, _, ledger, err := s.loadLedger()
	if err != nil {
		return nil, err
	}
	return portfolio.RealizedForFY(ledger.Realized, fy), nil
}

// chargesByDate flattens committed note charges into the absolute per-date
// totals the FIFO engine prorates from.
func chargesByDate(notes []models.NoteCharge) map[string]float64 {
	byDate := make(map[string]float64, len(notes))
	for _, n := range notes {
		byDate[n.TradeDate] += math.Abs(n.NetTotal)
	}
	return byDate
}

// netWorthYoY compares the live net worth against the previous financial
// year's point on the series. Zero when there is no comparable prior year.
func netWorthYoY(netWorth float64, fy string, series []models.FYNetworth) float64 {
	idx := -1
	for i, e := range series {
		if e.FY == fy {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return 0
	}
	prev := series[idx-1].Networth
	if prev <= 0 {
		return 0
	}
	return utils.RoundFloat((netWorth-prev)/prev*100, 2)
}
