// backend/src/parsers/zerodha/tradebook.go

// Package zerodha parses Zerodha broker exports: the tradebook CSV and the
// per-day contract note CSVs. Malformed numeric cells degrade to absent
// values; only a structurally unreadable file is an error.
package zerodha

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/username/brokerledger/backend/src/models"
)

// tradebookRecord maps the tradebook CSV header columns we consume. The
// export carries more columns (ISIN, exchange, order IDs); they are ignored.
type tradebookRecord struct {
	Symbol    string `csv:"symbol"`
	TradeDate string `csv:"trade_date"`
	TradeType string `csv:"trade_type"`
	Quantity  string `csv:"quantity"`
	Price     string `csv:"price"`
	TradeID   string `csv:"trade_id"`
}

// ParseTradebook reads a Zerodha tradebook CSV into tradebook rows. Rows
// without a symbol or date are skipped.
func ParseTradebook(file io.Reader) ([]models.TradebookRow, error) {
	var records []*tradebookRecord
	if err := gocsv.Unmarshal(file, &records); err != nil {
		return nil, fmt.Errorf("zerodha parser: failed to read tradebook CSV: %w", err)
	}

	rows := make([]models.TradebookRow, 0, len(records))
	for _, rec := range records {
		symbol := strings.ToUpper(strings.TrimSpace(rec.Symbol))
		date := normalizeDate(rec.TradeDate)
		if symbol == "" || date == "" {
			continue
		}
		rows = append(rows, models.TradebookRow{
			TradeID:  strings.TrimSpace(rec.TradeID),
			Symbol:   symbol,
			Date:     date,
			Type:     strings.ToUpper(strings.TrimSpace(rec.TradeType)),
			Quantity: models.ParseOptFloat(strings.TrimSpace(rec.Quantity)),
			Price:    models.ParseOptFloat(strings.TrimSpace(rec.Price)),
		})
	}
	return rows, nil
}

// normalizeDate accepts the date formats seen across exports and returns
// YYYY-MM-DD, or "" when none fit.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
