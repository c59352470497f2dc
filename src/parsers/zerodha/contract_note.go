// backend/src/parsers/zerodha/contract_note.go
package zerodha

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/username/brokerledger/backend/src/models"
)

// ContractNoteData is everything extracted from one contract note file.
type ContractNoteData struct {
	TradeRows []models.ContractTradeRow
	Charge    *models.ContractChargeRow
}

// Cell positions in the contract note layout: the trade date sits in the
// fourth cell of the second row; labeled charge rows carry the amount in the
// eleventh cell. Trade detail rows have the security description in the
// second cell with quantity, gross rate and net total at fixed offsets.
const (
	dateRowIndex    = 1
	dateCellIndex   = 3
	amountCellIndex = 10
	descCellIndex   = 1
	qtyCellIndex    = 4
	grossCellIndex  = 7
	netCellIndex    = 10
)

var noteNoRe = regexp.MustCompile(`(?i)contract note no\.?\s*[:\-]?\s*([A-Z0-9/\-]+)`)

// ParseContractNote reads one contract note CSV. fileName seeds the fallback
// note identity when the note number cannot be found in the sheet.
func ParseContractNote(file io.Reader, fileName string) (*ContractNoteData, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("zerodha parser: failed to read contract note CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("zerodha parser: contract note %q is empty", fileName)
	}

	tradeDate := ""
	if len(records) > dateRowIndex && len(records[dateRowIndex]) > dateCellIndex {
		tradeDate = normalizeDate(records[dateRowIndex][dateCellIndex])
	}

	noteNo := findNoteNumber(records)

	charge := &models.ContractChargeRow{
		TradeDate:      tradeDate,
		ContractNoteNo: noteNo,
		FileName:       fileName,
		Debug: map[string]string{
			"file": fileName,
			"rows": strconv.Itoa(len(records)),
		},
	}

	data := &ContractNoteData{Charge: charge}
	for i, record := range records {
		if i <= dateRowIndex {
			continue
		}
		if applyChargeRow(charge, record) {
			continue
		}
		if row, ok := parseTradeRow(record, tradeDate, noteNo, fileName); ok {
			data.TradeRows = append(data.TradeRows, row)
		}
	}
	return data, nil
}

// applyChargeRow matches a labeled charge line and stores its amount.
// Charge components are stored as magnitudes; the settlement direction lives
// in the net amount receivable/payable line, which keeps its sign.
func applyChargeRow(charge *models.ContractChargeRow, record []string) bool {
	if len(record) <= amountCellIndex {
		return false
	}
	label := strings.ToLower(strings.TrimSpace(record[0]))
	if label == "" {
		return false
	}
	amount := models.ParseOptFloat(strings.TrimSpace(record[amountCellIndex]))

	abs := amount
	if amount.Valid {
		abs = models.Num(math.Abs(amount.Value))
	}

	switch {
	case strings.Contains(label, "taxable value of supply"):
		charge.TaxableValueOfSupply = abs
	case strings.Contains(label, "brokerage"):
		charge.Brokerage = abs
	case strings.Contains(label, "exchange transaction charges"):
		charge.ExchangeTxnCharges = abs
	case strings.Contains(label, "clearing charge"):
		charge.ClearingCharges = abs
	case strings.Contains(label, "igst"):
		charge.IGST = abs
	case strings.Contains(label, "cgst"):
		charge.CGST = abs
	case strings.Contains(label, "sgst"):
		charge.SGST = abs
	case strings.Contains(label, "sebi turnover fees"):
		charge.SEBITurnoverFees = abs
	case strings.Contains(label, "sebi transaction tax"):
		charge.SEBITxnTax = abs
	case strings.Contains(label, "stamp duty"):
		charge.StampDuty = abs
	case strings.Contains(label, "pay in") && strings.Contains(label, "obligation"):
		charge.PayInOutObligation = amount
	case strings.Contains(label, "net amount receivable"):
		charge.NetAmountReceivable = amount
	default:
		return false
	}
	return true
}

// parseTradeRow recognizes a trade detail line: empty label cell, a security
// description, and a nonzero quantity.
func parseTradeRow(record []string, tradeDate, noteNo, fileName string) (models.ContractTradeRow, bool) {
	if len(record) <= netCellIndex {
		return models.ContractTradeRow{}, false
	}
	if strings.TrimSpace(record[0]) != "" {
		return models.ContractTradeRow{}, false
	}
	desc := strings.TrimSpace(record[descCellIndex])
	if desc == "" {
		return models.ContractTradeRow{}, false
	}
	qty := models.ParseOptFloat(strings.TrimSpace(record[qtyCellIndex]))
	if !qty.Valid || qty.Value == 0 {
		return models.ContractTradeRow{}, false
	}
	return models.ContractTradeRow{
		SecurityDesc:   desc,
		TradeDate:      tradeDate,
		Quantity:       qty,
		GrossRate:      models.ParseOptFloat(strings.TrimSpace(record[grossCellIndex])),
		NetTotal:       models.ParseOptFloat(strings.TrimSpace(record[netCellIndex])),
		ContractNoteNo: noteNo,
		FileName:       fileName,
	}, true
}

func findNoteNumber(records [][]string) string {
	limit := len(records)
	if limit > 5 {
		limit = 5
	}
	for _, record := range records[:limit] {
		for _, cell := range record {
			if m := noteNoRe.FindStringSubmatch(cell); m != nil {
				return m[1]
			}
		}
	}
	return ""
}
