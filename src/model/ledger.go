// backend/src/model/ledger.go

// Package model is the sqlite access layer for committed ledger data.
package model

import (
	"database/sql"
	"fmt"

	"github.com/username/brokerledger/backend/src/models"
	"github.com/username/brokerledger/backend/src/reconcile"
)

// InsertTrades stores committed tradebook rows. Re-imports of the same file
// are tolerated: a duplicate trade_id is ignored rather than rejected.
// Returns the number of newly inserted trades.
func InsertTrades(db *sql.DB, trades []models.Trade) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning trade transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO trades
		(trade_id, symbol, trade_date, trade_type, quantity, price, gross_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing trade insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range trades {
		res, err := stmt.Exec(t.TradeID, t.Symbol, t.Date, t.Type, t.Quantity, t.Price, t.GrossAmount)
		if err != nil {
			return inserted, fmt.Errorf("inserting trade %s: %w", t.TradeID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing trades: %w", err)
	}
	return inserted, nil
}

// GetAllTrades loads the committed trade history in chronological order.
func GetAllTrades(db *sql.DB) ([]models.Trade, error) {
	rows, err := db.Query(`SELECT id, trade_id, symbol, trade_date, trade_type, quantity, price, gross_amount
		FROM trades ORDER BY trade_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.TradeID, &t.Symbol, &t.Date, &t.Type, &t.Quantity, &t.Price, &t.GrossAmount); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// UpsertContractNote stores one contract note's charge summary, replacing an
// earlier import of the same (note, date). Legacy field variants are resolved
// to their canonical columns before storage.
func UpsertContractNote(db *sql.DB, noteKey, tradeDate string, charge *models.ContractChargeRow, netTotal float64) error {
	_, err := db.Exec(`INSERT INTO contract_notes
		(note_key, trade_date, brokerage, exchange_txn_charges, clearing_charges,
		 igst, cgst, sgst, sebi_turnover_fees, stamp_duty, pay_in_out_obligation,
		 net_amount_receivable, net_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(note_key, trade_date) DO UPDATE SET
		 brokerage = excluded.brokerage,
		 exchange_txn_charges = excluded.exchange_txn_charges,
		 clearing_charges = excluded.clearing_charges,
		 igst = excluded.igst,
		 cgst = excluded.cgst,
		 sgst = excluded.sgst,
		 sebi_turnover_fees = excluded.sebi_turnover_fees,
		 stamp_duty = excluded.stamp_duty,
		 pay_in_out_obligation = excluded.pay_in_out_obligation,
		 net_amount_receivable = excluded.net_amount_receivable,
		 net_total = excluded.net_total`,
		noteKey, tradeDate,
		optArg(reconcile.ChargeBrokerage(charge)), optArg(charge.ExchangeTxnCharges), optArg(charge.ClearingCharges),
		optArg(charge.IGST), optArg(charge.CGST), optArg(charge.SGST),
		optArg(reconcile.ChargeSEBIFees(charge)), optArg(charge.StampDuty), optArg(charge.PayInOutObligation),
		optArg(charge.NetAmountReceivable), netTotal)
	if err != nil {
		return fmt.Errorf("upserting contract note %s/%s: %w", noteKey, tradeDate, err)
	}
	return nil
}

// GetNoteCharges loads the committed per-note charge summaries.
func GetNoteCharges(db *sql.DB) ([]models.NoteCharge, error) {
	rows, err := db.Query(`SELECT note_key, trade_date, net_total FROM contract_notes ORDER BY trade_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying contract notes: %w", err)
	}
	defer rows.Close()

	var notes []models.NoteCharge
	for rows.Next() {
		var n models.NoteCharge
		if err := rows.Scan(&n.NoteKey, &n.TradeDate, &n.NetTotal); err != nil {
			return nil, fmt.Errorf("scanning contract note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func optArg(f models.OptFloat) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Value
}
