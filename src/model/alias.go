// backend/src/model/alias.go
package model

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/brokerledger/backend/src/models"
)

// GetAliases returns the full from->to alias mapping, upper-cased.
func GetAliases(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT from_symbol, to_symbol FROM symbol_aliases`)
	if err != nil {
		return nil, fmt.Errorf("querying symbol aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(map[string]string)
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scanning symbol alias: %w", err)
		}
		aliases[strings.ToUpper(from)] = strings.ToUpper(to)
	}
	return aliases, rows.Err()
}

// UpsertAliases inserts or replaces alias mappings. Keys and values are
// normalized to upper case at this entry point; blank pairs are skipped.
func UpsertAliases(db *sql.DB, aliases []models.SymbolAlias) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning alias transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO symbol_aliases (from_symbol, to_symbol) VALUES (?, ?)
		ON CONFLICT(from_symbol) DO UPDATE SET to_symbol = excluded.to_symbol`)
	if err != nil {
		return fmt.Errorf("preparing alias upsert: %w", err)
	}
	defer stmt.Close()

	for _, a := range aliases {
		from := strings.ToUpper(strings.TrimSpace(a.FromSymbol))
		to := strings.ToUpper(strings.TrimSpace(a.ToSymbol))
		if from == "" || to == "" {
			continue
		}
		if _, err := stmt.Exec(from, to); err != nil {
			return fmt.Errorf("upserting alias %s: %w", from, err)
		}
	}
	return tx.Commit()
}
