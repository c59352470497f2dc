// backend/src/reconcile/notekey_test.go
package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/brokerledger/backend/src/models"
)

func TestNoteKeyForTrade(t *testing.T) {
	testCases := []struct {
		name     string
		row      *models.ContractTradeRow
		expected string
	}{
		{"note number wins", &models.ContractTradeRow{ContractNoteNo: "CN-001", FileName: "a.csv", SheetName: "s1"}, "CN-001"},
		{"file name second", &models.ContractTradeRow{FileName: "note_2025-11-07.csv", SheetName: "s1"}, "note_2025-11-07"},
		{"sheet name last", &models.ContractTradeRow{SheetName: "Sheet1"}, "Sheet1"},
		{"nothing yields sentinel", &models.ContractTradeRow{}, NoteKeySentinel},
		{"nil yields sentinel", nil, NoteKeySentinel},
		{"xlsx extension stripped", &models.ContractTradeRow{FileName: "CN123.xlsx"}, "CN123"},
		{"extension strip is case-insensitive", &models.ContractTradeRow{FileName: "CN123.XLS"}, "CN123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NoteKeyForTrade(tc.row))
		})
	}
}

func TestNoteKeyCollapsesAcrossExtensions(t *testing.T) {
	// "CN123.xlsx" and "CN123.csv" identify the same note.
	a := NoteKeyForTrade(&models.ContractTradeRow{FileName: "CN123.xlsx"})
	b := NoteKeyForTrade(&models.ContractTradeRow{FileName: "CN123.csv"})
	assert.Equal(t, a, b)
}

func TestNoteDisplay(t *testing.T) {
	assert.Equal(t, "CN-001 (MULTI)", NoteDisplay("CN-001", 2))
	assert.Equal(t, "CN-001", NoteDisplay("CN-001", 1))
	assert.Equal(t, "CN-001", NoteDisplay("CN-001", 0))
	// The sentinel never gets a MULTI suffix however many rows share it.
	assert.Equal(t, NoteKeySentinel, NoteDisplay(NoteKeySentinel, 5))
	assert.Equal(t, NoteKeySentinel, NoteDisplay("", 3))
}

func TestCountTradesByNoteDate(t *testing.T) {
	rows := []models.ContractTradeRow{
		{FileName: "a.csv", TradeDate: "2025-11-07"},
		{FileName: "a.csv", TradeDate: "2025-11-07"},
		{FileName: "a.csv", TradeDate: "2025-11-08"},
		{FileName: "b.csv", TradeDate: "2025-11-07"},
	}

	counts := CountTradesByNoteDate(rows)
	assert.Equal(t, 2, counts[NoteDateKey{NoteKey: "a", Date: "2025-11-07"}])
	assert.Equal(t, 1, counts[NoteDateKey{NoteKey: "a", Date: "2025-11-08"}])
	assert.Equal(t, 1, counts[NoteDateKey{NoteKey: "b", Date: "2025-11-07"}])
}

func TestAssignColorsPaletteAndOverflow(t *testing.T) {
	keys := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		keys = append(keys, string(rune('A'+i)))
	}

	colors := AssignColors(keys)
	assert.Len(t, colors, 25)
	assert.Equal(t, notePalette[0], colors["A"])
	assert.Equal(t, notePalette[19], colors["T"])
	// Key index 20 overflows the palette into a golden-angle hue.
	assert.True(t, strings.HasPrefix(colors["U"], "hsl(230.16"))
	assert.True(t, strings.HasSuffix(colors["U"], " 70% 96%)"))
}

func TestAssignColorsSkipsSentinelAndDuplicates(t *testing.T) {
	colors := AssignColors([]string{"CN-001", NoteKeySentinel, "CN-001", "", "CN-002"})

	assert.Len(t, colors, 2)
	assert.Equal(t, notePalette[0], colors["CN-001"])
	assert.Equal(t, notePalette[1], colors["CN-002"])
	assert.NotContains(t, colors, NoteKeySentinel)
}

func TestAssignColorsIsPure(t *testing.T) {
	keys := []string{"x", "y", "z"}
	assert.Equal(t, AssignColors(keys), AssignColors(keys))
}
