// backend/src/reconcile/notekey.go
package reconcile

import (
	"math"
	"regexp"
	"strconv"

	"github.com/username/brokerledger/backend/src/models"
)

// NoteKeySentinel marks a row whose source document cannot be identified.
// It never receives a color or a MULTI label.
const NoteKeySentinel = "—"

var noteExtRe = regexp.MustCompile(`(?i)\.(xlsx|xls|csv)$`)

func normalizeNoteKey(v string) string {
	return noteExtRe.ReplaceAllString(v, "")
}

// NoteKeyForTrade derives the document identity of a contract-note trade row:
// contract note number, else file name, else sheet name, else the sentinel.
// File extensions are stripped so "CN123.xlsx" and "CN123.csv" collide.
func NoteKeyForTrade(t *models.ContractTradeRow) string {
	if t == nil {
		return NoteKeySentinel
	}
	for _, v := range []string{t.ContractNoteNo, t.FileName, t.SheetName} {
		if v != "" {
			return normalizeNoteKey(v)
		}
	}
	return NoteKeySentinel
}

// NoteKeyForCharge derives the document identity of a charge row, with the
// same priority and extension stripping as NoteKeyForTrade.
func NoteKeyForCharge(c *models.ContractChargeRow) string {
	if c == nil {
		return NoteKeySentinel
	}
	for _, v := range []string{c.ContractNoteNo, c.FileName, c.SheetName} {
		if v != "" {
			return normalizeNoteKey(v)
		}
	}
	return NoteKeySentinel
}

// NoteDateKey identifies one (document, trade date) pair.
type NoteDateKey struct {
	NoteKey string
	Date    string
}

// CountTradesByNoteDate counts contract-note trade rows per (note, date)
// pair. A count above one means the note bundles multiple trades for that
// date and its label gets the MULTI suffix.
func CountTradesByNoteDate(rows []models.ContractTradeRow) map[NoteDateKey]int {
	counts := make(map[NoteDateKey]int, len(rows))
	for i := range rows {
		k := NoteDateKey{NoteKey: NoteKeyForTrade(&rows[i]), Date: rows[i].TradeDate}
		counts[k]++
	}
	return counts
}

// NoteDisplay formats a note key for presentation.
func NoteDisplay(noteKey string, count int) string {
	if noteKey == "" || noteKey == NoteKeySentinel {
		return NoteKeySentinel
	}
	if count > 1 {
		return noteKey + " (MULTI)"
	}
	return noteKey
}

// notePalette is the fixed base palette for note grouping.
var notePalette = []string{
	"#f8fafc",
	"#eff6ff",
	"#fef3c7",
	"#ecfdf3",
	"#ffe4e6",
	"#eef2ff",
	"#f0fdfa",
	"#fff7ed",
	"#fdf2f8",
	"#f1f5f9",
	"#e0f2fe",
	"#fef9c3",
	"#ecfccb",
	"#fae8ff",
	"#fee2e2",
	"#e0f2f1",
	"#ede9fe",
	"#f5f5f4",
	"#fef2f2",
	"#f8f8f8",
}

// goldenAngle spaces overflow hues so colors stay distinct indefinitely.
const goldenAngle = 137.508

// AssignColors maps each distinct note key (first-seen order, sentinel
// excluded) to a color. Keys beyond the palette get a golden-angle hue
// rotation. The function is pure: the same ordered key sequence always
// produces the same mapping.
func AssignColors(orderedNoteKeys []string) map[string]string {
	colors := make(map[string]string)
	idx := 0
	for _, key := range orderedNoteKeys {
		if key == "" || key == NoteKeySentinel {
			continue
		}
		if _, ok := colors[key]; ok {
			continue
		}
		if idx < len(notePalette) {
			colors[key] = notePalette[idx]
		} else {
			hue := math.Mod(float64(idx)*goldenAngle, 360)
			colors[key] = "hsl(" + strconv.FormatFloat(hue, 'f', -1, 64) + " 70% 96%)"
		}
		idx++
	}
	return colors
}
