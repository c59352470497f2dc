// backend/src/parsers/zerodha/contract_note_test.go
package zerodha

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContractNote = `Zerodha Broking Ltd,Contract Note No: CN-2025-001,,,,,,,,,
Equity,,,07-11-2025,,,,,,,
,INFY-EQ,,,10,,,1500.50,,,-15005
,TCS-EQ,,,-5,,,3000,,,15000
Taxable value of Supply,,,,,,,,,,-20
Exchange transaction charges,,,,,,,,,,-3.45
IGST,,,,,,,,,,-4.21
SEBI turnover fees,,,,,,,,,,-0.10
Stamp duty,,,,,,,,,,-1.50
Net amount receivable by client (payable by member),,,,,,,,,,-15034.26
`

func TestParseContractNote(t *testing.T) {
	data, err := ParseContractNote(strings.NewReader(sampleContractNote), "CN-2025-001.csv")
	require.NoError(t, err)

	require.Len(t, data.TradeRows, 2)
	infy := data.TradeRows[0]
	assert.Equal(t, "INFY-EQ", infy.SecurityDesc)
	assert.Equal(t, "2025-11-07", infy.TradeDate)
	assert.Equal(t, 10.0, infy.Quantity.Value)
	assert.Equal(t, 1500.50, infy.GrossRate.Value)
	assert.Equal(t, -15005.0, infy.NetTotal.Value)
	assert.Equal(t, "CN-2025-001", infy.ContractNoteNo)

	// Negative quantity encodes a sell; the row is kept as-is.
	assert.Equal(t, -5.0, data.TradeRows[1].Quantity.Value)

	charge := data.Charge
	require.NotNil(t, charge)
	assert.Equal(t, "2025-11-07", charge.TradeDate)
	assert.Equal(t, "CN-2025-001", charge.ContractNoteNo)
	// Charge components are stored as magnitudes.
	assert.Equal(t, 20.0, charge.TaxableValueOfSupply.Value)
	assert.Equal(t, 3.45, charge.ExchangeTxnCharges.Value)
	assert.Equal(t, 4.21, charge.IGST.Value)
	assert.Equal(t, 0.10, charge.SEBITurnoverFees.Value)
	assert.Equal(t, 1.50, charge.StampDuty.Value)
	// The settlement line keeps its sign.
	assert.Equal(t, -15034.26, charge.NetAmountReceivable.Value)
	assert.False(t, charge.Brokerage.Valid)
}

func TestParseContractNoteWithoutNoteNumberFallsBackToFileName(t *testing.T) {
	note := `Some broker,,,,,,,,,,
Equity,,,07-11-2025,,,,,,,
,INFY-EQ,,,10,,,1500.50,,,-15005
`
	data, err := ParseContractNote(strings.NewReader(note), "nov07.csv")
	require.NoError(t, err)
	require.Len(t, data.TradeRows, 1)
	assert.Equal(t, "", data.TradeRows[0].ContractNoteNo)
	assert.Equal(t, "nov07.csv", data.TradeRows[0].FileName)
}

func TestParseContractNoteEmptyFile(t *testing.T) {
	_, err := ParseContractNote(strings.NewReader(""), "empty.csv")
	assert.Error(t, err)
}

func TestParseContractNoteSkipsNoiseRows(t *testing.T) {
	note := `Header,,,,,,,,,,
Equity,,,07-11-2025,,,,,,,
Subtotal,INFY-EQ,,,10,,,1500.50,,,-15005
,,,,10,,,1500.50,,,-15005
,INFY-EQ,,,0,,,1500.50,,,-15005
`
	data, err := ParseContractNote(strings.NewReader(note), "noise.csv")
	require.NoError(t, err)
	// Labeled rows, blank descriptions, and zero quantities are not trades.
	assert.Empty(t, data.TradeRows)
}
