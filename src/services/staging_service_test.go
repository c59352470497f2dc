// backend/src/services/staging_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/brokerledger/backend/src/models"
)

func TestNoteNetTotal(t *testing.T) {
	charge := &models.ContractChargeRow{
		Brokerage:          models.Num(20),
		ExchangeTxnCharges: models.Num(3.45),
		IGST:               models.Num(4.21),
		SEBITurnoverFees:   models.Num(0.10),
		StampDuty:          models.Num(1.50),
	}

	// Components are magnitudes; the note total is a signed outflow.
	assert.InDelta(t, -29.26, noteNetTotal(charge), 1e-9)
}

func TestNoteNetTotalLegacyFieldFallback(t *testing.T) {
	charge := &models.ContractChargeRow{
		TaxableValueOfSupply: models.Num(20),
		SEBITxnTax:           models.Num(0.10),
	}
	assert.InDelta(t, -20.10, noteNetTotal(charge), 1e-9)
}

func TestMissingNoteDates(t *testing.T) {
	tradeRows := []models.TradebookRow{
		{Date: "2025-11-07"},
		{Date: "2025-11-08"},
		{Date: "2025-11-08"},
		{Date: "2025-11-05"},
		{Date: ""},
	}
	chargeRows := []models.ContractChargeRow{
		{TradeDate: "2025-11-07"},
	}

	missing := missingNoteDates(tradeRows, chargeRows)
	assert.Equal(t, []string{"2025-11-05", "2025-11-08"}, missing)
}

func TestMissingNoteDatesNoneMissing(t *testing.T) {
	tradeRows := []models.TradebookRow{{Date: "2025-11-07"}}
	chargeRows := []models.ContractChargeRow{{TradeDate: "2025-11-07"}}
	assert.Empty(t, missingNoteDates(tradeRows, chargeRows))
}
