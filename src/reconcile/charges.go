// backend/src/reconcile/charges.go
package reconcile

import "github.com/username/brokerledger/backend/src/models"

// ChargeBrokerage resolves the brokerage amount of a charge row. Newer note
// layouts report "brokerage"; older ones report it as "taxable value of
// supply". The priority is brokerage first, then the legacy field.
func ChargeBrokerage(c *models.ContractChargeRow) models.OptFloat {
	if c == nil {
		return models.OptFloat{}
	}
	if c.Brokerage.Valid {
		return c.Brokerage
	}
	return c.TaxableValueOfSupply
}

// ChargeSEBIFees resolves the SEBI fee: "SEBI turnover fees" first, then the
// legacy "SEBI transaction tax" field.
func ChargeSEBIFees(c *models.ContractChargeRow) models.OptFloat {
	if c == nil {
		return models.OptFloat{}
	}
	if c.SEBITurnoverFees.Valid {
		return c.SEBITurnoverFees
	}
	return c.SEBITxnTax
}
