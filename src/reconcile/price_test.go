// backend/src/reconcile/price_test.go
package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/brokerledger/backend/src/models"
)

func TestEffectiveContractPrice(t *testing.T) {
	testCases := []struct {
		name     string
		match    *models.ContractTradeRow
		expected models.OptFloat
	}{
		{
			"gross rate wins, sign stripped",
			&models.ContractTradeRow{GrossRate: models.Num(-250.5), Quantity: models.Num(10), NetTotal: models.Num(-5000)},
			models.Num(250.5),
		},
		{
			"net total over quantity when gross absent",
			&models.ContractTradeRow{Quantity: models.Num(10), NetTotal: models.Num(-5000)},
			models.Num(500),
		},
		{
			"zero quantity yields absent",
			&models.ContractTradeRow{Quantity: models.Num(0), NetTotal: models.Num(-5000)},
			models.OptFloat{},
		},
		{
			"zero net total yields absent",
			&models.ContractTradeRow{Quantity: models.Num(10), NetTotal: models.Num(0)},
			models.OptFloat{},
		},
		{
			"missing quantity yields absent",
			&models.ContractTradeRow{NetTotal: models.Num(-5000)},
			models.OptFloat{},
		},
		{"nil match yields absent", nil, models.OptFloat{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EffectiveContractPrice(tc.match))
		})
	}
}

func TestIsMismatch(t *testing.T) {
	testCases := []struct {
		name          string
		tradePrice    models.OptFloat
		contractPrice models.OptFloat
		expected      bool
	}{
		{"within flat floor", models.Num(100), models.Num(100.05), false},
		{"just past flat floor", models.Num(100), models.Num(100.2), true},
		{"within relative band on large price", models.Num(1000), models.Num(1000.8), false},
		{"past relative band on large price", models.Num(1000), models.Num(1001.5), true},
		{"no contract price means no mismatch", models.Num(100), models.OptFloat{}, false},
		{"no trade price means no mismatch", models.OptFloat{}, models.Num(100), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := models.TradebookRow{Price: tc.tradePrice}
			assert.Equal(t, tc.expected, IsMismatch(trade, tc.contractPrice))
		})
	}
}
