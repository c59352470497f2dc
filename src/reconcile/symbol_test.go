// backend/src/reconcile/symbol_test.go
package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/brokerledger/backend/src/models"
)

func TestExtractSymbol(t *testing.T) {
	testCases := []struct {
		name     string
		desc     string
		expected string
	}{
		{"hyphenated series suffix", "INFY-EQ", "INFY"},
		{"only first hyphen splits", "M-M-EQ", "M"},
		{"no hyphen returns whole", "RELIANCE", "RELIANCE"},
		{"surrounding whitespace trimmed", "  TCS - EQ", "TCS"},
		{"whitespace only falls back to trimmed whole", "   ", ""},
		{"empty description", "", ""},
		{"leading hyphen keeps trimmed whole", "-EQ", "-EQ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractSymbol(tc.desc))
		})
	}
}

func TestNormalizeAliases(t *testing.T) {
	aliases := NormalizeAliases([]models.SymbolAlias{
		{FromSymbol: "zomato", ToSymbol: "eternal"},
		{FromSymbol: " IRCTC ", ToSymbol: "IRCTC"},
		{FromSymbol: "", ToSymbol: "X"},
		{FromSymbol: "Y", ToSymbol: "  "},
	})

	assert.Equal(t, map[string]string{
		"ZOMATO": "ETERNAL",
		"IRCTC":  "IRCTC",
	}, aliases)
}

func TestResolveAlias(t *testing.T) {
	aliases := map[string]string{"ZOMATO": "ETERNAL"}

	assert.Equal(t, "ETERNAL", ResolveAlias(aliases, "zomato"))
	assert.Equal(t, "INFY", ResolveAlias(aliases, "INFY"))
	assert.Equal(t, "INFY", ResolveAlias(nil, "infy"))
}
