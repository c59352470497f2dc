// backend/src/reconcile/symbol.go
package reconcile

import (
	"strings"

	"github.com/username/brokerledger/backend/src/models"
)

// ExtractSymbol isolates the ticker from a free-text security description
// such as "INFY-EQ". The prefix before the first '-' wins; a description
// without one is returned whole.
func ExtractSymbol(desc string) string {
	if desc == "" {
		return ""
	}
	base, _, _ := strings.Cut(desc, "-")
	if s := strings.TrimSpace(base); s != "" {
		return s
	}
	return strings.TrimSpace(desc)
}

// NormalizeAliases upper-cases alias pairs and drops blank entries. Keys and
// values are compared as exact strings after this normalization.
func NormalizeAliases(aliases []models.SymbolAlias) map[string]string {
	out := make(map[string]string, len(aliases))
	for _, a := range aliases {
		from := strings.ToUpper(strings.TrimSpace(a.FromSymbol))
		to := strings.ToUpper(strings.TrimSpace(a.ToSymbol))
		if from == "" || to == "" {
			continue
		}
		out[from] = to
	}
	return out
}

// ResolveAlias returns the ticker to use for price lookups: the alias target
// if one exists, else the raw symbol unchanged. Works the same with zero,
// partial, or complete alias data.
func ResolveAlias(aliases map[string]string, symbol string) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if to, ok := aliases[sym]; ok && to != "" {
		return to
	}
	return sym
}
