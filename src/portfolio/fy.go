// backend/src/portfolio/fy.go

// Package portfolio turns committed trades and contract-note charges into the
// dashboard's financial metrics: FIFO holdings, realized P&L, and the
// per-financial-year series.
package portfolio

import (
	"fmt"
	"time"
)

// FinancialYear maps a calendar date to its financial-year label. The FY runs
// April through March and is labeled by its ending calendar year: June 2024
// is FY2025, January 2024 is FY2024.
func FinancialYear(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.April {
		year++
	}
	return fmt.Sprintf("FY%d", year)
}

// FinancialYearOfDate is FinancialYear for a YYYY-MM-DD string. Unparsable
// dates yield an empty label rather than an error.
func FinancialYearOfDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return FinancialYear(t)
}

// CurrentFinancialYear returns the FY label of today.
func CurrentFinancialYear() string {
	return FinancialYear(time.Now())
}

// FYEndDate returns the last day (YYYY-MM-DD) of the given FY label, or ""
// when the label carries no parsable year.
func FYEndDate(fy string) string {
	var year int
	if _, err := fmt.Sscanf(fy, "FY%d", &year); err != nil {
		return ""
	}
	return fmt.Sprintf("%04d-03-31", year)
}
