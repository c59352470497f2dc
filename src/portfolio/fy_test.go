// backend/src/portfolio/fy_test.go
package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFinancialYear(t *testing.T) {
	// April through March, labeled by the ending calendar year.
	assert.Equal(t, "FY2025", FinancialYear(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "FY2024", FinancialYear(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "FY2025", FinancialYear(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "FY2024", FinancialYear(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFinancialYearOfDate(t *testing.T) {
	assert.Equal(t, "FY2026", FinancialYearOfDate("2025-11-07"))
	assert.Equal(t, "FY2025", FinancialYearOfDate("2025-02-01"))
	assert.Equal(t, "", FinancialYearOfDate("07-11-2025"))
	assert.Equal(t, "", FinancialYearOfDate(""))
}

func TestFYEndDate(t *testing.T) {
	assert.Equal(t, "2025-03-31", FYEndDate("FY2025"))
	assert.Equal(t, "", FYEndDate("not-a-fy"))
}
