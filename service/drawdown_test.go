package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeToSpend(t *testing.T) {
	points := []ProjectionPoint{
		{Date: date(2026, 9, 1), ProjectedBalance: dec("1000")},
		{Date: date(2026, 9, 2), ProjectedBalance: dec("300.50")},
		{Date: date(2026, 9, 3), ProjectedBalance: dec("800")},
	}

	d := SafeToSpend(points)
	assert.True(t, d.LowestPoint.Equal(dec("300.50")))
	assert.True(t, d.SafeToSpend.Equal(dec("300.50")))
	assert.Equal(t, date(2026, 9, 1), d.AsOfDate)
}

func TestSafeToSpend_NegativeLowestReportsZero(t *testing.T) {
	// 最低点为负：可支配额度上报 0，表示已处于风险中
	points := []ProjectionPoint{
		{Date: date(2026, 9, 1), ProjectedBalance: dec("1000")},
		{Date: date(2026, 9, 5), ProjectedBalance: dec("-500")},
	}

	d := SafeToSpend(points)
	assert.True(t, d.LowestPoint.Equal(dec("-500")))
	assert.True(t, d.SafeToSpend.IsZero())
}

func TestSafeToSpend_TodayIsTheLowest(t *testing.T) {
	// 未来全是入账：今天就是最低点，可支配额度等于当前余额
	points := []ProjectionPoint{
		{Date: date(2026, 9, 1), ProjectedBalance: dec("200")},
		{Date: date(2026, 9, 15), ProjectedBalance: dec("2200")},
	}

	d := SafeToSpend(points)
	assert.True(t, d.SafeToSpend.Equal(dec("200")))
}

func TestSafeToSpend_EmptySeries(t *testing.T) {
	d := SafeToSpend(nil)
	require.True(t, d.LowestPoint.IsZero())
	require.True(t, d.SafeToSpend.IsZero())
}
