package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePayday(t *testing.T) {
	// 2026-09-01 是周二，2026-09-05 是周六
	from := date(2026, 9, 1)

	due, err := ResolvePayday(15, from, false)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 9, 15), due)

	// 落在周六且启用就近工作日：回退到周五
	due, err = ResolvePayday(5, from, true)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 9, 4), due)

	// 落在周日同样回退到周五
	due, err = ResolvePayday(6, from, true)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 9, 4), due)

	// 不启用就近工作日则周末原样返回
	due, err = ResolvePayday(5, from, false)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 9, 5), due)
}

func TestResolvePayday_StrictlyAfterAnchor(t *testing.T) {
	// 扣款日恰好等于锚点：顺延到下个月
	due, err := ResolvePayday(15, date(2026, 9, 15), false)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 10, 15), due)

	// 扣款日已过：同样顺延
	due, err = ResolvePayday(10, date(2026, 9, 20), false)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 10, 10), due)

	// 周末回退后恰好等于锚点（9-05 周六 -> 9-04 周五）：顺延到 10-05 周一
	due, err = ResolvePayday(5, date(2026, 9, 4), true)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 10, 5), due)
}

func TestResolvePayday_MonthClamp(t *testing.T) {
	// 2 月没有 31 号：截断到 2 月最后一天
	due, err := ResolvePayday(31, date(2026, 2, 1), false)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 2, 28), due)

	// 闰年截断到 2 月 29 日
	due, err = ResolvePayday(31, date(2028, 2, 1), false)
	require.NoError(t, err)
	assert.Equal(t, date(2028, 2, 29), due)

	// 30 号在 4 月正常存在，不截断
	due, err = ResolvePayday(30, date(2026, 4, 1), false)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 4, 30), due)
}

func TestResolvePayday_BackwardShiftCrossesMonth(t *testing.T) {
	// 2026-08-01 是周六，回退后落到 7-31；锚点就是 7-31 时需要再推一个月，
	// 8 月的候选仍不满足"严格晚于锚点"之外还会撞上 7-31，最终落到 9-01
	due, err := ResolvePayday(1, date(2026, 7, 31), true)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 9, 1), due)
}

func TestResolvePayday_InvalidDay(t *testing.T) {
	_, err := ResolvePayday(0, date(2026, 9, 1), false)
	assert.ErrorIs(t, err, ErrInvalidDayOfMonth)

	_, err = ResolvePayday(32, date(2026, 9, 1), true)
	assert.ErrorIs(t, err, ErrInvalidDayOfMonth)
}

func TestResolvePayday_Properties(t *testing.T) {
	// 覆盖一整年的所有起点与所有 day_of_month 组合
	for from := date(2026, 1, 1); from.Year() == 2026; from = from.AddDate(0, 0, 1) {
		for day := 1; day <= 31; day++ {
			due, err := ResolvePayday(day, from, true)
			require.NoError(t, err)
			assert.True(t, due.After(from), "结果必须严格晚于锚点: day=%d from=%s got=%s", day, from, due)
			assert.NotEqual(t, time.Saturday, due.Weekday(), "day=%d from=%s", day, from)
			assert.NotEqual(t, time.Sunday, due.Weekday(), "day=%d from=%s", day, from)

			due, err = ResolvePayday(day, from, false)
			require.NoError(t, err)
			assert.True(t, due.After(from))
			// 截断只会向前：结果的日号不会超过请求的日号
			assert.LessOrEqual(t, due.Day(), day)
		}
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	got := DateOnly(time.Date(2026, 9, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, date(2026, 9, 1), got)
	assert.Equal(t, time.UTC, got.Location())
}
