package service

import (
	"errors"
	"time"
)

// 校验类错误：进入投影计算前即拒绝，除 §documented 的月长截断外不做任何静默修正
var (
	ErrInvalidDayOfMonth    = errors.New("day_of_month 必须在 1-31 之间")
	ErrInvalidAmount        = errors.New("金额必须为非负数")
	ErrUnsupportedFrequency = errors.New("目前仅支持 monthly 周期")
)

// DateOnly 截断到日历日，统一使用 UTC 表示纯日期，避免跨时区的差一天问题
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolvePayday 计算一个周期项目的下一个具体扣款日
// 规则：
//  1. 在 from 所在月份取 dayOfMonth 对应日期，月份不足该天数时截断到当月最后一天（如 2 月的 31 号）
//  2. nearestWorkingDay 为 true 且落在周末时，逐天向前（只向前，不向后）移动到工作日
//  3. 结果早于或等于 from（已过期或就是今天）时，按同样规则对下一个月重新计算
//
// 纯函数，无 I/O，只做日历运算
func ResolvePayday(dayOfMonth int, from time.Time, nearestWorkingDay bool) (time.Time, error) {
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return time.Time{}, ErrInvalidDayOfMonth
	}

	anchor := DateOnly(from)
	// 周末回退可能把下个月 1 号拉回本月末，极端情况下需要再往后推一个月
	for offset := 0; ; offset++ {
		due := resolveInMonth(anchor.Year(), anchor.Month()+time.Month(offset), dayOfMonth, nearestWorkingDay)
		if due.After(anchor) {
			return due, nil
		}
	}
}

// resolveInMonth 在指定月份内定位扣款日并做截断与周末调整
func resolveInMonth(year int, month time.Month, dayOfMonth int, nearestWorkingDay bool) time.Time {
	// 当月最后一天：下月 0 号
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := dayOfMonth
	if day > lastDay {
		day = lastDay
	}

	due := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if nearestWorkingDay {
		for due.Weekday() == time.Saturday || due.Weekday() == time.Sunday {
			due = due.AddDate(0, 0, -1)
		}
	}
	return due
}
