package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Drawdown 回撤/可支配额度计算结果
type Drawdown struct {
	LowestPoint decimal.Decimal `json:"lowest_point"`   // 窗口内最低投影余额
	SafeToSpend decimal.Decimal `json:"safe_to_spend"`  // 今天可花而不致未来透支的额度，0 表示已处于风险中
	AsOfDate    time.Time       `json:"as_of_date"`
}

// SafeToSpend 由投影序列推导可支配额度
// safe_to_spend = max(0, 最低点)：今天多花的每一块钱都会把整条轨迹同步下移，
// 最低点已经 <= 0（含已跌破 -透支额度的情况）时上报 0 而非负数，
// 消费方须把 0 理解为"已处于风险中"，与"健康但紧张"区分开
func SafeToSpend(points []ProjectionPoint) Drawdown {
	if len(points) == 0 {
		return Drawdown{LowestPoint: decimal.Zero, SafeToSpend: decimal.Zero}
	}

	lowest := points[0].ProjectedBalance
	for _, p := range points[1:] {
		if p.ProjectedBalance.LessThan(lowest) {
			lowest = p.ProjectedBalance
		}
	}

	safe := lowest
	if safe.IsNegative() {
		safe = decimal.Zero
	}

	return Drawdown{
		LowestPoint: lowest.Round(2),
		SafeToSpend: safe.Round(2),
		AsOfDate:    points[0].Date,
	}
}
