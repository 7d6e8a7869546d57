package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleDateLayout 周期起始日期的统一格式
const CycleDateLayout = "2006-01-02"

// BudgetCycle 预算周期模型，一个周期即一个发薪月，自然键为 (user_id, cycle_start)
// 周期行创建后除快照字段外不可变
type BudgetCycle struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_cycle_natural"`
	CycleStart     time.Time       `json:"cycle_start" gorm:"type:date;not null;uniqueIndex:idx_cycle_natural"`
	ActualPay      decimal.Decimal `json:"actual_pay" gorm:"type:decimal(12,2);not null"`      // 本周期实发工资快照
	CurrentBalance decimal.Decimal `json:"current_balance" gorm:"type:decimal(12,2);not null"` // 周期创建时的余额快照
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	User           User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (BudgetCycle) TableName() string {
	return "budget_cycles"
}

// BudgetProgress 周期内单个项目的已付/未付台账
// (user_id, cycle_start, item_key) 唯一，这是"本期账单是否已付"的幂等边界；
// 没有台账行表示"本期尚未记账"，与 is_paid=false 是两种不同状态
type BudgetProgress struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	UserID       uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_natural"`
	CycleStart   time.Time       `json:"cycle_start" gorm:"type:date;not null;uniqueIndex:idx_progress_natural"`
	ItemKey      string          `json:"item_key" gorm:"size:50;not null;uniqueIndex:idx_progress_natural"`
	IsPaid       bool            `json:"is_paid" gorm:"not null"`
	ActualAmount decimal.Decimal `json:"actual_amount" gorm:"type:decimal(12,2);not null"` // 实付金额，可偏离计划金额
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	User         User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (BudgetProgress) TableName() string {
	return "budget_progresses"
}
