package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringItem 种类常量，金额符号由种类决定：收入为正，其余为负
const (
	KindCost            = "cost"             // 周期性支出（水电、订阅等）
	KindIncome          = "income"           // 周期性收入（工资等）
	KindMortgagePayment = "mortgage_payment" // 房贷月供
	KindPotDeposit      = "pot_deposit"      // 储蓄罐定投
)

// FrequencyMonthly 目前唯一支持的周期
const FrequencyMonthly = "monthly"

// RecurringItem 周期性收支项目模型
// 删除采用软停用（Active=false），历史周期记录仍引用该项目，不做物理删除
type RecurringItem struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	UserID            uint            `json:"user_id" gorm:"index;not null"`
	AccountID         uint            `json:"account_id" gorm:"index;not null"` // 归属账户
	Name              string          `json:"name" gorm:"size:100;not null"`
	Kind              string          `json:"kind" gorm:"size:20;not null"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"` // 无符号金额
	DayOfMonth        int             `json:"day_of_month" gorm:"not null"`              // 1-31
	Frequency         string          `json:"frequency" gorm:"size:20;not null;default:monthly"`
	NearestWorkingDay bool            `json:"nearest_working_day" gorm:"not null;default:false"`
	Active            bool            `json:"active" gorm:"not null;default:true;index"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `json:"-" gorm:"index"`
	User              User            `json:"-" gorm:"foreignKey:UserID"`
	Account           Account         `json:"-" gorm:"foreignKey:AccountID"`
}

// TableName 设置表名
func (RecurringItem) TableName() string {
	return "recurring_items"
}

// IsIncome 是否为入账项目
func (r *RecurringItem) IsIncome() bool {
	return r.Kind == KindIncome
}

// ItemKey 周期台账中使用的组合键，如 mortgage_3 / charge_12
func (r *RecurringItem) ItemKey() string {
	switch r.Kind {
	case KindMortgagePayment:
		return fmt.Sprintf("mortgage_%d", r.ID)
	case KindIncome:
		return fmt.Sprintf("income_%d", r.ID)
	case KindPotDeposit:
		return fmt.Sprintf("pot_%d", r.ID)
	default:
		return fmt.Sprintf("charge_%d", r.ID)
	}
}

// SignedAmount 按种类附加符号后的金额
func (r *RecurringItem) SignedAmount() decimal.Decimal {
	if r.IsIncome() {
		return r.Amount
	}
	return r.Amount.Neg()
}
