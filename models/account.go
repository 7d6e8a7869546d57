package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account 类型常量
const (
	AccountTypeCurrent = "current" // 活期账户
	AccountTypeSavings = "savings" // 储蓄账户，可挂储蓄罐
)

// Account 银行账户模型
// CurrentBalance 可以为负，最低到 -OverdraftLimit；突破透支额度是可上报的状态而非硬约束
type Account struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"size:100;not null"`
	Type           string          `json:"type" gorm:"size:20;not null;default:current"`
	CurrentBalance decimal.Decimal `json:"current_balance" gorm:"type:decimal(12,2);not null"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit" gorm:"type:decimal(12,2);not null"` // 恒 >= 0
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
	User           User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "accounts"
}

// IsSavings 是否为储蓄账户
func (a *Account) IsSavings() bool {
	return a.Type == AccountTypeSavings
}
