package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pot 储蓄罐模型：储蓄账户余额中的一笔命名预留
// 各储蓄罐余额之和在概念上是对父账户余额的占用，展示时不得与账户余额重复计算
type Pot struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	AccountID     uint            `json:"account_id" gorm:"index;not null"` // 父储蓄账户
	Name          string          `json:"name" gorm:"size:100;not null"`
	TargetAmount  decimal.Decimal `json:"target_amount" gorm:"type:decimal(12,2);not null"`
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"type:decimal(12,2);not null"`
	DepositDay    int             `json:"deposit_day" gorm:"not null"` // 每月定投日 1-31
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
	Account       Account         `json:"-" gorm:"foreignKey:AccountID"`
}

// TableName 设置表名
func (Pot) TableName() string {
	return "pots"
}
