package service

import (
	"errors"
	"fmt"

	"budget/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DisplayableAccount 扁平账户视图中的一行：普通账户本体，或储蓄账户名下的一个储蓄罐
type DisplayableAccount struct {
	Kind          string           `json:"kind"` // account / pot
	AccountID     uint             `json:"account_id"`
	PotID         uint             `json:"pot_id,omitempty"`
	Name          string           `json:"name"`
	Balance       decimal.Decimal  `json:"balance"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"` // 仅储蓄罐有目标金额
}

// 视图行类型常量
const (
	DisplayKindAccount = "account"
	DisplayKindPot     = "pot"
)

// EffectiveAccounts 计算用于预算汇总的扁平账户视图
// 展示规则：挂有至少一个储蓄罐的储蓄账户不直接出现在视图里，由它的储蓄罐代替；
// 没有储蓄罐的储蓄账户正常展示。这样同一笔钱不会既算作账户余额又算作储蓄罐余额
func EffectiveAccounts(accounts []models.Account, pots []models.Pot) []DisplayableAccount {
	potsByAccount := make(map[uint][]models.Pot)
	for _, p := range pots {
		potsByAccount[p.AccountID] = append(potsByAccount[p.AccountID], p)
	}

	view := make([]DisplayableAccount, 0, len(accounts))
	for _, acct := range accounts {
		owned := potsByAccount[acct.ID]
		if acct.IsSavings() && len(owned) > 0 {
			for _, p := range owned {
				target := p.TargetAmount.Round(2)
				view = append(view, DisplayableAccount{
					Kind:         DisplayKindPot,
					AccountID:    acct.ID,
					PotID:        p.ID,
					Name:         p.Name,
					Balance:      p.CurrentAmount.Round(2),
					TargetAmount: &target,
				})
			}
			continue
		}
		view = append(view, DisplayableAccount{
			Kind:      DisplayKindAccount,
			AccountID: acct.ID,
			Name:      acct.Name,
			Balance:   acct.CurrentBalance.Round(2),
		})
	}
	return view
}

// ApplyPotPayment 记录一笔储蓄罐供款
// 储蓄罐是父账户余额中的虚拟预留：供款只增加罐内金额，不改变父账户余额
// （钱本来就在储蓄账户里，展示规则负责避免重复计算）。罐与父账户在同一事务内
// 加锁并写入，并发读取方不可能观察到只更新了一半的状态
func ApplyPotPayment(db *gorm.DB, userID uint, potID uint, amount decimal.Decimal) (*models.Pot, *models.Account, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	amount = amount.Round(2)

	var pot models.Pot
	var account models.Account

	err := withWriteRetry(func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&pot, "id = ?", potID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("储蓄罐 %d: %w", potID, ErrNotFound)
				}
				return err
			}

			// 父账户同时校验租户归属，跨家庭的罐对调用方表现为不存在
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&account, "id = ? AND user_id = ?", pot.AccountID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("储蓄罐 %d: %w", potID, ErrNotFound)
				}
				return err
			}

			pot.CurrentAmount = pot.CurrentAmount.Add(amount).Round(2)
			if err := tx.Model(&models.Pot{}).Where("id = ?", pot.ID).
				Update("current_amount", pot.CurrentAmount).Error; err != nil {
				return err
			}

			// 成对写入父账户行：余额按虚拟预留语义保持不变，但行本身在同一事务里落一次写
			account.CurrentBalance = account.CurrentBalance.Round(2)
			if err := tx.Model(&models.Account{}).Where("id = ?", account.ID).
				Update("current_balance", account.CurrentBalance).Error; err != nil {
				return err
			}
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}

	return &pot, &account, nil
}
