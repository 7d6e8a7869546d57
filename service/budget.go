package service

import (
	"errors"
	"fmt"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound 被引用的账户/储蓄罐/周期不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrConflict 同一自然键上的写入竞争，重试耗尽后上报，绝不静默吞掉
	ErrConflict = errors.New("写入冲突，请重试")
)

// writeRetries 自然键读改写的有限重试次数
const writeRetries = 3

// withWriteRetry 对瞬时写入失败（死锁、重复键竞争）做有限次重试
// 校验失败与记录不存在属于永久错误，直接上抛，不参与重试
func withWriteRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidAmount) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

// EnsureCycle 幂等创建预算周期：同一家庭同一 cycle_start 只会存在一行，
// 已存在时直接返回既有周期，不会重复创建
func EnsureCycle(db *gorm.DB, userID uint, cycleStart time.Time, actualPay, currentBalance decimal.Decimal) (*models.BudgetCycle, error) {
	cycleStart = DateOnly(cycleStart)

	cycle := models.BudgetCycle{
		UserID:         userID,
		CycleStart:     cycleStart,
		ActualPay:      actualPay.Round(2),
		CurrentBalance: currentBalance.Round(2),
	}

	// 自然键 (user_id, cycle_start) 上的条件插入，冲突时不做任何更新（周期行创建后不可变）
	err := withWriteRetry(func() error {
		return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cycle).Error
	})
	if err != nil {
		return nil, err
	}

	// 命中已有行时 Create 不回填字段，统一按自然键重查
	var existing models.BudgetCycle
	if err := db.Where("user_id = ? AND cycle_start = ?", userID, cycleStart).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("查询预算周期失败: %w", err)
	}
	return &existing, nil
}

// MarkPaid 记录（或更新）某个项目在某周期内的已付状态
// 按 (user_id, cycle_start, item_key) 幂等：重复调用只会原地更新 is_paid 和
// actual_amount，不会产生第二行台账——这是"付一笔账单"区别于"新建一笔账单"的关键不变量
func MarkPaid(db *gorm.DB, userID uint, cycleStart time.Time, itemKey string, actualAmount decimal.Decimal, isPaid bool) (*models.BudgetProgress, error) {
	if itemKey == "" {
		return nil, fmt.Errorf("item_key 不能为空")
	}
	if actualAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	cycleStart = DateOnly(cycleStart)

	// 周期必须已存在，否则视为未找到而非隐式创建
	var cycle models.BudgetCycle
	if err := db.Where("user_id = ? AND cycle_start = ?", userID, cycleStart).First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("预算周期 %s: %w", cycleStart.Format(models.CycleDateLayout), ErrNotFound)
		}
		return nil, err
	}

	progress := models.BudgetProgress{
		UserID:       userID,
		CycleStart:   cycleStart,
		ItemKey:      itemKey,
		IsPaid:       isPaid,
		ActualAmount: actualAmount.Round(2),
	}

	// 单条语句的自然键 upsert，竞争收敛到存储层而不是应用层的先查后插
	err := withWriteRetry(func() error {
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "cycle_start"}, {Name: "item_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_paid", "actual_amount", "updated_at"}),
		}).Create(&progress).Error
	})
	if err != nil {
		return nil, err
	}

	var saved models.BudgetProgress
	if err := db.Where("user_id = ? AND cycle_start = ? AND item_key = ?", userID, cycleStart, itemKey).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("查询台账失败: %w", err)
	}
	return &saved, nil
}

// CycleProgress 某周期的全部台账行；没有行表示"本期尚未记账"，是合法状态
func CycleProgress(db *gorm.DB, userID uint, cycleStart time.Time) ([]models.BudgetProgress, error) {
	cycleStart = DateOnly(cycleStart)

	var rows []models.BudgetProgress
	if err := db.Where("user_id = ? AND cycle_start = ?", userID, cycleStart).
		Order("item_key ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询台账失败: %w", err)
	}
	return rows, nil
}
