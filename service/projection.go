package service

import (
	"fmt"
	"sort"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
)

// DefaultHorizonDays 默认投影天数
const DefaultHorizonDays = 30

// ProjectionPoint 单日余额投影点，按需推导，不落库
type ProjectionPoint struct {
	Date             time.Time       `json:"date"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
}

// Breach 透支预警：某一天应用当日收支后余额跌破 -透支额度
type Breach struct {
	Date      time.Time       `json:"date"`
	ItemKey   string          `json:"item_key"`  // 触发项目
	ItemName  string          `json:"item_name"`
	Balance   decimal.Decimal `json:"balance"`   // 应用该项目后的余额
	Shortfall decimal.Decimal `json:"shortfall"` // 与 -透支额度 的差距
}

// ValidateItem 投影前的项目校验，失败即拒绝，不重试
func ValidateItem(item *models.RecurringItem) error {
	if item.DayOfMonth < 1 || item.DayOfMonth > 31 {
		return fmt.Errorf("项目 %d: %w", item.ID, ErrInvalidDayOfMonth)
	}
	if item.Amount.IsNegative() {
		return fmt.Errorf("项目 %d: %w", item.ID, ErrInvalidAmount)
	}
	if item.Frequency != models.FrequencyMonthly {
		return fmt.Errorf("项目 %d: %w", item.ID, ErrUnsupportedFrequency)
	}
	return nil
}

// Project 计算账户在 [today, today+horizonDays] 内逐日余额轨迹及透支预警
// today 作为显式参数注入，保证计算确定可复现；第 0 天为当前余额，
// 扣款日解析永远严格晚于锚点，所以最早的收支变动落在第 1 天
//
// 同日顺序规则：先入账后出账，保证当天到账的工资可以覆盖当天的账单（设计决策）
func Project(account *models.Account, items []models.RecurringItem, horizonDays int, today time.Time) ([]ProjectionPoint, []Breach, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if account.OverdraftLimit.IsNegative() {
		return nil, nil, fmt.Errorf("账户 %d: 透支额度不能为负", account.ID)
	}

	today = DateOnly(today)

	// 过滤出本账户的活跃项目并预先排序：收入在前，同类按 ID 稳定排列
	active := make([]models.RecurringItem, 0, len(items))
	for _, item := range items {
		if !item.Active || item.AccountID != account.ID {
			continue
		}
		if err := ValidateItem(&item); err != nil {
			return nil, nil, err
		}
		active = append(active, item)
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].IsIncome() != active[j].IsIncome() {
			return active[i].IsIncome()
		}
		return active[i].ID < active[j].ID
	})

	// 逐项目展开窗口内的全部扣款日，偏移量（天）-> 当日项目列表
	end := today.AddDate(0, 0, horizonDays)
	dueByOffset := make(map[int][]*models.RecurringItem)
	for i := range active {
		item := &active[i]
		anchor := today
		for {
			due, err := ResolvePayday(item.DayOfMonth, anchor, item.NearestWorkingDay)
			if err != nil {
				return nil, nil, err
			}
			if due.After(end) {
				break
			}
			offset := int(due.Sub(today).Hours() / 24)
			dueByOffset[offset] = append(dueByOffset[offset], item)
			anchor = due
		}
	}

	running := account.CurrentBalance
	floor := account.OverdraftLimit.Neg()

	points := make([]ProjectionPoint, 0, horizonDays+1)
	points = append(points, ProjectionPoint{Date: today, ProjectedBalance: running.Round(2)})

	var breaches []Breach
	for d := 1; d <= horizonDays; d++ {
		date := today.AddDate(0, 0, d)
		breached := false
		for _, item := range dueByOffset[d] {
			running = running.Add(item.SignedAmount())
			if !breached && running.LessThan(floor) {
				breaches = append(breaches, Breach{
					Date:      date,
					ItemKey:   item.ItemKey(),
					ItemName:  item.Name,
					Balance:   running.Round(2),
					Shortfall: running.Sub(floor).Abs().Round(2),
				})
				breached = true
			}
		}
		points = append(points, ProjectionPoint{Date: date, ProjectedBalance: running.Round(2)})
	}

	return points, breaches, nil
}
