package service

import (
	"context"
	"log"
	"time"

	"budget/config"
	"budget/database"
	"budget/models"
)

// Scheduler 后台巡检：周期性地为每个活跃账户重算余额投影，
// 把透支预警交给通知服务。投影无状态、永远不会半应用，巡检是 fire-and-forget
type Scheduler struct {
	cfg      *config.Config
	notifier *BreachNotifier
}

// NewScheduler 创建后台巡检服务
func NewScheduler(cfg *config.Config) *Scheduler {
	cooldown := time.Duration(cfg.Projection.AlertCooldownHours) * time.Hour
	return &Scheduler{
		cfg:      cfg,
		notifier: NewBreachNotifier(&cfg.Email, cooldown),
	}
}

// Start 启动巡检循环，ctx 取消后退出
func (s *Scheduler) Start(ctx context.Context) {
	interval := s.cfg.Projection.SchedulerInterval
	log.Printf("后台巡检已启动，间隔 %v", interval)

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		// 启动后先跑一轮，不等第一个间隔
		s.RunOnce(ctx, time.Now())
		for {
			select {
			case <-ctx.Done():
				log.Println("后台巡检已停止")
				return
			case <-ticker.C:
				s.RunOnce(ctx, time.Now())
			}
		}
	}()
}

// RunOnce 对全部家庭执行一轮投影巡检
// 单个家庭的失败只记录日志，绝不影响其他家庭的计算（租户间无共享可变状态）
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) {
	tctx, cancel := context.WithTimeout(ctx, s.cfg.Projection.Timeout)
	defer cancel()
	db := database.DB.WithContext(tctx)

	var users []models.User
	if err := db.Where("status = ?", models.UserStatusActive).Find(&users).Error; err != nil {
		log.Printf("巡检: 查询家庭列表失败: %v", err)
		return
	}

	for i := range users {
		user := &users[i]
		if err := s.sweepUser(ctx, user, now); err != nil {
			log.Printf("巡检: 家庭 %d 投影失败: %v", user.ID, err)
		}
	}
}

// sweepUser 重算单个家庭名下全部账户的投影并发送预警
func (s *Scheduler) sweepUser(ctx context.Context, user *models.User, now time.Time) error {
	tctx, cancel := context.WithTimeout(ctx, s.cfg.Projection.Timeout)
	defer cancel()
	db := database.DB.WithContext(tctx)

	var accounts []models.Account
	if err := db.Where("user_id = ?", user.ID).Find(&accounts).Error; err != nil {
		return err
	}

	var items []models.RecurringItem
	if err := db.Where("user_id = ? AND active = ?", user.ID, true).Find(&items).Error; err != nil {
		return err
	}

	for i := range accounts {
		acct := &accounts[i]
		_, breaches, err := Project(acct, items, s.cfg.Projection.HorizonDays, now)
		if err != nil {
			// 校验类失败只影响该账户，继续巡检其余账户
			log.Printf("巡检: 账户 %d 投影失败: %v", acct.ID, err)
			continue
		}
		if len(breaches) == 0 {
			continue
		}
		if err := s.notifier.NotifyBreaches(user, acct, breaches, now); err != nil {
			log.Printf("巡检: 账户 %d 预警通知失败: %v", acct.ID, err)
		}
	}
	return nil
}
