package service

import (
	"testing"
	"time"

	"budget/config"
	"budget/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBreachEmailBody(t *testing.T) {
	breaches := []Breach{
		{Date: date(2026, 9, 5), ItemKey: "mortgage_3", ItemName: "房贷月供", Balance: dec("-500.00"), Shortfall: dec("500.00")},
		{Date: date(2026, 9, 20), ItemKey: "charge_7", ItemName: "水电费", Balance: dec("-620.50"), Shortfall: dec("620.50")},
	}

	body := generateBreachEmailBody("张三", "日常账户", breaches)
	assert.Contains(t, body, "张三")
	assert.Contains(t, body, "日常账户")
	assert.Contains(t, body, "透支预警")
	assert.Contains(t, body, "2026-09-05")
	assert.Contains(t, body, "房贷月供")
	assert.Contains(t, body, "-500.00")
	assert.Contains(t, body, "620.50")
}

func TestBreachNotifier_Cooldown(t *testing.T) {
	n := NewBreachNotifier(&config.EmailConfig{Enabled: true}, time.Hour)
	now := time.Now()

	assert.True(t, n.shouldNotify(1, now))
	// 冷却窗口内同一账户不再发送
	assert.False(t, n.shouldNotify(1, now.Add(30*time.Minute)))
	// 不同账户互不影响
	assert.True(t, n.shouldNotify(2, now))
	// 冷却期满后恢复发送
	assert.True(t, n.shouldNotify(1, now.Add(2*time.Hour)))
}

func TestNotifyBreaches_SilentSkips(t *testing.T) {
	user := &models.User{ID: 1, Username: "张三", Email: "zhangsan@example.com"}
	account := &models.Account{ID: 1, Name: "日常账户"}
	breaches := []Breach{{Date: date(2026, 9, 5), ItemName: "房贷", Balance: dec("-500"), Shortfall: dec("500")}}

	// 无预警：跳过
	n := NewBreachNotifier(&config.EmailConfig{Enabled: true}, time.Hour)
	assert.NoError(t, n.NotifyBreaches(user, account, nil, time.Now()))

	// 邮件服务未启用：跳过
	n = NewBreachNotifier(&config.EmailConfig{Enabled: false}, time.Hour)
	assert.NoError(t, n.NotifyBreaches(user, account, breaches, time.Now()))

	// 用户没有邮箱：跳过
	n = NewBreachNotifier(&config.EmailConfig{Enabled: true}, time.Hour)
	noEmail := &models.User{ID: 2, Username: "李四"}
	assert.NoError(t, n.NotifyBreaches(noEmail, account, breaches, time.Now()))
}
