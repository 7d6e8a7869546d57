package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"budget/config"
	"budget/models"

	"gopkg.in/gomail.v2"
)

// BreachNotifier 透支预警通知服务
// 投影本身无状态、可随时重算，通知侧负责冷却去重：同一账户在冷却窗口内
// 只发送一次预警，避免每轮巡检都重复打扰
type BreachNotifier struct {
	cfg      *config.EmailConfig
	cooldown time.Duration

	mu       sync.Mutex
	lastSent map[uint]time.Time // 账户ID -> 上次发送时间
}

// NewBreachNotifier 创建透支预警通知服务
func NewBreachNotifier(cfg *config.EmailConfig, cooldown time.Duration) *BreachNotifier {
	return &BreachNotifier{
		cfg:      cfg,
		cooldown: cooldown,
		lastSent: make(map[uint]time.Time),
	}
}

// shouldNotify 冷却判断，命中冷却返回 false；通过时立即占位，并发巡检不会重复发送
func (n *BreachNotifier) shouldNotify(accountID uint, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if last, ok := n.lastSent[accountID]; ok && now.Sub(last) < n.cooldown {
		return false
	}
	n.lastSent[accountID] = now
	return true
}

// NotifyBreaches 就某账户的预警列表发送通知邮件
// 邮件服务未启用、无预警或命中冷却时静默跳过（返回 nil）
func (n *BreachNotifier) NotifyBreaches(user *models.User, account *models.Account, breaches []Breach, now time.Time) error {
	if len(breaches) == 0 {
		return nil
	}
	if !n.cfg.Enabled || user.Email == "" {
		return nil
	}
	if !n.shouldNotify(account.ID, now) {
		return nil
	}

	subject := fmt.Sprintf("【家庭预算】透支预警 - %s", account.Name)
	body := generateBreachEmailBody(user.Username, account.Name, breaches)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.Username, n.cfg.From))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送预警邮件失败: %w", err)
	}
	return nil
}

// generateBreachEmailBody 生成预警邮件内容
func generateBreachEmailBody(username, accountName string, breaches []Breach) string {
	var rows strings.Builder
	for _, b := range breaches {
		rows.WriteString(fmt.Sprintf(`
            <tr>
                <td>%s</td>
                <td>%s</td>
                <td class="neg">%s</td>
                <td class="neg">%s</td>
            </tr>`,
			b.Date.Format("2006-01-02"), b.ItemName, b.Balance.StringFixed(2), b.Shortfall.StringFixed(2)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #dc2626, #b91c1c); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        th { background: #fef2f2; color: #991b1b; padding: 10px; text-align: left; font-size: 14px; }
        td { padding: 10px; border-bottom: 1px solid #eee; font-size: 14px; color: #333; }
        .neg { color: #dc2626; font-weight: 600; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>⚠️ 透支预警</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>按照当前的周期性收支安排，账户 <strong>%s</strong> 在未来的投影窗口内将跌破透支额度：</p>
            <table>
                <tr><th>日期</th><th>触发项目</th><th>预计余额</th><th>缺口</th></tr>%s
            </table>
            <p>建议提前调整支出安排或转入资金。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 家庭预算 - 您的家庭财务助手</p>
        </div>
    </div>
</body>
</html>
`, username, accountName, rows.String())
}
