package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"budget/config"
	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectionHandler 余额投影处理器
type ProjectionHandler struct {
	cfg *config.Config
}

// NewProjectionHandler 创建余额投影处理器
func NewProjectionHandler(cfg *config.Config) *ProjectionHandler {
	return &ProjectionHandler{cfg: cfg}
}

// loadAccountAndItems 在存储超时预算内读取账户与其活跃周期项目
// 超时上报不可用（fail closed），绝不返回陈旧或清零的投影
func (h *ProjectionHandler) loadAccountAndItems(c *gin.Context, userID uint) (*models.Account, []models.RecurringItem, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return nil, nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Projection.Timeout)
	defer cancel()
	db := database.DB.WithContext(ctx)

	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			Error(c, http.StatusServiceUnavailable, "投影暂时不可用，请稍后重试")
			return nil, nil, false
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "账户不存在")
			return nil, nil, false
		}
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return nil, nil, false
	}

	var items []models.RecurringItem
	if err := db.Where("user_id = ? AND account_id = ? AND active = ?", userID, account.ID, true).
		Order("id ASC").Find(&items).Error; err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			Error(c, http.StatusServiceUnavailable, "投影暂时不可用，请稍后重试")
			return nil, nil, false
		}
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return nil, nil, false
	}

	return &account, items, true
}

// GetProjection 获取账户余额投影
// @Summary 获取账户余额投影
// @Description 以今天为起点计算未来 horizon_days 天的逐日余额轨迹，并返回窗口内的透支预警列表
// @Tags 投影
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Param horizon_days query int false "投影天数" default(30)
// @Success 200 {object} Response "获取成功"
// @Failure 400 {object} Response "项目数据不合法"
// @Failure 404 {object} Response "账户不存在"
// @Failure 503 {object} Response "存储超时，投影不可用"
// @Router /api/v1/accounts/{id}/projection [get]
func (h *ProjectionHandler) GetProjection(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	horizon := h.cfg.Projection.HorizonDays
	if s := c.Query("horizon_days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 365 {
			BadRequest(c, "horizon_days 必须是 1-365 的整数")
			return
		}
		horizon = n
	}

	account, items, ok := h.loadAccountAndItems(c, userID)
	if !ok {
		return
	}

	today := service.DateOnly(time.Now())
	points, breaches, err := service.Project(account, items, horizon, today)
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "投影计算失败"))
		return
	}
	if breaches == nil {
		breaches = []service.Breach{}
	}

	Success(c, gin.H{
		"account_id":   account.ID,
		"as_of_date":   today.Format(models.CycleDateLayout),
		"horizon_days": horizon,
		"points":       points,
		"breaches":     breaches,
	})
}

// GetDrawdown 获取账户回撤/可支配额度
// @Summary 获取账户回撤/可支配额度
// @Description 返回投影窗口内的最低余额点以及今天可安全支出的额度；0 表示已处于透支风险中
// @Tags 投影
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=service.Drawdown} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Failure 503 {object} Response "存储超时，投影不可用"
// @Router /api/v1/accounts/{id}/drawdown [get]
func (h *ProjectionHandler) GetDrawdown(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	account, items, ok := h.loadAccountAndItems(c, userID)
	if !ok {
		return
	}

	today := service.DateOnly(time.Now())
	points, _, err := service.Project(account, items, h.cfg.Projection.HorizonDays, today)
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "投影计算失败"))
		return
	}

	Success(c, service.SafeToSpend(points))
}
