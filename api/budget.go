package api

import (
	"errors"
	"time"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler 预算周期处理器
type BudgetHandler struct{}

// NewBudgetHandler 创建预算周期处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// EnsureCycleRequest 创建（或获取）预算周期请求
type EnsureCycleRequest struct {
	CycleStart     string          `json:"cycle_start" binding:"required" example:"2026-09-01"`
	ActualPay      decimal.Decimal `json:"actual_pay"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// MarkPaidRequest 记账请求
type MarkPaidRequest struct {
	CycleStart   string          `json:"cycle_start" binding:"required" example:"2026-09-01"`
	ItemKey      string          `json:"item_key" binding:"required" example:"mortgage_3"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
	IsPaid       *bool           `json:"is_paid"` // 省略时默认 true
}

// parseCycleStart 解析周期起始日期参数
func parseCycleStart(s string) (time.Time, bool) {
	t, err := time.Parse(models.CycleDateLayout, s)
	return t, err == nil
}

// EnsureCycle 创建预算周期（幂等）
// @Summary 创建预算周期
// @Description 幂等创建：同一家庭同一 cycle_start 只会存在一个周期，重复调用返回既有周期
// @Tags 预算周期
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EnsureCycleRequest true "周期信息（含实发工资与当前余额快照）"
// @Success 200 {object} Response{data=models.BudgetCycle} "创建或获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budget/cycles [post]
func (h *BudgetHandler) EnsureCycle(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req EnsureCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	cycleStart, ok := parseCycleStart(req.CycleStart)
	if !ok {
		BadRequest(c, "cycle_start 格式错误，应为: 2006-01-02")
		return
	}

	cycle, err := service.EnsureCycle(database.DB, userID, cycleStart, req.ActualPay, req.CurrentBalance)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			Error(c, 409, "写入冲突，请重试")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建周期失败"))
		return
	}

	Success(c, cycle)
}

// MarkPaid 记录某项目本周期的已付状态
// @Summary 记录某项目本周期的已付状态
// @Description 按 (cycle_start, item_key) 幂等：重复调用原地更新实付金额与已付标记，不会产生重复台账行
// @Tags 预算周期
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkPaidRequest true "记账信息"
// @Success 200 {object} Response{data=models.BudgetProgress} "记账成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "周期不存在"
// @Failure 409 {object} Response "写入冲突"
// @Router /api/v1/budget/paid [post]
func (h *BudgetHandler) MarkPaid(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	cycleStart, ok := parseCycleStart(req.CycleStart)
	if !ok {
		BadRequest(c, "cycle_start 格式错误，应为: 2006-01-02")
		return
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	progress, err := service.MarkPaid(database.DB, userID, cycleStart, req.ItemKey, req.ActualAmount, isPaid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			BadRequest(c, "实付金额不能为负")
		case errors.Is(err, service.ErrNotFound):
			NotFound(c, SafeErrorMessage(err, "周期不存在"))
		case errors.Is(err, service.ErrConflict):
			Error(c, 409, "写入冲突，请重试")
		default:
			InternalError(c, SafeErrorMessage(err, "记账失败"))
		}
		return
	}

	SuccessWithMessage(c, "记账成功", progress)
}

// GetProgress 获取某周期的台账
// @Summary 获取某周期的台账
// @Description 返回该周期的全部台账行；空列表表示本期尚未记账（与 is_paid=false 是两种状态）
// @Tags 预算周期
// @Produce json
// @Security BearerAuth
// @Param cycle_start query string true "周期起始日期 (2026-09-01)"
// @Success 200 {object} Response{data=[]models.BudgetProgress} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/budget/progress [get]
func (h *BudgetHandler) GetProgress(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	cycleStart, ok := parseCycleStart(c.Query("cycle_start"))
	if !ok {
		BadRequest(c, "cycle_start 格式错误，应为: 2006-01-02")
		return
	}

	rows, err := service.CycleProgress(database.DB, userID, cycleStart)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询台账失败"))
		return
	}
	if rows == nil {
		rows = []models.BudgetProgress{}
	}

	Success(c, rows)
}
