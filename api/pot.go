package api

import (
	"errors"
	"strconv"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PotHandler 储蓄罐处理器
type PotHandler struct{}

// NewPotHandler 创建储蓄罐处理器
func NewPotHandler() *PotHandler {
	return &PotHandler{}
}

// CreatePotRequest 创建储蓄罐请求
type CreatePotRequest struct {
	AccountID    uint            `json:"account_id" binding:"required"`
	Name         string          `json:"name" binding:"required,max=100" example:"度假基金"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	DepositDay   int             `json:"deposit_day" binding:"required" example:"1"`
}

// PotPaymentRequest 储蓄罐供款请求
type PotPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Create 创建储蓄罐
// @Summary 创建储蓄罐
// @Description 在储蓄账户下创建一个储蓄罐；只有储蓄账户可以挂储蓄罐
// @Tags 储蓄罐
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePotRequest true "储蓄罐信息"
// @Success 200 {object} Response{data=models.Pot} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/pots [post]
func (h *PotHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreatePotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.DepositDay < 1 || req.DepositDay > 31 {
		BadRequest(c, "deposit_day 必须在 1-31 之间")
		return
	}
	if req.TargetAmount.IsNegative() {
		BadRequest(c, "目标金额不能为负")
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", req.AccountID, userID).First(&account).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}
	if !account.IsSavings() {
		BadRequest(c, "只有储蓄账户可以创建储蓄罐")
		return
	}

	pot := models.Pot{
		AccountID:     req.AccountID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount.Round(2),
		CurrentAmount: decimal.Zero,
		DepositDay:    req.DepositDay,
	}

	if err := database.DB.Create(&pot).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建储蓄罐失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", pot)
}

// ListByAccount 获取某账户下的储蓄罐列表
// @Summary 获取某账户下的储蓄罐列表
// @Tags 储蓄罐
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=[]models.Pot} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id}/pots [get]
func (h *PotHandler) ListByAccount(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}

	var pots []models.Pot
	if err := database.DB.Where("account_id = ?", account.ID).Order("id ASC").Find(&pots).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, pots)
}

// Pay 记录储蓄罐供款
// @Summary 记录储蓄罐供款
// @Description 把一笔供款记入储蓄罐。储蓄罐是父账户余额中的虚拟预留，罐与父账户在同一事务内更新，不会出现只更新一半的状态
// @Tags 储蓄罐
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "储蓄罐ID"
// @Param request body PotPaymentRequest true "供款金额"
// @Success 200 {object} Response "记录成功"
// @Failure 400 {object} Response "金额不合法"
// @Failure 404 {object} Response "储蓄罐不存在"
// @Failure 409 {object} Response "写入冲突"
// @Router /api/v1/pots/{id}/payments [post]
func (h *PotHandler) Pay(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req PotPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	pot, account, err := service.ApplyPotPayment(database.DB, userID, uint(id), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			BadRequest(c, "供款金额必须大于 0")
		case errors.Is(err, service.ErrNotFound):
			NotFound(c, "储蓄罐不存在")
		case errors.Is(err, service.ErrConflict):
			Error(c, 409, "写入冲突，请重试")
		default:
			InternalError(c, SafeErrorMessage(err, "记录供款失败"))
		}
		return
	}

	SuccessWithMessage(c, "记录成功", gin.H{
		"pot":     pot,
		"account": account,
	})
}
