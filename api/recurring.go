package api

import (
	"strconv"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecurringItemHandler 周期性收支项目处理器
type RecurringItemHandler struct{}

// NewRecurringItemHandler 创建周期性收支项目处理器
func NewRecurringItemHandler() *RecurringItemHandler {
	return &RecurringItemHandler{}
}

// CreateItemRequest 创建项目请求
type CreateItemRequest struct {
	AccountID         uint            `json:"account_id" binding:"required"`
	Name              string          `json:"name" binding:"required,max=100" example:"房贷月供"`
	Kind              string          `json:"kind" binding:"required,oneof=cost income mortgage_payment pot_deposit"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	DayOfMonth        int             `json:"day_of_month" binding:"required" example:"28"`
	NearestWorkingDay bool            `json:"nearest_working_day"`
}

// UpdateItemRequest 更新项目请求
type UpdateItemRequest struct {
	Name              string           `json:"name" binding:"omitempty,max=100"`
	Amount            *decimal.Decimal `json:"amount"`
	DayOfMonth        *int             `json:"day_of_month"`
	NearestWorkingDay *bool            `json:"nearest_working_day"`
	Active            *bool            `json:"active"`
}

// Create 创建周期性收支项目
// @Summary 创建周期性收支项目
// @Description 创建一个绑定到账户的月度周期项目（支出/收入/房贷/储蓄罐定投）
// @Tags 周期项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "项目信息"
// @Success 200 {object} Response{data=models.RecurringItem} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/items [post]
func (h *RecurringItemHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 归属账户必须属于当前家庭
	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", req.AccountID, userID).First(&account).Error; err != nil {
		NotFound(c, "账户不存在")
		return
	}

	item := models.RecurringItem{
		UserID:            userID,
		AccountID:         req.AccountID,
		Name:              req.Name,
		Kind:              req.Kind,
		Amount:            req.Amount.Round(2),
		DayOfMonth:        req.DayOfMonth,
		Frequency:         models.FrequencyMonthly,
		NearestWorkingDay: req.NearestWorkingDay,
		Active:            true,
	}
	if err := service.ValidateItem(&item); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := database.DB.Create(&item).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建项目失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", item)
}

// List 获取项目列表
// @Summary 获取周期性收支项目列表
// @Tags 周期项目
// @Produce json
// @Security BearerAuth
// @Param account_id query int false "按账户筛选"
// @Param include_inactive query bool false "是否包含已停用项目" default(false)
// @Success 200 {object} Response{data=[]models.RecurringItem} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/items [get]
func (h *RecurringItemHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if s := c.Query("account_id"); s != "" {
		accountID, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			BadRequest(c, "无效的账户ID")
			return
		}
		query = query.Where("account_id = ?", accountID)
	}
	if c.Query("include_inactive") != "true" {
		query = query.Where("active = ?", true)
	}

	var items []models.RecurringItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, items)
}

// Update 更新项目
// @Summary 更新周期性收支项目
// @Tags 周期项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body UpdateItemRequest true "项目信息"
// @Success 200 {object} Response{data=models.RecurringItem} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "项目不存在"
// @Router /api/v1/items/{id} [put]
func (h *RecurringItemHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var item models.RecurringItem
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		NotFound(c, "项目不存在")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 先在内存中套用变更，整体校验通过后再落库
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Amount != nil {
		item.Amount = req.Amount.Round(2)
	}
	if req.DayOfMonth != nil {
		item.DayOfMonth = *req.DayOfMonth
	}
	if req.NearestWorkingDay != nil {
		item.NearestWorkingDay = *req.NearestWorkingDay
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := service.ValidateItem(&item); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := database.DB.Save(&item).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", item)
}

// Deactivate 停用项目
// @Summary 停用周期性收支项目
// @Description 软停用：历史周期台账仍引用该项目，因此只置 active=false，不做物理删除
// @Tags 周期项目
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} Response "停用成功"
// @Failure 404 {object} Response "项目不存在"
// @Router /api/v1/items/{id} [delete]
func (h *RecurringItemHandler) Deactivate(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var item models.RecurringItem
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		NotFound(c, "项目不存在")
		return
	}

	if err := database.DB.Model(&item).Update("active", false).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "停用失败"))
		return
	}

	SuccessWithMessage(c, "停用成功", nil)
}
