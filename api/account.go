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

// AccountHandler 账户处理器
type AccountHandler struct{}

// NewAccountHandler 创建账户处理器
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=100" example:"日常账户"`
	Type           string          `json:"type" binding:"omitempty,oneof=current savings" example:"current"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
}

// UpdateAccountRequest 更新账户请求
type UpdateAccountRequest struct {
	Name           string           `json:"name" binding:"omitempty,max=100"`
	CurrentBalance *decimal.Decimal `json:"current_balance"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit"`
}

// Create 创建账户
// @Summary 创建账户
// @Description 创建一个活期或储蓄账户，透支额度必须非负
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.OverdraftLimit.IsNegative() {
		BadRequest(c, "透支额度不能为负")
		return
	}
	if req.Type == "" {
		req.Type = models.AccountTypeCurrent
	}

	account := models.Account{
		UserID:         userID,
		Name:           req.Name,
		Type:           req.Type,
		CurrentBalance: req.CurrentBalance.Round(2),
		OverdraftLimit: req.OverdraftLimit.Round(2),
	}

	if err := database.DB.Create(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建账户失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", account)
}

// List 获取扁平账户视图
// @Summary 获取扁平账户视图
// @Description 返回用于预算汇总的账户列表：挂有储蓄罐的储蓄账户被其储蓄罐代替展示，避免同一笔钱重复计算
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.DisplayableAccount} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var accounts []models.Account
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	// 一次取出该家庭全部储蓄罐，展示规则在内存中计算
	var pots []models.Pot
	if len(accounts) > 0 {
		accountIDs := make([]uint, 0, len(accounts))
		for _, a := range accounts {
			accountIDs = append(accountIDs, a.ID)
		}
		if err := database.DB.Where("account_id IN ?", accountIDs).Order("id ASC").Find(&pots).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
	}

	Success(c, service.EffectiveAccounts(accounts, pots))
}

// Get 获取单个账户
// @Summary 获取单个账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response{data=models.Account} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
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

	Success(c, account)
}

// Update 更新账户
// @Summary 更新账户
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Param request body UpdateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
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

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 更新字段，金额一律在落库边界做两位舍入
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.CurrentBalance != nil {
		updates["current_balance"] = req.CurrentBalance.Round(2)
	}
	if req.OverdraftLimit != nil {
		if req.OverdraftLimit.IsNegative() {
			BadRequest(c, "透支额度不能为负")
			return
		}
		updates["overdraft_limit"] = req.OverdraftLimit.Round(2)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&account).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	database.DB.First(&account, account.ID)
	SuccessWithMessage(c, "更新成功", account)
}

// Delete 删除账户
// @Summary 删除账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
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

	if err := database.DB.Delete(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
