package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 周期台账导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ledgerRow 导出用的台账行：计划金额与实付金额并列，便于核对偏差
type ledgerRow struct {
	ItemKey  string
	Name     string
	Kind     string
	Planned  string
	Actual   string
	PaidText string
}

// loadLedger 组装某周期的完整台账视图
// 包含已停用项目——历史周期的台账仍会引用它们
func (h *ExportHandler) loadLedger(c *gin.Context, userID uint) (string, []ledgerRow, bool) {
	cycleStart, ok := parseCycleStart(c.Query("cycle_start"))
	if !ok {
		BadRequest(c, "cycle_start 格式错误，应为: 2006-01-02")
		return "", nil, false
	}

	var cycle models.BudgetCycle
	if err := database.DB.Where("user_id = ? AND cycle_start = ?", userID, service.DateOnly(cycleStart)).
		First(&cycle).Error; err != nil {
		NotFound(c, "周期不存在")
		return "", nil, false
	}

	progress, err := service.CycleProgress(database.DB, userID, cycleStart)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询台账失败"))
		return "", nil, false
	}
	progressByKey := make(map[string]*models.BudgetProgress, len(progress))
	for i := range progress {
		progressByKey[progress[i].ItemKey] = &progress[i]
	}

	var items []models.RecurringItem
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询项目失败"))
		return "", nil, false
	}

	var rows []ledgerRow
	seen := make(map[string]bool)
	for i := range items {
		item := &items[i]
		key := item.ItemKey()
		seen[key] = true

		row := ledgerRow{
			ItemKey:  key,
			Name:     item.Name,
			Kind:     item.Kind,
			Planned:  item.Amount.StringFixed(2),
			PaidText: "未记账",
		}
		if p, ok := progressByKey[key]; ok {
			row.Actual = p.ActualAmount.StringFixed(2)
			if p.IsPaid {
				row.PaidText = "已付"
			} else {
				row.PaidText = "未付"
			}
		}
		rows = append(rows, row)
	}

	// 已有台账但项目已被物理清理的孤行也一并导出
	for i := range progress {
		p := &progress[i]
		if seen[p.ItemKey] {
			continue
		}
		paidText := "未付"
		if p.IsPaid {
			paidText = "已付"
		}
		rows = append(rows, ledgerRow{
			ItemKey:  p.ItemKey,
			Name:     "-",
			Kind:     "-",
			Planned:  "-",
			Actual:   p.ActualAmount.StringFixed(2),
			PaidText: paidText,
		})
	}

	return cycleStart.Format(models.CycleDateLayout), rows, true
}

// ExportCSV 导出周期台账为 CSV
// @Summary 导出周期台账为 CSV
// @Description 导出指定周期的计划/实付台账为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param cycle_start query string true "周期起始日期 (2026-09-01)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "周期不存在"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	cycleName, rows, ok := h.loadLedger(c, userID)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"项目键", "项目名称", "种类", "计划金额", "实付金额", "状态"}); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.ItemKey, row.Name, row.Kind, row.Planned, row.Actual, row.PaidText}); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()

	filename := fmt.Sprintf("budget_%s.csv", cycleName)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出周期台账为 Excel
// @Summary 导出周期台账为 Excel
// @Description 导出指定周期的计划/实付台账为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param cycle_start query string true "周期起始日期 (2026-09-01)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "周期不存在"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	cycleName, rows, ok := h.loadLedger(c, userID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "台账"
	index, err := f.NewSheet(sheet)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{"项目键", "项目名称", "种类", "计划金额", "实付金额", "状态"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.ItemKey, row.Name, row.Kind, row.Planned, row.Actual, row.PaidText}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			InternalError(c, "生成 Excel 失败")
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("budget_%s.xlsx", cycleName)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
