package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/tecace-soft/ta-project-data-analyst/internal/aggregate"
	"github.com/tecace-soft/ta-project-data-analyst/internal/excel"
	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// parseRequest /parse 请求体：data-URL 形式的 base64 文件内容
type parseRequest struct {
	FileData string `json:"file_data"`
	Filename string `json:"filename"`
}

// Parse 解析整本工作簿并返回组合载荷：
// 项目记录、发票记录、24 个月收入汇总、目标年度发票汇总、
// 当年项目子集与洞察报告。
func (h *Handlers) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileData == "" || req.Filename == "" {
		errorResponse(c, http.StatusBadRequest, "No file data provided")
		return
	}
	if !allowedFile(req.Filename) {
		errorResponse(c, http.StatusBadRequest, "Invalid file type. Please upload an Excel file (.xlsx, .xls, or .xlsm)")
		return
	}

	raw, err := decodeDataURL(req.FileData)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Error decoding file data: %v", err))
		return
	}

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Error reading Excel file: %v", err))
		return
	}
	defer wb.Close()

	table, err := excel.LocateTable(wb, h.cfg.Excel.ProjectSheet, h.cfg.Excel.TableName)
	if err != nil {
		switch {
		case errors.Is(err, excel.ErrSheetNotFound):
			errorResponse(c, http.StatusBadRequest,
				fmt.Sprintf("Sheet %q not found in the Excel file", h.cfg.Excel.ProjectSheet))
		case errors.Is(err, excel.ErrTableNotFound):
			errorResponse(c, http.StatusBadRequest,
				fmt.Sprintf("%s not found in the Excel file. Please ensure there is a table named %q or text %q in the %s sheet.",
					h.cfg.Excel.TableName, h.cfg.Excel.TableName, h.cfg.Excel.TableName, h.cfg.Excel.ProjectSheet))
		default:
			errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Error reading Excel file: %v", err))
		}
		return
	}

	projectData := table.GenericRecords()
	invoices := h.invoices.Parse(wb)
	invoiceData := model.InvoiceRecordsToMaps(invoices)

	baseYear := h.cfg.Excel.BaseYear
	targetYear := baseYear + 1
	revTotals := aggregate.SumMonthlyExcludingTotalsRow(projectData, baseYear)
	invoiceTotals := aggregate.InvoiceMonthlyTotals(invoices, targetYear)
	quarterlyRev := aggregate.QuarterlyRevenueTotals(revTotals, targetYear)
	quarterlyInvoice := aggregate.QuarterlyInvoiceTotals(invoiceTotals, targetYear)

	currentYear := h.now().Year()
	currentYearProjects := aggregate.FilterProjectsByYear(projectData, currentYear)
	insights := h.insights.GenerateProjectInsights(c.Request.Context(), currentYearProjects, currentYear, revTotals)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"project_data": projectData,
		"invoice_data": invoiceData,
		"rev_totals":   revTotals,
		fmt.Sprintf("invoice_totals_%d", targetYear): invoiceTotals,
		"quarterly_rev_totals":                       quarterlyRev,
		"quarterly_invoice_totals":                   quarterlyInvoice,
		"current_year_projects":                      currentYearProjects,
		"project_insights":                           insights,
		"message": fmt.Sprintf("Successfully parsed %d project rows and %d invoice records",
			len(projectData), len(invoiceData)),
	})
}

// decodeDataURL 解出 data-URL 中的 base64 内容；
// 无前缀时按纯 base64 解
func decodeDataURL(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[idx+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}
