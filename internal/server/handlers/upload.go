package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// UploadData 处理 multipart 上传，抽取项目与发票记录。
// 部分成功按成功返回：任一抽取器失败时对应数组为空，不报错。
func (h *Handlers) UploadData(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if fileHeader.Filename == "" {
		errorResponse(c, http.StatusBadRequest, "No file selected")
		return
	}
	if !allowedFile(fileHeader.Filename) {
		errorResponse(c, http.StatusBadRequest, "Invalid file type. Allowed types: xlsx, xls, xlsm")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Error reading uploaded file: %v", err))
		return
	}
	defer file.Close()

	wb, err := excelize.OpenReader(file)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Error reading Excel file: %v", err))
		return
	}
	defer wb.Close()

	// 每次上传一个独立标识，贯穿本次抽取的日志
	fileID := uuid.NewString()
	sheetNames := wb.GetSheetList()
	h.log.Info().
		Str("file_id", fileID).
		Str("filename", fileHeader.Filename).
		Strs("sheets", sheetNames).
		Msg("workbook uploaded")

	// 两个抽取器彼此独立，一方失败不影响另一方
	var projectData []model.Record
	projects, err := h.projects.Parse(wb)
	if err != nil {
		h.log.Warn().Err(err).Msg("project extraction failed")
		projectData = []model.Record{}
	} else {
		projectData = model.ProjectRecordsToMaps(projects)
	}

	invoices := h.invoices.Parse(wb)
	if len(invoices) == 0 {
		// 标准路径无果时退回内容嗅探
		invoices = h.invoices.SniffInvoices(wb, h.now())
	}
	invoiceData := model.InvoiceRecordsToMaps(invoices)

	c.JSON(http.StatusOK, gin.H{
		"projects": projectData,
		"invoices": invoiceData,
		"fileInfo": gin.H{
			"name":         fileHeader.Filename,
			"type":         fileHeader.Header.Get("Content-Type"),
			"sheetNames":   sheetNames,
			"projectCount": len(projectData),
			"invoiceCount": len(invoiceData),
		},
	})
}
