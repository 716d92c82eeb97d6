package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/tecace-soft/ta-project-data-analyst/internal/excel"
)

// sampleRowLimit 诊断输出每个 sheet 携带的样本行数上限
const sampleRowLimit = 5

// ExcelDiagnostic 检视工作簿结构：sheet 清单、每个 sheet 的
// 行列规模、列信息与样本行。只读不抽取。
func (h *Handlers) ExcelDiagnostic(c *gin.Context) {
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
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Error analyzing Excel structure: %v", err))
		return
	}
	defer wb.Close()

	sheetNames := wb.GetSheetList()
	sheets := gin.H{}
	for _, name := range sheetNames {
		sheets[name] = sheetDiagnostic(wb, name)
	}

	c.JSON(http.StatusOK, gin.H{
		"file_name":   fileHeader.Filename,
		"sheet_count": len(sheetNames),
		"sheet_names": sheetNames,
		"sheets":      sheets,
	})
}

// sheetDiagnostic 单个 sheet 的结构信息，首行视为列名行
func sheetDiagnostic(wb *excelize.File, sheet string) gin.H {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return gin.H{"error": err.Error()}
	}
	if len(rows) == 0 {
		return gin.H{
			"row_count":    0,
			"column_count": 0,
			"columns":      []gin.H{},
			"sample_rows":  []gin.H{},
		}
	}

	header := rows[0]
	data := rows[1:]

	columns := make([]gin.H, 0, len(header))
	for i, name := range header {
		columns = append(columns, gin.H{
			"index":        i,
			"name":         name,
			"excel_column": excel.ColumnLabel(i),
			"data_type":    columnType(data, i),
		})
	}

	sampleCount := len(data)
	if sampleCount > sampleRowLimit {
		sampleCount = sampleRowLimit
	}
	samples := make([]gin.H, 0, sampleCount)
	for _, row := range data[:sampleCount] {
		sample := gin.H{}
		for i, name := range header {
			key := strings.TrimSpace(name)
			if key == "" {
				key = excel.ColumnLabel(i)
			}
			if i < len(row) {
				sample[key] = excel.CellValue(row[i])
			} else {
				sample[key] = nil
			}
		}
		samples = append(samples, sample)
	}

	return gin.H{
		"row_count":    len(data),
		"column_count": len(header),
		"columns":      columns,
		"sample_rows":  samples,
	}
}

// columnType 按首个非空单元格推断列类型
func columnType(data [][]string, col int) string {
	for _, row := range data {
		if col >= len(row) {
			continue
		}
		s := strings.TrimSpace(row[col])
		if s == "" {
			continue
		}
		if _, ok := excel.ParseAmount(s); ok {
			return "float64"
		}
		return "string"
	}
	return "empty"
}
