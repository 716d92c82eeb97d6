package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// Analyze 对调用方提交的项目记录生成业务分析文本。
// 请求体宽松取形：优先读 data 字段，缺失时把整个请求体当数据；
// 单个对象会被包成单元素列表。
func (h *Handlers) Analyze(c *gin.Context) {
	var body interface{}
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		errorResponse(c, http.StatusBadRequest, "No data provided in request")
		return
	}

	data := body
	if obj, ok := body.(map[string]interface{}); ok {
		if d, exists := obj["data"]; exists && d != nil {
			data = d
		}
	}

	records, ok := coerceRecordList(data)
	if !ok {
		errorResponse(c, http.StatusBadRequest, "Data must be a list of projects")
		return
	}
	if len(records) == 0 {
		errorResponse(c, http.StatusBadRequest, "No projects provided for analysis")
		return
	}

	analysis := h.insights.AnalyzeProjects(c.Request.Context(), records, h.now().Year(), h.cfg.Excel.BaseYear)
	c.JSON(http.StatusOK, analysis)
}

// coerceRecordList 把任意 JSON 形态折算成记录列表。
// 列表逐元素取对象（非对象元素丢弃），单个对象包成列表，其余拒绝。
func coerceRecordList(data interface{}) ([]model.Record, bool) {
	switch t := data.(type) {
	case []interface{}:
		out := make([]model.Record, 0, len(t))
		for _, item := range t {
			if obj, ok := item.(map[string]interface{}); ok {
				out = append(out, model.Record(obj))
			}
		}
		return out, true
	case map[string]interface{}:
		return []model.Record{model.Record(t)}, true
	default:
		return nil, false
	}
}
