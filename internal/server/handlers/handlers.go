// Package handlers 实现全部 HTTP 接口：
// 文件上传抽取、整表解析、分析生成、聊天透传与工作簿诊断。
package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tecace-soft/ta-project-data-analyst/internal/config"
	"github.com/tecace-soft/ta-project-data-analyst/internal/excel"
	"github.com/tecace-soft/ta-project-data-analyst/internal/insight"
	"github.com/tecace-soft/ta-project-data-analyst/internal/logger"
)

// allowedExtensions 允许上传的工作簿扩展名
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".xlsm": true,
}

// Handlers API处理器。每个请求独立走完整条管线，
// 处理器自身不持有跨请求的可变状态。
type Handlers struct {
	cfg      *config.AppConfig
	projects *excel.ProjectParser
	invoices *excel.InvoiceParser
	insights *insight.Service
	chat     *insight.Proxy
	log      zerolog.Logger

	// now 可注入，测试用
	now func() time.Time
}

// NewHandlers 创建处理器
func NewHandlers(cfg *config.AppConfig, insights *insight.Service, chat *insight.Proxy) *Handlers {
	return &Handlers{
		cfg: cfg,
		projects: excel.NewProjectParser(excel.ProjectParserConfig{
			SheetName: cfg.Excel.ProjectSheet,
			SkipRows:  cfg.Excel.SkipRows,
			BaseYear:  cfg.Excel.BaseYear,
		}),
		invoices: excel.NewInvoiceParser(excel.InvoiceParserConfig{
			SheetName:    cfg.Excel.InvoiceSheet,
			ProjectSheet: cfg.Excel.ProjectSheet,
		}),
		insights: insights,
		chat:     chat,
		log:      logger.WithComponent("handlers"),
		now:      time.Now,
	}
}

// RegisterRoutes 注册全部路由
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/parse", h.Parse)
	r.POST("/chat", h.Chat)

	api := r.Group("/api")
	{
		api.POST("/data", h.UploadData)
		api.POST("/analyze", h.Analyze)
		api.POST("/excel-diagnostic", h.ExcelDiagnostic)
	}
}

// Health 健康检查
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// allowedFile 扩展名是否在允许清单内
func allowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}
