package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tecace-soft/ta-project-data-analyst/internal/config"
	"github.com/tecace-soft/ta-project-data-analyst/internal/insight"
	"github.com/tecace-soft/ta-project-data-analyst/internal/logger"
	"github.com/tecace-soft/ta-project-data-analyst/internal/server/handlers"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	insightService := insight.NewService(insight.Config{
		APIKey:    cfg.Insight.APIKey,
		Model:     cfg.Insight.Model,
		MaxTokens: cfg.Insight.MaxTokens,
	})
	chatProxy := insight.NewProxy(cfg.Chat.WebhookURL, cfg.Chat.Timeout())

	s := &Server{
		router:   gin.New(),
		handlers: handlers.NewHandlers(cfg, insightService, chatProxy),
	}
	s.router.Use(gin.Recovery())

	s.router.MaxMultipartMemory = cfg.Upload.MaxSizeMB << 20

	s.setupRoutes(cfg)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(cfg *config.AppConfig) {
	// 请求标识，响应头回传并贯穿该请求的日志
	s.router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()
		reqLogger := logger.WithRequestID(requestID)
		reqLogger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request completed")
	})

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 请求体大小上限
	maxBytes := cfg.Upload.MaxSizeMB << 20
	s.router.Use(func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "File too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	})

	s.handlers.RegisterRoutes(s.router)
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 获取路由引擎（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
