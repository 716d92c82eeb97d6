package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tecace-soft/ta-project-data-analyst/internal/config"
	"github.com/tecace-soft/ta-project-data-analyst/internal/logger"
	"github.com/tecace-soft/ta-project-data-analyst/internal/server"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
)

func main() {
	flag.Parse()

	// .env 不存在时静默跳过
	_ = godotenv.Load()

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}

	appLog := logger.WithComponent("main")
	if cfg.Insight.APIKey == "" {
		appLog.Warn().Msg("OPENAI_API_KEY not set, insight generation will use fallback")
	}
	if cfg.Chat.WebhookURL == "" {
		appLog.Warn().Msg("CHAT_WEBHOOK_URL not set, chat endpoint will be unavailable")
	}

	// 创建服务器
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		appLog.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.Run(addr); err != nil {
			appLog.Fatal().Err(err).Msg("server failed")
		}
	}()

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down")
}
