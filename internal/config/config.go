package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Upload  UploadConfig  `toml:"upload"`
	Excel   ExcelConfig   `toml:"excel"`
	Insight InsightConfig `toml:"insight"`
	Chat    ChatConfig    `toml:"chat"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// UploadConfig 上传限制配置
type UploadConfig struct {
	MaxSizeMB int64 `toml:"max_size_mb"`
}

// ExcelConfig 工作簿解析配置
type ExcelConfig struct {
	ProjectSheet string `toml:"project_sheet"`
	InvoiceSheet string `toml:"invoice_sheet"`
	TableName    string `toml:"table_name"`
	SkipRows     int    `toml:"skip_rows"`
	BaseYear     int    `toml:"base_year"`
}

// InsightConfig 洞察生成配置。API key 不进配置文件，
// 只从环境变量读取。
type InsightConfig struct {
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
	APIKey    string `toml:"-"`
}

// ChatConfig 聊天透传配置。webhook 地址只从环境变量读取。
type ChatConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	WebhookURL     string `toml:"-"`
}

// Timeout 透传调用的硬超时时长
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    5002,
			DevMode: false,
		},
		Upload: UploadConfig{
			MaxSizeMB: 16,
		},
		Excel: ExcelConfig{
			ProjectSheet: "Project Table",
			InvoiceSheet: "Invoice Data Imported",
			TableName:    "Table1",
			SkipRows:     2,
			BaseYear:     2024,
		},
		Insight: InsightConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 2000,
		},
		Chat: ChatConfig{
			TimeoutSeconds: 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)

	return config, info, nil
}

// applyEnvOverrides 注入秘密与环境覆盖项。
// 秘密只走环境变量，不落配置文件。
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.Insight.APIKey = v
	}
	if v := os.Getenv("CHAT_WEBHOOK_URL"); v != "" {
		config.Chat.WebhookURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
