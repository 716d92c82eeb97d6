// Package insight 封装两类外部协作方：
// 基于 Chat Completion 的洞察生成，以及聊天 webhook 的透传代理。
package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/tecace-soft/ta-project-data-analyst/internal/aggregate"
	"github.com/tecace-soft/ta-project-data-analyst/internal/logger"
	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// sampleProjectLimit 提示词内最多携带的样本项目数，避免 token 超限
const sampleProjectLimit = 10

// Config 洞察生成配置。API key 由进程启动时注入，
// 核心逻辑不读取任何环境变量。
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// Service 洞察生成服务。未配置 API key 时 client 为 nil，
// 所有调用走本地兜底路径。
type Service struct {
	client    *openai.Client
	model     string
	maxTokens int
	log       zerolog.Logger
}

// NewService 创建洞察生成服务
func NewService(cfg Config) *Service {
	s := &Service{
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.WithComponent("insight"),
	}
	if s.model == "" {
		s.model = openai.GPT4oMini
	}
	if s.maxTokens <= 0 {
		s.maxTokens = 2000
	}
	if cfg.APIKey != "" {
		s.client = openai.NewClient(cfg.APIKey)
	} else {
		s.log.Warn().Msg("no OpenAI API key configured, insight generation will use fallback")
	}
	return s
}

// Available 是否配置了可用的生成客户端
func (s *Service) Available() bool {
	return s.client != nil
}

// GenerateProjectInsights 基于当年项目与月度汇总生成洞察报告。
// 输入打包为 {记录数, 总收入, 平均收入, 样本记录, 月度汇总}；
// 输出恒为确定的成功/失败结构，不做重试。
func (s *Service) GenerateProjectInsights(ctx context.Context, projects []model.Record, year int, revTotals []model.RevenueTotal) model.InsightResult {
	projectCount := len(projects)
	totalRevenue := aggregate.TotalRevenueForYear(revTotals, year)
	avgRevenue := 0.0
	if projectCount > 0 {
		avgRevenue = totalRevenue / float64(projectCount)
	}
	metrics := model.InsightMetrics{
		ProjectCount: projectCount,
		TotalRevenue: totalRevenue,
		AvgRevenue:   avgRevenue,
	}

	if s.client == nil {
		return model.InsightResult{
			Success: false,
			Error:   "Failed to generate insights: OpenAI API key is not configured",
			Metrics: metrics,
		}
	}

	prompt := buildInsightPrompt(projects, year, revTotals, metrics)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert business analyst specializing in tech project portfolio analysis. Your analyses are data-driven, insightful, and strategically oriented, presented in clear markdown with actionable recommendations for executive leadership.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   s.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("insight generation failed")
		return model.InsightResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to generate insights: %v", err),
			Metrics: metrics,
		}
	}
	if len(resp.Choices) == 0 {
		s.log.Error().Msg("insight generation returned no choices")
		return model.InsightResult{
			Success: false,
			Error:   "Failed to generate insights: model returned no choices",
			Metrics: metrics,
		}
	}

	return model.InsightResult{
		Success:  true,
		Insights: resp.Choices[0].Message.Content,
		Metrics:  metrics,
	}
}

// AnalyzeProjects 生成完整的业务分析报告文本。
// 客户端不可用或调用失败时返回本地兜底报告，绝不向上抛错。
func (s *Service) AnalyzeProjects(ctx context.Context, projects []model.Record, year, baseYear int) string {
	if s.client == nil {
		return FallbackAnalysis(projects, year)
	}

	prompt := buildAnalysisPrompt(projects, year, baseYear)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert business analyst specializing in tech project portfolio analysis. You have extensive experience in identifying trends, risks, and opportunities in project data. Use markdown formatting for better readability, and focus on extracting meaningful insights rather than just summarizing the data.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   s.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("analysis call failed, using fallback")
		return FallbackAnalysis(projects, year)
	}
	if len(resp.Choices) == 0 {
		s.log.Error().Msg("analysis call returned no choices, using fallback")
		return FallbackAnalysis(projects, year)
	}
	return resp.Choices[0].Message.Content
}

// FallbackAnalysis 无可用生成客户端时的本地报告：
// 项目总量、状态分布与指定年度的收入估算。
func FallbackAnalysis(projects []model.Record, year int) string {
	totalProjects := len(projects)

	statusCounts := make(map[string]int)
	for _, p := range projects {
		status := "Unknown"
		if v, ok := p["Project Status"].(string); ok && v != "" {
			status = v
		}
		statusCounts[status]++
	}

	label := fmt.Sprintf("%d", year)
	var totalRevenue float64
	for _, p := range projects {
		for key, v := range p {
			if !strings.Contains(key, label) {
				continue
			}
			if f, ok := v.(float64); ok {
				totalRevenue += f
			}
		}
	}

	var b strings.Builder
	b.WriteString("# Project Portfolio Analysis\n\n")
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- Total Projects: %d\n", totalProjects)
	fmt.Fprintf(&b, "- Estimated Total Revenue (%d): $%s\n\n", year, formatAmount(totalRevenue))
	b.WriteString("## Project Status Distribution\n")

	statuses := make([]string, 0, len(statusCounts))
	for status := range statusCounts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		count := statusCounts[status]
		pct := 0.0
		if totalProjects > 0 {
			pct = float64(count) / float64(totalProjects) * 100
		}
		fmt.Fprintf(&b, "- %s: %d projects (%.1f%%)\n", status, count, pct)
	}

	b.WriteString("\n## Key Insights\n")
	b.WriteString("1. Your portfolio data has been successfully processed and visualized in the charts\n")
	b.WriteString("2. For detailed analysis, configure an OpenAI API key in the server environment\n")
	b.WriteString("3. The application is working properly, but AI-powered insights are unavailable until an API key is provided\n")
	return b.String()
}

func formatAmount(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	dot := strings.Index(s, ".")
	intPart := s[:dot]
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	out := b.String() + s[dot:]
	if neg {
		out = "-" + out
	}
	return out
}
