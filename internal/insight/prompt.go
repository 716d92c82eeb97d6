package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tecace-soft/ta-project-data-analyst/internal/aggregate"
	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// buildInsightPrompt 洞察生成提示词：关键指标 + 样本项目 + 月度汇总
func buildInsightPrompt(projects []model.Record, year int, revTotals []model.RevenueTotal, metrics model.InsightMetrics) string {
	samples := projects
	if len(samples) > sampleProjectLimit {
		samples = samples[:sampleProjectLimit]
	}
	sampleJSON, _ := json.MarshalIndent(samples, "", "  ")
	totalsJSON, _ := json.MarshalIndent(revTotals, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "I have project data for %d tech projects from %d that I need you to analyze for business insights.\n\n", metrics.ProjectCount, year)
	b.WriteString("KEY METRICS SUMMARY:\n")
	fmt.Fprintf(&b, "- Total %d projects: %d\n", year, metrics.ProjectCount)
	fmt.Fprintf(&b, "- Total %d revenue: $%s\n", year, formatAmount(metrics.TotalRevenue))
	fmt.Fprintf(&b, "- Average revenue per %d project: $%s\n\n", year, formatAmount(metrics.AvgRevenue))
	fmt.Fprintf(&b, "FULL PROJECT DATA:\n%s\n\n", sampleJSON)
	fmt.Fprintf(&b, "MONTHLY REVENUE TOTAL DATA:\n%s\n\n", totalsJSON)
	b.WriteString(`Please provide a comprehensive business analysis focusing on the following areas:

1. EXECUTIVE SUMMARY
   - Overview of the current year's project portfolio
   - Key performance indicators and headline metrics

2. TREND ANALYSIS
   - Monthly and quarterly revenue patterns and potential gaps
   - High-revenue and low-revenue months, seasonality
   - Comparisons to the previous year using the monthly revenue totals

3. STRATEGIC RECOMMENDATIONS
   - 3-5 actionable recommendations based on the monthly revenue patterns
   - Optimization strategies for low-revenue periods

4. REVENUE FORECASTING
   - Projected performance based on the current data
   - Risks to revenue targets and mitigation strategies

5. RISK ASSESSMENT
   - Red flags or concerning patterns in the revenue data
   - Months or quarters that require special attention

Format your response using proper markdown headings, bullet points, and numbered lists. The analysis should be comprehensive but concise, focusing on actionable insights rather than restating the data.`)
	return b.String()
}

// buildAnalysisPrompt 分析路由提示词：按年度过滤后附带月度/季度汇总
func buildAnalysisPrompt(projects []model.Record, year, baseYear int) string {
	filtered := aggregate.FilterProjectsByYear(projects, year)
	monthly := aggregate.SumMonthlyExcludingTotalsRow(filtered, baseYear)
	quarterly := aggregate.QuarterlyRevenueTotals(monthly, year)

	totalRevenue := aggregate.TotalRevenueForYear(monthly, year)
	avgRevenue := 0.0
	if len(filtered) > 0 {
		avgRevenue = totalRevenue / float64(len(filtered))
	}

	samples := filtered
	if len(samples) > sampleProjectLimit {
		samples = samples[:sampleProjectLimit]
	}
	sampleJSON, _ := json.MarshalIndent(samples, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "I have project data for %d tech projects from %d that I need you to analyze for business insights.\n\n", len(filtered), year)
	b.WriteString("KEY METRICS SUMMARY:\n")
	fmt.Fprintf(&b, "- Total %d projects: %d (out of %d total projects)\n", year, len(filtered), len(projects))
	fmt.Fprintf(&b, "- Total %d revenue: $%s\n", year, formatAmount(totalRevenue))
	fmt.Fprintf(&b, "- Average revenue per %d project: $%s\n\n", year, formatAmount(avgRevenue))

	fmt.Fprintf(&b, "MONTHLY REVENUE TOTALS (%d):\n", year)
	yearPrefix := fmt.Sprintf("%d-", year)
	for _, m := range monthly {
		if strings.HasPrefix(m.Month, yearPrefix) {
			fmt.Fprintf(&b, "- %s: $%s\n", m.Month, formatAmount(m.RevenueTotal))
		}
	}

	fmt.Fprintf(&b, "\nQUARTERLY REVENUE TOTALS (%d):\n", year)
	for _, q := range quarterly {
		fmt.Fprintf(&b, "- %s: $%s\n", q.Quarter, formatAmount(q.Total))
	}

	fmt.Fprintf(&b, "\nSAMPLE PROJECTS (JSON format):\n%s\n\n", sampleJSON)
	b.WriteString(`Please provide a comprehensive business analysis covering executive summary, trend analysis, strategic recommendations, revenue forecasting, and risk assessment. Format your response using clear markdown headings and bullet points, focusing on actionable insights rather than restating the data.`)
	return b.String()
}
