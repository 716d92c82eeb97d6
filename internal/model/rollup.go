package model

// RevenueTotal 项目收入月度汇总条目
type RevenueTotal struct {
	RevenueTotal float64 `json:"revenue_total"`
	Month        string  `json:"month"`
}

// InvoiceTotal 发票回款月度汇总条目
type InvoiceTotal struct {
	InvoiceTotal float64 `json:"invoice_total"`
	Month        string  `json:"month"`
}

// QuarterlyTotal 季度汇总条目（Q1={Jan,Feb,Mar} ... Q4={Oct,Nov,Dec}）
type QuarterlyTotal struct {
	Quarter string  `json:"quarter"`
	Total   float64 `json:"total"`
}

// InsightMetrics 洞察报告附带的关键指标
type InsightMetrics struct {
	ProjectCount int     `json:"project_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgRevenue   float64 `json:"avg_revenue"`
}

// InsightResult 洞察生成结果：成功时带 insights 文本，失败时带 error
type InsightResult struct {
	Success  bool           `json:"success"`
	Insights string         `json:"insights,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metrics  InsightMetrics `json:"metrics"`
}
