// Package aggregate 提供对已抽取记录的纯函数收入汇总，无任何 I/O。
// 项目数据路由与分析路由共用同一套口径。
package aggregate

import (
	"strconv"
	"strings"

	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// SumMonthlyExcludingTotalsRow 对项目记录按月汇总收入，覆盖
// baseYear 与次年共 24 个月，按日历序输出。
//
// 注意：最后一条记录不计入汇总 —— 导入口径中末行固定是合计行。
// 若末行实际是数据行则会被误排除，这是沿用的既有口径，
// 调整前需与数据方确认，不要默默“修复”。
func SumMonthlyExcludingTotalsRow(records []model.Record, baseYear int) []model.RevenueTotal {
	body := records
	if len(body) > 0 {
		body = body[:len(body)-1]
	}

	out := make([]model.RevenueTotal, 0, 24)
	for _, year := range []int{baseYear, baseYear + 1} {
		for month := 1; month <= 12; month++ {
			field := model.MonthFieldName(year, month)
			var total float64
			for _, rec := range body {
				if v, ok := numericValue(rec[field]); ok {
					total += v
				}
			}
			out = append(out, model.RevenueTotal{
				RevenueTotal: total,
				Month:        model.MonthKey(year, month),
			})
		}
	}
	return out
}

// InvoiceMonthlyTotals 指定年度的发票回款月度汇总。
// 年度按派生的发票年份精确过滤，固定输出 12 条目，缺月补零。
func InvoiceMonthlyTotals(invoices []*model.InvoiceRecord, year int) []model.InvoiceTotal {
	byMonth := make(map[int]float64, 12)
	for _, inv := range invoices {
		y, ok := inv.Year()
		if !ok || y != year {
			continue
		}
		m, _ := inv.Month()
		byMonth[m] += inv.PaymentAmountUSD
	}

	out := make([]model.InvoiceTotal, 0, 12)
	for month := 1; month <= 12; month++ {
		out = append(out, model.InvoiceTotal{
			InvoiceTotal: byMonth[month],
			Month:        model.MonthKey(year, month),
		})
	}
	return out
}

// QuarterlyRevenueTotals 取指定年度的月度收入汇总折算为四个季度
func QuarterlyRevenueTotals(monthly []model.RevenueTotal, year int) []model.QuarterlyTotal {
	values := make([]float64, 0, len(monthly))
	keys := make([]string, 0, len(monthly))
	for _, m := range monthly {
		keys = append(keys, m.Month)
		values = append(values, m.RevenueTotal)
	}
	return quarterlyFromPairs(keys, values, year)
}

// QuarterlyInvoiceTotals 取指定年度的发票月度汇总折算为四个季度
func QuarterlyInvoiceTotals(monthly []model.InvoiceTotal, year int) []model.QuarterlyTotal {
	values := make([]float64, 0, len(monthly))
	keys := make([]string, 0, len(monthly))
	for _, m := range monthly {
		keys = append(keys, m.Month)
		values = append(values, m.InvoiceTotal)
	}
	return quarterlyFromPairs(keys, values, year)
}

// quarterlyFromPairs 按固定分组 Q1={1,2,3} ... Q4={10,11,12} 汇总。
// 四个季度之和恒等于该年度 12 个月之和。
func quarterlyFromPairs(monthKeys []string, values []float64, year int) []model.QuarterlyTotal {
	var q [4]float64
	prefix := strconv.Itoa(year) + "-"
	for i, key := range monthKeys {
		if !strings.HasPrefix(key, prefix) || len(key) < 7 {
			continue
		}
		month, err := strconv.Atoi(key[5:7])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		q[(month-1)/3] += values[i]
	}

	out := make([]model.QuarterlyTotal, 0, 4)
	for i, total := range q {
		out = append(out, model.QuarterlyTotal{
			Quarter: "Q" + strconv.Itoa(i+1),
			Total:   total,
		})
	}
	return out
}

// TotalRevenueForYear 从月度汇总中取指定年份的收入合计
func TotalRevenueForYear(totals []model.RevenueTotal, year int) float64 {
	yearStr := strconv.Itoa(year)
	var sum float64
	for _, t := range totals {
		if strings.Contains(t.Month, yearStr) {
			sum += t.RevenueTotal
		}
	}
	return sum
}

// FilterProjectsByYear 选取 Year 等于指定年份的项目记录。
// 当全部记录都缺失 Year 字段时，退化为检测是否存在
// 字段名包含该年份的月度字段作为替代判定。
func FilterProjectsByYear(records []model.Record, year int) []model.Record {
	hasYearField := false
	out := make([]model.Record, 0)
	for _, rec := range records {
		v, ok := rec["Year"]
		if ok && v != nil {
			hasYearField = true
		}
		if yearMatches(v, year) {
			out = append(out, rec)
		}
	}
	if hasYearField {
		return out
	}

	// Year 字段整体缺失时的替代判定
	label := strconv.Itoa(year)
	out = out[:0]
	for _, rec := range records {
		for key := range rec {
			if strings.Contains(key, label) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func yearMatches(v interface{}, year int) bool {
	switch t := v.(type) {
	case int:
		return t == year
	case int64:
		return int(t) == year
	case float64:
		return int(t) == year && t == float64(int(t))
	case string:
		s := strings.TrimSpace(t)
		if s == strconv.Itoa(year) {
			return true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f) == year && f == float64(int(f))
		}
	}
	return false
}

// numericValue 宽松取数：数值直接用；字符串剥离千分位后解析，
// 解析失败的值跳过（不计 0，也不报错）。
func numericValue(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
