package model

import "fmt"

// DateTimeLayout 输出给前端的统一日期时间格式
const DateTimeLayout = "2006-01-02 15:04:05"

// MonthAbbrevs 月份缩写，与项目表月度列同序
var MonthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthKey 月度汇总键，形如 "2025-01-01 00:00:00"（当月 1 日零点）
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d-01 00:00:00", year, month)
}

// MonthFieldName 单个月度字段名，形如 "2025 Jan"
func MonthFieldName(year int, month int) string {
	return fmt.Sprintf("%d %s", year, MonthAbbrevs[month-1])
}

// MonthFieldNames 某年度 12 个月的字段名（Jan..Dec）
func MonthFieldNames(year int) []string {
	out := make([]string, 0, 12)
	for _, m := range MonthAbbrevs {
		out = append(out, fmt.Sprintf("%d %s", year, m))
	}
	return out
}

// MonthlyFieldNames 两个年度全部月度字段名（含合计列），共 27 个。
// 首年格式: Total, Jan..Dec, Total2；次年: Total, Jan..Dec。
func MonthlyFieldNames(baseYear int) []string {
	out := make([]string, 0, 27)
	out = append(out, fmt.Sprintf("%d Total", baseYear))
	out = append(out, MonthFieldNames(baseYear)...)
	out = append(out, fmt.Sprintf("%d Total2", baseYear))
	out = append(out, fmt.Sprintf("%d Total", baseYear+1))
	out = append(out, MonthFieldNames(baseYear+1)...)
	return out
}
