package excel

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// currencyReplacer 剥离货币符号与千分位分隔符
var currencyReplacer = strings.NewReplacer("$", "", "£", "", "€", "", ",", "")

// ParseAmount 解析金额/数值文本。
// 先剥离货币符号与千分位，再按浮点解析；空串或解析失败返回 0,false。
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimSpace(currencyReplacer.Replace(s))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// dateLayouts 默认推断用的日期格式，覆盖 excelize 常见单元格输出
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	"01/02/2006",
	"1/2/06 15:04",
	"Jan 2, 2006",
	"2-Jan-06",
	"02-Jan-2006",
	"Jan-06",
}

// dayFirstLayouts 显式 日/月/年 格式（欧式日期重试用）
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
}

func parseWithLayouts(s string, layouts []string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseDate 按默认格式推断解析日期，失败返回 nil
func ParseDate(s string) *time.Time {
	return parseWithLayouts(s, dateLayouts)
}

// ParseDateDayFirst 按 日/月/年 格式解析日期，失败返回 nil
func ParseDateDayFirst(s string) *time.Time {
	return parseWithLayouts(s, dayFirstLayouts)
}

// SanitizeNumber 将 NaN/Inf 归一为 nil，保证 JSON 可序列化
func SanitizeNumber(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// CellValue 将单元格文本归一为 JSON 安全值：
// 空白 → nil，数值 → float64，其余保留原文
func CellValue(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return SanitizeNumber(f)
	}
	return s
}

// looksLikeCode 判断取值是否像业务编码（短、字母数字为主）
func looksLikeCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) >= 20 {
		return false
	}
	if strings.Contains(strings.ToUpper(s), "PRJ") || strings.Contains(strings.ToUpper(s), "PROJ") {
		return true
	}
	for _, ch := range s {
		if !isAlnum(ch) {
			return false
		}
	}
	return true
}

func isAlnum(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
