package excel

import "strings"

// ColumnIndex 将 Excel 列标转换为 0 基索引。
// 通用 26 进制换算，支持多字母列标：A=0, Z=25, AA=26, AU=46, BI=60。
// 非法输入返回 -1。
func ColumnIndex(label string) int {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return -1
	}
	idx := 0
	for _, ch := range label {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		idx = idx*26 + int(ch-'A') + 1
	}
	return idx - 1
}

// ColumnLabel 将 0 基索引转换为 Excel 列标
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}
	n := index + 1
	buf := make([]byte, 0, 3)
	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
