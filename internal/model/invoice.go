package model

import "time"

// InvoiceRecord 发票表单行数据。
// PaymentAmountUSD 始终为有限数值；日期解析失败时为 nil，
// 派生的月/年字段随之为空。
type InvoiceRecord struct {
	InvoiceID        string
	ProjectCode      string
	InvoiceDate      *time.Time
	PaymentAmountUSD float64

	// Status 仅当源表存在状态列时才有值
	Status string
}

// Month 发票月份（1-12），无日期时返回 0,false
func (r *InvoiceRecord) Month() (int, bool) {
	if r.InvoiceDate == nil {
		return 0, false
	}
	return int(r.InvoiceDate.Month()), true
}

// Year 发票年份，无日期时返回 0,false
func (r *InvoiceRecord) Year() (int, bool) {
	if r.InvoiceDate == nil {
		return 0, false
	}
	return r.InvoiceDate.Year(), true
}

// ToMap 转为 JSON 安全的通用记录
func (r *InvoiceRecord) ToMap() Record {
	m := Record{
		"invoice_id":         r.InvoiceID,
		"project_code":       r.ProjectCode,
		"invoice_date":       dateValue(r.InvoiceDate),
		"payment_amount_usd": r.PaymentAmountUSD,
	}
	if r.InvoiceDate != nil {
		m["invoice_month"] = int(r.InvoiceDate.Month())
		m["invoice_month_name"] = r.InvoiceDate.Format("Jan")
		m["invoice_year"] = r.InvoiceDate.Year()
	} else {
		m["invoice_month"] = nil
		m["invoice_month_name"] = nil
		m["invoice_year"] = nil
	}
	if r.Status != "" {
		m["status"] = r.Status
	}
	return m
}

// InvoiceRecordsToMaps 批量转换，保持原有顺序
func InvoiceRecordsToMaps(records []*InvoiceRecord) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToMap())
	}
	return out
}
