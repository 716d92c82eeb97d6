package model

import "time"

// Record 通用 JSON 安全记录（键为列名/字段名）
type Record = map[string]interface{}

// ProjectRecord 项目表单行数据。
// 月度字段始终存在且为有限数值，缺失/不可解析的单元格按 0 处理。
type ProjectRecord struct {
	ProjectCode        string
	Title              string
	Customer           string
	Department         string
	Platform           string
	Type               string
	ProjectStatus      string
	ContractStatus     string
	PossibilityPercent float64
	RDTaxCredit        float64
	ExpectedRevenue    float64
	ContractStart      *time.Time
	ContractEnd        *time.Time
	ProjectStart       *time.Time
	ProjectEnd         *time.Time
	Location           string
	Year               *int
	Updated            *time.Time

	// Monthly 月度收入字段，键形如 "2024 Jan" / "2025 Total"
	Monthly map[string]float64
}

// ToMap 转为 JSON 安全的通用记录，键与 Excel 导入口径一致
func (p *ProjectRecord) ToMap() Record {
	m := Record{
		"Project Code":     p.ProjectCode,
		"Title":            p.Title,
		"Customer":         p.Customer,
		"Department":       p.Department,
		"Platform":         p.Platform,
		"Type":             p.Type,
		"Project Status":   p.ProjectStatus,
		"Contract Status":  p.ContractStatus,
		"Possibility %":    p.PossibilityPercent,
		"R&D Tax Credit":   p.RDTaxCredit,
		"Expected Revenue": p.ExpectedRevenue,
		"Contract Start":   dateValue(p.ContractStart),
		"Contract End":     dateValue(p.ContractEnd),
		"Prj Start":        dateValue(p.ProjectStart),
		"Prj End":          dateValue(p.ProjectEnd),
		"Location":         p.Location,
		"Year":             yearValue(p.Year),
		"Updated":          dateValue(p.Updated),
	}
	for k, v := range p.Monthly {
		m[k] = v
	}
	return m
}

func dateValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(DateTimeLayout)
}

func yearValue(y *int) interface{} {
	if y == nil {
		return nil
	}
	return *y
}

// ProjectRecordsToMaps 批量转换，保持原有顺序
func ProjectRecordsToMaps(records []*ProjectRecord) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToMap())
	}
	return out
}
