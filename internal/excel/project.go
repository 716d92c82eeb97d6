package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/tecace-soft/ta-project-data-analyst/internal/logger"
	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

// 月度收入区块的固定起始列标。
// 首年区块 14 列（Total, Jan..Dec, Total2），次年区块 13 列（Total, Jan..Dec）。
const (
	firstYearStartColumn  = "AU"
	secondYearStartColumn = "BI"
)

// ProjectParserConfig 项目表解析配置
type ProjectParserConfig struct {
	SheetName string // 项目表 sheet 名
	SkipRows  int    // 表头之前需要跳过的说明行数
	BaseYear  int    // 首个月度区块对应的年度
}

// DefaultProjectParserConfig 默认解析配置
func DefaultProjectParserConfig() ProjectParserConfig {
	return ProjectParserConfig{
		SheetName: "Project Table",
		SkipRows:  2,
		BaseYear:  2024,
	}
}

// ProjectParser 项目表解析器：固定列位映射 + 自然键去重
type ProjectParser struct {
	cfg ProjectParserConfig
	log zerolog.Logger
}

// NewProjectParser 创建项目表解析器
func NewProjectParser(cfg ProjectParserConfig) *ProjectParser {
	def := DefaultProjectParserConfig()
	if cfg.SheetName == "" {
		cfg.SheetName = def.SheetName
	}
	if cfg.SkipRows <= 0 {
		cfg.SkipRows = def.SkipRows
	}
	if cfg.BaseYear <= 0 {
		cfg.BaseYear = def.BaseYear
	}
	return &ProjectParser{
		cfg: cfg,
		log: logger.WithComponent("project-parser"),
	}
}

// Parse 解析项目表为记录列表。
// sheet 不存在视为致命错误；单元格级别的类型问题一律就地兜底：
// 字符串缺失 → 空串，日期解析失败 → nil，数值解析失败 → 0。
func (p *ProjectParser) Parse(wb *excelize.File) ([]*model.ProjectRecord, error) {
	if idx, err := wb.GetSheetIndex(p.cfg.SheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, p.cfg.SheetName)
	}

	rows, err := wb.GetRows(p.cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", p.cfg.SheetName, err)
	}

	// 跳过说明行后，首行为表头，其余为数据
	headerRow := p.cfg.SkipRows
	if len(rows) <= headerRow+1 {
		return []*model.ProjectRecord{}, nil
	}
	data := rows[headerRow+1:]

	records := make([]*model.ProjectRecord, 0, len(data))
	for _, row := range data {
		if rowIsBlank(row) {
			continue
		}
		records = append(records, p.parseRow(row))
	}

	deduped := dedupeByProjectCode(records)
	p.log.Debug().
		Int("rows", len(records)).
		Int("unique", len(deduped)).
		Msg("parsed project table")
	return deduped, nil
}

func (p *ProjectParser) parseRow(row []string) *model.ProjectRecord {
	cell := func(idx int) string {
		if idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	amount := func(idx int) float64 {
		f, _ := ParseAmount(cell(idx))
		return f
	}
	date := func(idx int) *time.Time {
		return ParseDate(cell(idx))
	}

	rec := &model.ProjectRecord{
		ProjectCode:     cell(0),
		Title:           cell(1),
		Customer:        cell(2),
		Department:      cell(3),
		Platform:        cell(4),
		Type:            cell(5),
		ProjectStatus:   cell(6),
		ContractStatus:  cell(7),
		RDTaxCredit:     amount(9),
		ExpectedRevenue: amount(10),
		ContractStart:   date(11),
		ContractEnd:     date(12),
		ProjectStart:    date(13),
		ProjectEnd:      date(14),
		Location:        cell(15),
		Updated:         date(17),
		Monthly:         make(map[string]float64, 27),
	}

	// Possibility 源值为小数，换算为百分比
	if f, ok := ParseAmount(cell(8)); ok {
		rec.PossibilityPercent = f * 100
	}
	if f, ok := ParseAmount(cell(16)); ok {
		y := int(f)
		rec.Year = &y
	}

	// 月度字段先全部置 0，保证 27 个字段始终存在且为有限数值
	for _, field := range model.MonthlyFieldNames(p.cfg.BaseYear) {
		rec.Monthly[field] = 0
	}

	firstStart := ColumnIndex(firstYearStartColumn)
	firstFields := append(
		append([]string{fmt.Sprintf("%d Total", p.cfg.BaseYear)}, model.MonthFieldNames(p.cfg.BaseYear)...),
		fmt.Sprintf("%d Total2", p.cfg.BaseYear),
	)
	for i, field := range firstFields {
		rec.Monthly[field] = amount(firstStart + i)
	}

	secondStart := ColumnIndex(secondYearStartColumn)
	secondFields := append(
		[]string{fmt.Sprintf("%d Total", p.cfg.BaseYear+1)},
		model.MonthFieldNames(p.cfg.BaseYear+1)...,
	)
	for i, field := range secondFields {
		rec.Monthly[field] = amount(secondStart + i)
	}

	return rec
}

// dedupeByProjectCode 按非空项目编码去重，保留首次出现；
// 编码为空的记录按行位置各自独立，不参与去重。
func dedupeByProjectCode(records []*model.ProjectRecord) []*model.ProjectRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]*model.ProjectRecord, 0, len(records))
	for _, r := range records {
		code := strings.TrimSpace(r.ProjectCode)
		if code != "" {
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}
