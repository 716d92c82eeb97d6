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

// invoiceSheetSynonyms 发票 sheet 的备选名称，按优先级排列
var invoiceSheetSynonyms = []string{
	"Invoice Data",
	"Invoices",
	"Invoice",
	"Payments",
	"Payment",
	"Invoice_Data",
	"invoice data",
	"invoices",
	"payment data",
	"Invoice Table",
	"invoices imported",
}

// 各字段的表头同义词（大小写不敏感的包含匹配）
var (
	invoiceIDHeaders   = []string{"Invoice ID", "Invoice Number", "Invoice #", "ID", "Invoice", "Number"}
	projectCodeHeaders = []string{"Project Code", "Project", "Project ID", "Project Number", "Code"}
	invoiceDateHeaders = []string{"Invoice Date", "Date", "Payment Date"}
	amountHeaders      = []string{"Payment Amount (USD)", "Payment Amount", "Amount", "Payment", "USD", "Value", "Total"}
)

// 主路径的固定列位：A=发票号, B=项目编码, C=日期, O=金额
const (
	invoiceIDColumn   = 0
	projectCodeColumn = 1
	invoiceDateColumn = 2
	amountColumn      = 14
	minDirectColumns  = 15
)

// InvoiceParserConfig 发票表解析配置
type InvoiceParserConfig struct {
	SheetName    string // 发票表 sheet 名（精确匹配优先）
	ProjectSheet string // 项目表 sheet 名，兜底选择时需排除
}

// DefaultInvoiceParserConfig 默认解析配置
func DefaultInvoiceParserConfig() InvoiceParserConfig {
	return InvoiceParserConfig{
		SheetName:    "Invoice Data Imported",
		ProjectSheet: "Project Table",
	}
}

// InvoiceParser 发票表解析器。
// 任何不可恢复的失败都以空列表收场，绝不向调用方抛错。
type InvoiceParser struct {
	cfg InvoiceParserConfig
	log zerolog.Logger
}

// NewInvoiceParser 创建发票表解析器
func NewInvoiceParser(cfg InvoiceParserConfig) *InvoiceParser {
	def := DefaultInvoiceParserConfig()
	if cfg.SheetName == "" {
		cfg.SheetName = def.SheetName
	}
	if cfg.ProjectSheet == "" {
		cfg.ProjectSheet = def.ProjectSheet
	}
	return &InvoiceParser{
		cfg: cfg,
		log: logger.WithComponent("invoice-parser"),
	}
}

// Parse 解析发票数据。sheet 与列的定位都按阶梯退化，
// 全部落空时返回空列表。
func (p *InvoiceParser) Parse(wb *excelize.File) []*model.InvoiceRecord {
	sheet := p.resolveSheet(wb)
	if sheet == "" {
		p.log.Warn().Msg("no suitable invoice sheet found")
		return []*model.InvoiceRecord{}
	}

	rows, err := wb.GetRows(sheet)
	if err != nil || len(rows) <= 1 {
		p.log.Warn().Str("sheet", sheet).Msg("invoice sheet is empty")
		return []*model.InvoiceRecord{}
	}

	header := rows[0]
	data := rows[1:]

	idCol, codeCol, dateCol, amtCol := resolveInvoiceColumns(header, data)
	statusCol := findHeaderColumn(header, []string{"status"})

	records := make([]*model.InvoiceRecord, 0, len(data))
	rawDates := make([]string, 0, len(data))
	for i, row := range data {
		if rowIsBlank(row) {
			continue
		}
		cell := func(idx int) string {
			if idx >= 0 && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		id := cell(idCol)
		if id == "" {
			id = fmt.Sprintf("INV%04d", i+1)
		}
		amt, _ := ParseAmount(cell(amtCol))

		rec := &model.InvoiceRecord{
			InvoiceID:        id,
			ProjectCode:      cell(codeCol),
			PaymentAmountUSD: amt,
		}
		if statusCol >= 0 {
			rec.Status = cell(statusCol)
		}
		records = append(records, rec)
		rawDates = append(rawDates, cell(dateCol))
	}

	applyInvoiceDates(records, rawDates)

	p.log.Debug().
		Str("sheet", sheet).
		Int("records", len(records)).
		Msg("parsed invoice data")
	return records
}

// resolveSheet 发票 sheet 定位阶梯：
// 精确名 → 同义词 → 名称含 invoice/payment → 任意未被占用的 sheet → 放弃
func (p *InvoiceParser) resolveSheet(wb *excelize.File) string {
	sheets := wb.GetSheetList()
	names := make(map[string]struct{}, len(sheets))
	for _, s := range sheets {
		names[s] = struct{}{}
	}

	if _, ok := names[p.cfg.SheetName]; ok {
		return p.cfg.SheetName
	}
	p.log.Warn().
		Str("sheet", p.cfg.SheetName).
		Strs("available", sheets).
		Msg("invoice sheet not found by exact name")

	for _, alt := range invoiceSheetSynonyms {
		for _, s := range sheets {
			if strings.EqualFold(s, alt) {
				p.log.Info().Str("sheet", s).Msg("using alternative invoice sheet")
				return s
			}
		}
	}

	for _, s := range sheets {
		lower := strings.ToLower(s)
		if strings.Contains(lower, "invoice") || strings.Contains(lower, "payment") {
			p.log.Info().Str("sheet", s).Msg("using sheet containing invoice-related terms")
			return s
		}
	}

	for _, s := range sheets {
		if s != p.cfg.ProjectSheet && s != "Sheet1" && s != "Sheet2" {
			p.log.Warn().Str("sheet", s).Msg("using sheet as a last resort for invoice data")
			return s
		}
	}
	return ""
}

// resolveInvoiceColumns 列定位阶梯：
// 列数足够时使用固定列位；否则按表头同义词匹配；
// 仍未命中时回退到固定列位，金额列从尾部向前找数值列。
// 同义词匹配时每列只归入首个命中的角色（发票号 → 项目编码 →
// 日期 → 金额），同一角色后出现的列覆盖先出现的列。
// 列数按整个已用区域计量：GetRows 会裁掉每行末尾的空单元格，
// 只看表头会漏掉有数据无表头的尾部列。
func resolveInvoiceColumns(header []string, data [][]string) (idCol, codeCol, dateCol, amtCol int) {
	width := len(header)
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}
	if width >= minDirectColumns {
		return invoiceIDColumn, projectCodeColumn, invoiceDateColumn, amountColumn
	}

	idCol, codeCol, dateCol, amtCol = -1, -1, -1, -1
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if lower == "" {
			continue
		}
		switch {
		case matchesAny(lower, invoiceIDHeaders):
			idCol = i
		case matchesAny(lower, projectCodeHeaders):
			codeCol = i
		case matchesAny(lower, invoiceDateHeaders):
			dateCol = i
		case matchesAny(lower, amountHeaders):
			amtCol = i
		}
	}

	if idCol < 0 {
		idCol = invoiceIDColumn
	}
	if codeCol < 0 {
		codeCol = projectCodeColumn
	}
	if dateCol < 0 {
		dateCol = invoiceDateColumn
	}
	if amtCol < 0 {
		amtCol = findNumericColumnBackwards(width, data)
	}
	return idCol, codeCol, dateCol, amtCol
}

func matchesAny(lower string, candidates []string) bool {
	for _, cand := range candidates {
		if strings.Contains(lower, strings.ToLower(cand)) {
			return true
		}
	}
	return false
}

// findHeaderColumn 大小写不敏感的表头包含匹配，返回首个命中的列
func findHeaderColumn(header []string, candidates []string) int {
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if lower == "" {
			continue
		}
		for _, cand := range candidates {
			if strings.Contains(lower, strings.ToLower(cand)) {
				return i
			}
		}
	}
	return -1
}

// findNumericColumnBackwards 从已用区域最后一列向前找首个数值列
// （跳过前三个关键列）
func findNumericColumnBackwards(width int, data [][]string) int {
	for c := width - 1; c > invoiceDateColumn; c-- {
		if columnIsNumeric(data, c) {
			return c
		}
	}
	return width - 1
}

func columnIsNumeric(data [][]string, col int) bool {
	seen := false
	for _, row := range data {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		if _, ok := ParseAmount(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// applyInvoiceDates 先按默认格式推断解析；若过半行解析失败，
// 整列改用显式 日/月/年 格式重试一次，仍失败的行保持 nil。
func applyInvoiceDates(records []*model.InvoiceRecord, rawDates []string) {
	if len(records) == 0 {
		return
	}

	valid := 0
	for i, raw := range rawDates {
		records[i].InvoiceDate = ParseDate(raw)
		if records[i].InvoiceDate != nil {
			valid++
		}
	}

	if valid*2 >= len(records) {
		return
	}
	for i, raw := range rawDates {
		if t := ParseDateDayFirst(raw); t != nil {
			records[i].InvoiceDate = t
		}
	}
}

// SniffInvoices 最后兜底：在名称含 payment/invoice/bill/receipt/transaction
// 的 sheet 里按内容嗅探发票数据。编号取首列，项目编码找短编码样值，
// 日期取首个可解析列（找不到时取当前时间），金额取首个正数值。
func (p *InvoiceParser) SniffInvoices(wb *excelize.File, now time.Time) []*model.InvoiceRecord {
	terms := []string{"payment", "invoice", "bill", "receipt", "transaction"}

	for _, sheet := range wb.GetSheetList() {
		lower := strings.ToLower(sheet)
		matched := false
		for _, t := range terms {
			if strings.Contains(lower, t) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		rows, err := wb.GetRows(sheet)
		if err != nil || len(rows) <= 1 || len(rows[0]) < 3 {
			continue
		}

		out := make([]*model.InvoiceRecord, 0, len(rows)-1)
		for i, row := range rows[1:] {
			if rowIsBlank(row) {
				continue
			}
			out = append(out, sniffRow(row, i, now))
		}
		if len(out) > 0 {
			p.log.Info().
				Str("sheet", sheet).
				Int("records", len(out)).
				Msg("recovered invoice data by content sniffing")
			return out
		}
	}
	return []*model.InvoiceRecord{}
}

func sniffRow(row []string, idx int, now time.Time) *model.InvoiceRecord {
	cell := func(c int) string {
		if c < len(row) {
			return strings.TrimSpace(row[c])
		}
		return ""
	}

	id := cell(0)
	if id == "" {
		id = fmt.Sprintf("INV%04d", idx+1)
	}

	code := "UNKNOWN"
	for c := 1; c < 5 && c < len(row); c++ {
		if v := cell(c); v != "" && looksLikeCode(v) {
			code = v
			break
		}
	}

	var date *time.Time
	for c := 1; c < 6 && c < len(row); c++ {
		if t := ParseDate(cell(c)); t != nil {
			date = t
			break
		}
	}
	if date == nil {
		date = &now
	}

	var amount float64
	for c := 1; c < len(row); c++ {
		if f, ok := ParseAmount(cell(c)); ok && f > 0 {
			amount = f
			break
		}
	}

	return &model.InvoiceRecord{
		InvoiceID:        id,
		ProjectCode:      code,
		InvoiceDate:      date,
		PaymentAmountUSD: amount,
	}
}
