package excel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tecace-soft/ta-project-data-analyst/internal/model"
)

var (
	// ErrSheetNotFound 目标 sheet 不存在
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrTableNotFound 目标表格不存在（命名表格与文本标记均未命中）
	ErrTableNotFound = errors.New("table not found")
)

// TableRange 定位到的矩形表格区域，首行已拆出为表头
type TableRange struct {
	Headers []string
	Rows    [][]string
}

// LocateTable 在指定 sheet 内定位目标表格，按优先级：
//  1. 同名命名表格：按其声明的矩形区域原样取数
//  2. 全表扫描文本标记：标记行的下一行视为表头，数据行延伸至首个全空行
//  3. 均未命中返回 ErrTableNotFound，是否致命由调用方决定
//
// 无论哪条路径，区域首行始终作为列名消费，不计入数据行。
func LocateTable(wb *excelize.File, sheet, tableName string) (*TableRange, error) {
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	if tr := locateNamedTable(wb, sheet, tableName, rows); tr != nil {
		return tr, nil
	}
	if tr := locateByMarker(rows, tableName); tr != nil {
		return tr, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
}

func locateNamedTable(wb *excelize.File, sheet, tableName string, rows [][]string) *TableRange {
	tables, err := wb.GetTables(sheet)
	if err != nil {
		return nil
	}
	for _, tbl := range tables {
		if tbl.Name != tableName {
			continue
		}
		minCol, minRow, maxCol, maxRow, ok := rangeBounds(tbl.Range)
		if !ok {
			continue
		}
		return sliceRange(rows, minCol, minRow, maxCol, maxRow)
	}
	return nil
}

func locateByMarker(rows [][]string, marker string) *TableRange {
	for i, row := range rows {
		found := false
		for _, cell := range row {
			if strings.Contains(cell, marker) {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		if i+1 >= len(rows) {
			return nil
		}
		header := rows[i+1]
		data := make([][]string, 0)
		for _, r := range rows[i+2:] {
			if rowIsBlank(r) {
				break
			}
			data = append(data, r)
		}
		return &TableRange{Headers: header, Rows: data}
	}
	return nil
}

// sliceRange 按 1 基、闭区间的行列边界截取区域，首行为表头
func sliceRange(rows [][]string, minCol, minRow, maxCol, maxRow int) *TableRange {
	cut := func(rowIdx int) []string {
		out := make([]string, 0, maxCol-minCol+1)
		var row []string
		if rowIdx-1 < len(rows) {
			row = rows[rowIdx-1]
		}
		for c := minCol; c <= maxCol; c++ {
			if c-1 < len(row) {
				out = append(out, row[c-1])
			} else {
				out = append(out, "")
			}
		}
		return out
	}

	header := cut(minRow)
	data := make([][]string, 0, maxRow-minRow)
	for r := minRow + 1; r <= maxRow; r++ {
		data = append(data, cut(r))
	}
	return &TableRange{Headers: header, Rows: data}
}

// rangeBounds 解析 "A1:D10" 形式的区域引用，返回 1 基闭区间边界
func rangeBounds(ref string) (minCol, minRow, maxCol, maxRow int, ok bool) {
	parts := strings.Split(strings.TrimSpace(ref), ":")
	if len(parts) != 2 {
		return 0, 0, 0, 0, false
	}
	minCol, minRow, ok = cellRef(parts[0])
	if !ok {
		return 0, 0, 0, 0, false
	}
	maxCol, maxRow, ok = cellRef(parts[1])
	if !ok {
		return 0, 0, 0, 0, false
	}
	return minCol, minRow, maxCol, maxRow, true
}

func cellRef(ref string) (col, row int, ok bool) {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "$", ""))
	split := 0
	for split < len(ref) && (ref[split] < '0' || ref[split] > '9') {
		split++
	}
	if split == 0 || split == len(ref) {
		return 0, 0, false
	}
	colIdx := ColumnIndex(ref[:split])
	if colIdx < 0 {
		return 0, 0, false
	}
	rowNum, err := strconv.Atoi(ref[split:])
	if err != nil || rowNum < 1 {
		return 0, 0, false
	}
	return colIdx + 1, rowNum, true
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// GenericRecords 将定位到的区域转为通用记录：
// 去掉全空行与全空列，单元格值经 CellValue 归一
func (tr *TableRange) GenericRecords() []model.Record {
	keep := make([]int, 0, len(tr.Headers))
	for c, h := range tr.Headers {
		if strings.TrimSpace(h) != "" {
			keep = append(keep, c)
			continue
		}
		for _, row := range tr.Rows {
			if c < len(row) && strings.TrimSpace(row[c]) != "" {
				keep = append(keep, c)
				break
			}
		}
	}

	out := make([]model.Record, 0, len(tr.Rows))
	for _, row := range tr.Rows {
		if rowIsBlank(row) {
			continue
		}
		rec := model.Record{}
		for _, c := range keep {
			key := strings.TrimSpace(headerAt(tr.Headers, c))
			if key == "" {
				key = ColumnLabel(c)
			}
			if c < len(row) {
				rec[key] = CellValue(row[c])
			} else {
				rec[key] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}

func headerAt(headers []string, idx int) string {
	if idx < len(headers) {
		return headers[idx]
	}
	return ""
}
