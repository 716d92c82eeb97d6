package excel_test

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook 按 sheet → 行 的映射构造内存工作簿，
// 默认的 Sheet1 会被移除
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *excelize.File {
	t.Helper()

	wb := excelize.NewFile()
	for name, rows := range sheets {
		if _, err := wb.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%s) failed: %v", name, err)
		}
		for i := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName failed: %v", err)
			}
			if err := wb.SetSheetRow(name, cell, &rows[i]); err != nil {
				t.Fatalf("SetSheetRow(%s, %s) failed: %v", name, cell, err)
			}
		}
	}
	if _, ok := sheets["Sheet1"]; !ok {
		if err := wb.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("DeleteSheet failed: %v", err)
		}
	}
	return wb
}
