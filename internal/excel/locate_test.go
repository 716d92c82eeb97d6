package excel_test

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tecace-soft/ta-project-data-analyst/internal/excel"
)

func TestLocateTable_NamedTable(t *testing.T) {
	t.Parallel()

	wb := buildWorkbook(t, map[string][][]interface{}{
		"Project Table": {
			{"ignored", "header", "rows"},
			{},
			{"Code", "Title", "Revenue"},
			{"P001", "Alpha", 100},
			{"P002", "Beta", 200},
			{"P003", "Gamma", 300},
		},
	})
	if err := wb.AddTable("Project Table", &excelize.Table{
		Range: "A3:C6",
		Name:  "Table1",
	}); err != nil {
		t.Fatalf("AddTable failed: %v", err)
	}

	tr, err := excel.LocateTable(wb, "Project Table", "Table1")
	if err != nil {
		t.Fatalf("LocateTable failed: %v", err)
	}
	if len(tr.Headers) != 3 || tr.Headers[0] != "Code" {
		t.Fatalf("unexpected headers: %v", tr.Headers)
	}
	if len(tr.Rows) != 3 {
		t.Fatalf("want 3 data rows, got %d", len(tr.Rows))
	}

	records := tr.GenericRecords()
	if len(records) != 3 {
		t.Fatalf("want 3 records, got %d", len(records))
	}
	if records[0]["Code"] != "P001" {
		t.Fatalf("unexpected first record: %v", records[0])
	}
	if records[1]["Revenue"] != 200.0 {
		t.Fatalf("Revenue want=200 got=%v", records[1]["Revenue"])
	}
}

func TestLocateTable_MarkerFallback(t *testing.T) {
	t.Parallel()

	wb := buildWorkbook(t, map[string][][]interface{}{
		"Project Table": {
			{"Quarterly Report"},
			{"Table1"},
			{"Code", "Title"},
			{"P001", "Alpha"},
			{"P002", "Beta"},
			{}, // 空行终止数据区
			{"footer", "note"},
		},
	})

	tr, err := excel.LocateTable(wb, "Project Table", "Table1")
	if err != nil {
		t.Fatalf("LocateTable failed: %v", err)
	}
	if len(tr.Headers) != 2 || tr.Headers[1] != "Title" {
		t.Fatalf("unexpected headers: %v", tr.Headers)
	}
	if len(tr.Rows) != 2 {
		t.Fatalf("want 2 data rows, got %d", len(tr.Rows))
	}
}

func TestLocateTable_SheetMissing(t *testing.T) {
	t.Parallel()

	wb := buildWorkbook(t, map[string][][]interface{}{
		"Other": {{"a"}},
	})

	_, err := excel.LocateTable(wb, "Project Table", "Table1")
	if !errors.Is(err, excel.ErrSheetNotFound) {
		t.Fatalf("want ErrSheetNotFound, got %v", err)
	}
}

func TestLocateTable_TableMissing(t *testing.T) {
	t.Parallel()

	wb := buildWorkbook(t, map[string][][]interface{}{
		"Project Table": {
			{"Code", "Title"},
			{"P001", "Alpha"},
		},
	})

	_, err := excel.LocateTable(wb, "Project Table", "Table1")
	if !errors.Is(err, excel.ErrTableNotFound) {
		t.Fatalf("want ErrTableNotFound, got %v", err)
	}
}

func TestGenericRecords_DropsEmptyColumnsAndRows(t *testing.T) {
	t.Parallel()

	tr := &excel.TableRange{
		Headers: []string{"Code", "", "Amount"},
		Rows: [][]string{
			{"P001", "", "1,200"},
			{"", "", ""},
			{"P002", "", "50"},
		},
	}
	records := tr.GenericRecords()
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if _, ok := records[0]["B"]; ok {
		t.Fatalf("empty column should be dropped: %v", records[0])
	}
	if records[0]["Amount"] != 1200.0 {
		t.Fatalf("Amount want=1200 got=%v", records[0]["Amount"])
	}
}
