package model

import (
	"testing"
	"time"
)

func TestInvoiceRecord_ToMap(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	rec := &InvoiceRecord{
		InvoiceID:        "INV-1",
		ProjectCode:      "P001",
		InvoiceDate:      &d,
		PaymentAmountUSD: 1234.56,
		Status:           "Paid",
	}

	m := rec.ToMap()
	if m["invoice_id"] != "INV-1" || m["project_code"] != "P001" {
		t.Fatalf("unexpected identity fields: %v", m)
	}
	if m["invoice_date"] != "2025-03-15 00:00:00" {
		t.Fatalf("invoice_date got=%v", m["invoice_date"])
	}
	if m["invoice_month"] != 3 || m["invoice_month_name"] != "Mar" || m["invoice_year"] != 2025 {
		t.Fatalf("unexpected derived fields: %v", m)
	}
	if m["status"] != "Paid" {
		t.Fatalf("status got=%v", m["status"])
	}
}

func TestInvoiceRecord_ToMap_NoDate(t *testing.T) {
	t.Parallel()

	rec := &InvoiceRecord{InvoiceID: "INV-2", PaymentAmountUSD: 10}
	m := rec.ToMap()
	if m["invoice_date"] != nil || m["invoice_month"] != nil || m["invoice_year"] != nil {
		t.Fatalf("date fields should be nil: %v", m)
	}
	if _, ok := m["status"]; ok {
		t.Fatalf("empty status should be omitted: %v", m)
	}
}

func TestProjectRecord_ToMap(t *testing.T) {
	t.Parallel()

	year := 2025
	rec := &ProjectRecord{
		ProjectCode:        "P001",
		PossibilityPercent: 80,
		Year:               &year,
		Monthly:            map[string]float64{"2024 Jan": 100},
	}
	m := rec.ToMap()
	if m["Project Code"] != "P001" {
		t.Fatalf("Project Code got=%v", m["Project Code"])
	}
	if m["Possibility %"] != 80.0 {
		t.Fatalf("Possibility %% got=%v", m["Possibility %"])
	}
	if m["Year"] != 2025 {
		t.Fatalf("Year got=%v", m["Year"])
	}
	if m["2024 Jan"] != 100.0 {
		t.Fatalf("2024 Jan got=%v", m["2024 Jan"])
	}
	if m["Contract Start"] != nil {
		t.Fatalf("missing date should be nil: %v", m["Contract Start"])
	}
}
