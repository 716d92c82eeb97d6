package model

import "testing"

func TestMonthKey(t *testing.T) {
	t.Parallel()

	if got := MonthKey(2025, 1); got != "2025-01-01 00:00:00" {
		t.Fatalf("MonthKey(2025,1) got=%s", got)
	}
	if got := MonthKey(2024, 12); got != "2024-12-01 00:00:00" {
		t.Fatalf("MonthKey(2024,12) got=%s", got)
	}
}

func TestMonthFieldName(t *testing.T) {
	t.Parallel()

	if got := MonthFieldName(2024, 1); got != "2024 Jan" {
		t.Fatalf("MonthFieldName(2024,1) got=%s", got)
	}
	if got := MonthFieldName(2025, 12); got != "2025 Dec" {
		t.Fatalf("MonthFieldName(2025,12) got=%s", got)
	}
}

func TestMonthlyFieldNames(t *testing.T) {
	t.Parallel()

	fields := MonthlyFieldNames(2024)
	if len(fields) != 27 {
		t.Fatalf("want 27 fields, got %d", len(fields))
	}
	if fields[0] != "2024 Total" {
		t.Fatalf("first field got=%s", fields[0])
	}
	if fields[13] != "2024 Total2" {
		t.Fatalf("14th field got=%s", fields[13])
	}
	if fields[14] != "2025 Total" {
		t.Fatalf("15th field got=%s", fields[14])
	}
	if fields[26] != "2025 Dec" {
		t.Fatalf("last field got=%s", fields[26])
	}
}
