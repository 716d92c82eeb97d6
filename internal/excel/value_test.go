package excel

import (
	"math"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234.56", 1234.56, true},
		{"$1,234.56", 1234.56, true},
		{"£500", 500, true},
		{"€2,000", 2000, true},
		{" 42 ", 42, true},
		{"-17.5", -17.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"pending", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseAmount(%q) want=(%v,%v) got=(%v,%v)", c.in, c.want, c.ok, got, ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got := ParseDate("2025-03-15")
	if got == nil {
		t.Fatalf("expected parsed date")
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 15 {
		t.Fatalf("unexpected date: %v", got)
	}

	if ParseDate("not a date") != nil {
		t.Fatalf("expected nil for garbage input")
	}
	if ParseDate("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestParseDateDayFirst(t *testing.T) {
	t.Parallel()

	// 13/02/2025 只能按 日/月 解释
	got := ParseDateDayFirst("13/02/2025")
	if got == nil {
		t.Fatalf("expected parsed date")
	}
	if got.Month() != time.February || got.Day() != 13 {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestSanitizeNumber(t *testing.T) {
	t.Parallel()

	if got := SanitizeNumber(math.NaN()); got != nil {
		t.Fatalf("NaN want=nil got=%v", got)
	}
	if got := SanitizeNumber(math.Inf(1)); got != nil {
		t.Fatalf("+Inf want=nil got=%v", got)
	}
	if got := SanitizeNumber(3.14); got != 3.14 {
		t.Fatalf("3.14 want=3.14 got=%v", got)
	}
}

func TestCellValue(t *testing.T) {
	t.Parallel()

	if got := CellValue("  "); got != nil {
		t.Fatalf("blank want=nil got=%v", got)
	}
	if got := CellValue("1,200"); got != 1200.0 {
		t.Fatalf("1,200 want=1200 got=%v", got)
	}
	if got := CellValue("hello"); got != "hello" {
		t.Fatalf("hello want=hello got=%v", got)
	}
}

func TestLooksLikeCode(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"PRJ001", "proj-alpha", "AB12", "X9"} {
		if !looksLikeCode(s) {
			t.Fatalf("looksLikeCode(%q) want=true", s)
		}
	}
	for _, s := range []string{"", "a very long description of something", "hello world"} {
		if looksLikeCode(s) {
			t.Fatalf("looksLikeCode(%q) want=false", s)
		}
	}
}
