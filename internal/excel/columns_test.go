package excel

import "testing"

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		want  int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AU", 46},
		{"BI", 60},
		{"a", 0},
		{"au", 46},
	}
	for _, c := range cases {
		if got := ColumnIndex(c.label); got != c.want {
			t.Fatalf("ColumnIndex(%q) want=%d got=%d", c.label, c.want, got)
		}
	}
}

func TestColumnIndex_Invalid(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"", "A1", "中", "A B"} {
		if got := ColumnIndex(label); got != -1 {
			t.Fatalf("ColumnIndex(%q) want=-1 got=%d", label, got)
		}
	}
}

func TestColumnLabel_RoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		label := ColumnLabel(i)
		if got := ColumnIndex(label); got != i {
			t.Fatalf("round trip %d -> %q -> %d", i, label, got)
		}
	}
	if got := ColumnLabel(26); got != "AA" {
		t.Fatalf("ColumnLabel(26) want=AA got=%s", got)
	}
}
