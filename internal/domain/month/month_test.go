package month

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	m, err := Parse("2024-06")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Year != 2024 || m.Mon != time.June {
		t.Fatalf("expected 2024-06, got %+v", m)
	}
	if m.String() != "2024-06" {
		t.Fatalf("expected zero-padded string, got %q", m.String())
	}
}

func TestStringZeroPadsSingleDigitMonths(t *testing.T) {
	m := Of(2024, time.March)
	if m.String() != "2024-03" {
		t.Fatalf("expected 2024-03, got %q", m.String())
	}
}

func TestParseRejectsUnpadded(t *testing.T) {
	if _, err := Parse("2024-6"); err == nil {
		t.Fatal("expected error for unpadded month")
	}
}

func TestCompareOrdering(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2024-02", "2024-03", -1},
		{"2024-03", "2024-03", 0},
		{"2024-09", "2024-08", 1},
		{"2023-12", "2024-01", -1},
	}
	for _, tc := range cases {
		a, err := Parse(tc.a)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.a, err)
		}
		b, err := Parse(tc.b)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.b, err)
		}
		if got := a.Compare(b); got != tc.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAddMonthsWrapsYear(t *testing.T) {
	m := Of(2024, time.November).AddMonths(3)
	if m.Year != 2025 || m.Mon != time.February {
		t.Fatalf("expected 2025-02, got %s", m)
	}
	m = Of(2024, time.January).AddMonths(-1)
	if m.Year != 2023 || m.Mon != time.December {
		t.Fatalf("expected 2023-12, got %s", m)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := Of(2024, time.June)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-06"` {
		t.Fatalf("unexpected json %s", data)
	}

	var decoded Month
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != m {
		t.Fatalf("round trip mismatch: %+v != %+v", decoded, m)
	}
}

func TestScanFromDBValues(t *testing.T) {
	var m Month
	if err := m.Scan("2024-06"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if m.String() != "2024-06" {
		t.Fatalf("expected 2024-06, got %s", m)
	}

	if err := m.Scan(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if m.String() != "2024-03" {
		t.Fatalf("expected 2024-03, got %s", m)
	}
}
