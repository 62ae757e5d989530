package httpapi

import (
	"testing"
	"time"
)

func TestParseInt(t *testing.T) {
	cases := []struct {
		raw      string
		fallback int
		want     int
	}{
		{"", 10, 10},
		{"5", 10, 5},
		{"0", 10, 10},
		{"-3", 10, 10},
		{"abc", 10, 10},
	}
	for _, tc := range cases {
		if got := parseInt(tc.raw, tc.fallback); got != tc.want {
			t.Errorf("parseInt(%q, %d) = %d, want %d", tc.raw, tc.fallback, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := parseDate("2025-03-14")
	if err != nil || parsed == nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if parsed.Format("2006-01-02") != "2025-03-14" {
		t.Fatalf("parsed = %v", parsed)
	}

	parsed, err = parseDate("  ")
	if err != nil || parsed != nil {
		t.Fatalf("blank input should be nil, nil; got %v, %v", parsed, err)
	}

	if _, err := parseDate("14/03/2025"); err == nil {
		t.Fatal("slash format accepted")
	}
}

func TestFormatDate(t *testing.T) {
	if formatDate(nil) != nil {
		t.Fatal("nil time should format to nil")
	}
	value := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	if got := formatDate(&value); got == nil || *got != "2025-03-14" {
		t.Fatalf("formatDate = %v", got)
	}
}

func TestTrimPtr(t *testing.T) {
	if trimPtr(nil) != nil {
		t.Fatal("nil input should stay nil")
	}
	blank := "   "
	if trimPtr(&blank) != nil {
		t.Fatal("whitespace-only input should become nil")
	}
	padded := "  hello "
	if got := trimPtr(&padded); got == nil || *got != "hello" {
		t.Fatalf("trimPtr = %v", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
