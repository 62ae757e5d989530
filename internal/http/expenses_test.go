package httpapi

import (
	"testing"
	"time"
)

func TestBuildExpenseFilterEmpty(t *testing.T) {
	where, args, err := buildExpenseFilter("", "", "", "")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if where != "" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildExpenseFilterCategoryOnly(t *testing.T) {
	where, args, err := buildExpenseFilter("material", "", "", "")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if where != "WHERE category = $1" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 1 || args[0] != "material" {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildExpenseFilterAllParams(t *testing.T) {
	where, args, err := buildExpenseFilter("labor", "2025-01-01", "2025-01-31", "proj-1")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	want := "WHERE category = $1 AND expense_date >= $2 AND expense_date <= $3 AND project_id = $4"
	if where != want {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 4 {
		t.Fatalf("args = %v", args)
	}
	start, ok := args[1].(time.Time)
	if !ok || start.Format("2006-01-02") != "2025-01-01" {
		t.Fatalf("start arg = %v", args[1])
	}
	end, ok := args[2].(time.Time)
	if !ok || end.Format("2006-01-02") != "2025-01-31" {
		t.Fatalf("end arg = %v", args[2])
	}
	if args[3] != "proj-1" {
		t.Fatalf("project arg = %v", args[3])
	}
}

func TestBuildExpenseFilterPlaceholderNumbering(t *testing.T) {
	// Without a category the date clauses must start at $1.
	where, args, err := buildExpenseFilter("", "2025-01-01", "", "proj-9")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if where != "WHERE expense_date >= $1 AND project_id = $2" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildExpenseFilterUnknownCategory(t *testing.T) {
	if _, _, err := buildExpenseFilter("snacks", "", "", ""); err == nil {
		t.Fatal("unknown category accepted")
	}
}

func TestBuildExpenseFilterBadDates(t *testing.T) {
	if _, _, err := buildExpenseFilter("", "01/01/2025", "", ""); err == nil {
		t.Fatal("bad startDate accepted")
	}
	if _, _, err := buildExpenseFilter("", "", "January 3", ""); err == nil {
		t.Fatal("bad endDate accepted")
	}
}
