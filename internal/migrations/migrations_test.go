package migrations

import (
	"testing"
	"testing/fstest"
)

func TestListMigrationsOrder(t *testing.T) {
	source := fstest.MapFS{
		"V10__add_indexes.sql": {Data: []byte("SELECT 10")},
		"V2__seed.sql":         {Data: []byte("SELECT 2")},
		"V1__init.sql":         {Data: []byte("SELECT 1")},
		"notes.txt":            {Data: []byte("ignored")},
	}
	migs, err := listMigrations(source)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("len = %d", len(migs))
	}
	want := []string{"V1__init.sql", "V2__seed.sql", "V10__add_indexes.sql"}
	for i, name := range want {
		if migs[i].Name != name {
			t.Fatalf("order[%d] = %s, want %s", i, migs[i].Name, name)
		}
	}
	if migs[0].SQL != "SELECT 1" {
		t.Fatalf("content not loaded: %q", migs[0].SQL)
	}
}

func TestParseVersion(t *testing.T) {
	cases := []struct {
		name    string
		version int
		ok      bool
	}{
		{"V1__init.sql", 1, true},
		{"V42__later.sql", 42, true},
		{"baseline.sql", 0, false},
		{"Vx__bad.sql", 0, false},
	}
	for _, tc := range cases {
		version, ok := parseVersion(tc.name)
		if version != tc.version || ok != tc.ok {
			t.Errorf("parseVersion(%q) = %d, %v; want %d, %v", tc.name, version, ok, tc.version, tc.ok)
		}
	}
}
