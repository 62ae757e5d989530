package services

import (
	"strings"
	"testing"
)

func TestParseUserCSV(t *testing.T) {
	csv := `email,firstName,lastName,password,role,birthDate,address
ana@example.com,Ana,Pop,secret1,ADMIN,1990-04-12,"Str. Lunga 4"
dan@example.com,Dan,Ionescu,secret2,,,
`
	users, err := ParseUserCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d", len(users))
	}
	first := users[0]
	if first.Email != "ana@example.com" || first.FirstName != "Ana" || first.Role != "ADMIN" {
		t.Fatalf("first row parsed wrong: %+v", first)
	}
	if first.BirthDate == nil || first.BirthDate.Format("2006-01-02") != "1990-04-12" {
		t.Fatalf("birthDate parsed wrong: %v", first.BirthDate)
	}
	if first.Address == nil || *first.Address != "Str. Lunga 4" {
		t.Fatalf("address parsed wrong: %v", first.Address)
	}
	if users[1].Role != "GENERAL" {
		t.Fatalf("blank role should default to GENERAL, got %q", users[1].Role)
	}
	if users[1].BirthDate != nil || users[1].Address != nil {
		t.Fatal("blank optional columns should stay nil")
	}
}

func TestParseUserCSVNormalizesEmail(t *testing.T) {
	csv := "firstName,lastName,email,password\nAna,Pop,ANA@Example.COM,secret\n"
	users, err := ParseUserCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if users[0].Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", users[0].Email)
	}
}

func TestParseUserCSVMissingColumn(t *testing.T) {
	csv := "firstName,lastName,email\nAna,Pop,ana@example.com\n"
	if _, err := ParseUserCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("missing password column accepted")
	}
}

func TestParseUserCSVMissingRequiredField(t *testing.T) {
	csv := "firstName,lastName,email,password\nAna,,ana@example.com,secret\n"
	if _, err := ParseUserCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("row without lastName accepted")
	}
}

func TestParseUserCSVUnknownRole(t *testing.T) {
	csv := "firstName,lastName,email,password,role\nAna,Pop,ana@example.com,secret,WIZARD\n"
	if _, err := ParseUserCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("unknown role accepted")
	}
}

func TestParseUserCSVBadBirthDate(t *testing.T) {
	csv := "firstName,lastName,email,password,birthDate\nAna,Pop,ana@example.com,secret,12/04/1990\n"
	if _, err := ParseUserCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("bad birthDate accepted")
	}
}

func TestParseUserCSVNoDataRows(t *testing.T) {
	csv := "firstName,lastName,email,password\n"
	if _, err := ParseUserCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("header-only file accepted")
	}
}

func TestParseUserCSVEmpty(t *testing.T) {
	if _, err := ParseUserCSV(strings.NewReader("")); err == nil {
		t.Fatal("empty file accepted")
	}
}
