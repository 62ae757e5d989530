package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// ImportedUser is one parsed row of a user-import CSV.
type ImportedUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Address   *string
	BirthDate *time.Time
	Gender    *string
	Role      string
}

// ParseUserCSV reads a header row plus data rows. Recognized headers:
// firstName, lastName, email, password, address, birthDate (2006-01-02),
// gender, role. Order is free; unknown columns are ignored. A row missing
// firstName, lastName, email or password fails the whole import.
func ParseUserCSV(r io.Reader) ([]ImportedUser, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, ErrBadRequest("CSV file is empty")
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"firstname", "lastname", "email", "password"} {
		if _, ok := index[required]; !ok {
			return nil, ErrBadRequest("CSV is missing the " + required + " column")
		}
	}
	users := []ImportedUser{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrBadRequest(fmt.Sprintf("CSV parse error near line %d", line+1))
		}
		line++
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		user := ImportedUser{
			FirstName: field("firstname"),
			LastName:  field("lastname"),
			Email:     strings.ToLower(field("email")),
			Password:  field("password"),
			Role:      strings.ToUpper(field("role")),
		}
		if user.FirstName == "" || user.LastName == "" || user.Email == "" || user.Password == "" {
			return nil, ErrBadRequest(fmt.Sprintf("line %d: firstName, lastName, email and password are required", line))
		}
		if user.Role == "" {
			user.Role = "GENERAL"
		}
		if !OneOf(user.Role, UserRoles) {
			return nil, ErrBadRequest(fmt.Sprintf("line %d: unknown role %q", line, user.Role))
		}
		if value := field("address"); value != "" {
			user.Address = &value
		}
		if value := field("gender"); value != "" {
			user.Gender = &value
		}
		if value := field("birthdate"); value != "" {
			parsed, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, ErrBadRequest(fmt.Sprintf("line %d: birthDate must be YYYY-MM-DD", line))
			}
			user.BirthDate = &parsed
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil, ErrBadRequest("CSV contains no data rows")
	}
	return users, nil
}
