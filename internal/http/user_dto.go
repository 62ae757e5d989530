package httpapi

import "time"

// UserDTO is the only user shape ever serialized; the password hash has no
// field to leak through.
type UserDTO struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   *string   `json:"address,omitempty"`
	BirthDate *string   `json:"birthDate,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Server) buildUserDTO(userID string) (UserDTO, error) {
	row := struct {
		ID        string     `db:"id"`
		FirstName string     `db:"first_name"`
		LastName  string     `db:"last_name"`
		Address   *string    `db:"address"`
		BirthDate *time.Time `db:"birth_date"`
		Gender    *string    `db:"gender"`
		Email     string     `db:"email"`
		Role      string     `db:"role"`
		CreatedAt time.Time  `db:"created_at"`
		UpdatedAt time.Time  `db:"updated_at"`
	}{}
	if err := s.DB.Get(&row, `
SELECT id, first_name, last_name, address, birth_date, gender, email, role, created_at, updated_at
FROM users
WHERE id = $1
`, userID); err != nil {
		return UserDTO{}, err
	}
	return UserDTO{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Address:   row.Address,
		BirthDate: formatDate(row.BirthDate),
		Gender:    row.Gender,
		Email:     row.Email,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
