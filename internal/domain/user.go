package domain

// User es una cuenta de la clínica (paciente o administrador).
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
	Role      string `json:"role"`
}

// BirthDay recorta la fecha de nacimiento a YYYY-MM-DD.
func (u User) BirthDay() string {
	if len(u.BirthDate) > 10 {
		return u.BirthDate[:10]
	}
	return u.BirthDate
}

// UserInput es el payload de alta y edición de usuarios.
type UserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
	Role      string `json:"role"`
}
