package domain

// Doctor es un médico tal como lo devuelve la API de administración.
type Doctor struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Experience  Number     `json:"experience"`
	Education   string     `json:"education"`
	SpecialtyID int64      `json:"specialtyId"`
	Specialty   *Specialty `json:"Specialty,omitempty"`
}

// SpecialtyName devuelve el nombre de la especialidad asociada, si viene incluida.
func (d Doctor) SpecialtyName() string {
	if d.Specialty == nil {
		return ""
	}
	return d.Specialty.Name
}

// DoctorInput es el payload de alta y edición de médicos.
type DoctorInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Experience  int    `json:"experience"`
	Education   string `json:"education"`
	SpecialtyID int64  `json:"specialtyId"`
}
