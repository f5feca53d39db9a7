package service

import (
	"strconv"
	"strings"

	"clinic-admin/internal/domain"
)

// DoctorForm son los campos del formulario de médicos, tal como llegan.
type DoctorForm struct {
	FirstName   string `form:"firstName" validate:"required"`
	LastName    string `form:"lastName" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Phone       string `form:"phone" validate:"required"`
	Experience  string `form:"experience" validate:"required,number"`
	Education   string `form:"education" validate:"required"`
	SpecialtyID string `form:"specialtyId" validate:"required,number"`
}

// FormFromDoctor rellena el formulario de edición con un médico existente.
func FormFromDoctor(d domain.Doctor) DoctorForm {
	return DoctorForm{
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Phone:       d.Phone,
		Experience:  strconv.FormatInt(d.Experience.Int(), 10),
		Education:   d.Education,
		SpecialtyID: strconv.FormatInt(d.SpecialtyID, 10),
	}
}

// Input valida el formulario contra las especialidades disponibles.
func (f DoctorForm) Input(options []domain.Specialty) (domain.DoctorInput, error) {
	in, specialtyID, err := f.fields()
	if err != nil {
		return domain.DoctorInput{}, err
	}
	for _, sp := range options {
		if sp.ID == specialtyID {
			in.SpecialtyID = specialtyID
			return in, nil
		}
	}
	return domain.DoctorInput{}, domain.Invalid("specialtyId", "select a valid specialty")
}

// fields valida todo salvo la pertenencia de la especialidad, sin red.
func (f DoctorForm) fields() (domain.DoctorInput, int64, error) {
	f = DoctorForm{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Experience:  strings.TrimSpace(f.Experience),
		Education:   strings.TrimSpace(f.Education),
		SpecialtyID: strings.TrimSpace(f.SpecialtyID),
	}
	if err := domain.Validate(f); err != nil {
		return domain.DoctorInput{}, 0, err
	}
	exp, err := strconv.Atoi(f.Experience)
	if err != nil {
		return domain.DoctorInput{}, 0, domain.Invalid("experience", "experience must be a non-negative integer")
	}
	specialtyID, err := strconv.ParseInt(f.SpecialtyID, 10, 64)
	if err != nil || specialtyID <= 0 {
		return domain.DoctorInput{}, 0, domain.Invalid("specialtyId", "select a valid specialty")
	}
	return domain.DoctorInput{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Email:      f.Email,
		Phone:      f.Phone,
		Experience: exp,
		Education:  f.Education,
	}, specialtyID, nil
}

type SpecialtyForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
}

func FormFromSpecialty(sp domain.Specialty) SpecialtyForm {
	return SpecialtyForm{Name: sp.Name, Description: sp.Description}
}

func (f SpecialtyForm) Input() (domain.SpecialtyInput, error) {
	in := domain.SpecialtyInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}
	if err := domain.Validate(SpecialtyForm{Name: in.Name, Description: in.Description}); err != nil {
		return domain.SpecialtyInput{}, err
	}
	return in, nil
}

// AdminForm es el alta de administradores; el rol siempre es admin.
type AdminForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"notblank"`
	Phone     string `form:"phone" validate:"required"`
	BirthDate string `form:"birthDate" validate:"required,datetime=2006-01-02"`
}

func (f AdminForm) Input() (domain.UserInput, error) {
	f = AdminForm{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Password:  f.Password,
		Phone:     strings.TrimSpace(f.Phone),
		BirthDate: strings.TrimSpace(f.BirthDate),
	}
	if err := domain.Validate(f); err != nil {
		return domain.UserInput{}, err
	}
	return domain.UserInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Phone:     f.Phone,
		BirthDate: f.BirthDate,
		Role:      domain.RoleAdmin,
	}, nil
}

// UserForm es la edición de un usuario existente; no cambia la contraseña.
type UserForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Phone     string `form:"phone" validate:"required"`
	BirthDate string `form:"birthDate" validate:"required,datetime=2006-01-02"`
	Role      string `form:"role" validate:"required,oneof=patient admin"`
}

func FormFromUser(u domain.User) UserForm {
	return UserForm{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		BirthDate: u.BirthDay(),
		Role:      u.Role,
	}
}

func (f UserForm) Input() (domain.UserInput, error) {
	f = UserForm{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		BirthDate: strings.TrimSpace(f.BirthDate),
		Role:      strings.TrimSpace(f.Role),
	}
	if err := domain.Validate(f); err != nil {
		return domain.UserInput{}, err
	}
	return domain.UserInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		BirthDate: f.BirthDate,
		Role:      f.Role,
	}, nil
}

// StatusForm cambia el estado de una cita o una reseña.
type StatusForm struct {
	Status string `form:"status" validate:"required"`
}
