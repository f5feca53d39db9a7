package service

import (
	"errors"
	"strconv"
	"testing"

	"clinic-admin/internal/domain"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestDoctorFormInput(t *testing.T) {
	options := []domain.Specialty{{ID: 3, Name: "Cardiology"}}

	in, err := validDoctorForm("3").Input(options)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Experience != 12 || in.SpecialtyID != 3 {
		t.Fatalf("unexpected input %+v", in)
	}

	cases := map[string]func(f *DoctorForm){
		"firstName":   func(f *DoctorForm) { f.FirstName = "" },
		"email":       func(f *DoctorForm) { f.Email = "not-an-email" },
		"phone":       func(f *DoctorForm) { f.Phone = "   " },
		"experience":  func(f *DoctorForm) { f.Experience = "2.5" },
		"specialtyId": func(f *DoctorForm) { f.SpecialtyID = "abc" },
	}
	for field, mutate := range cases {
		form := validDoctorForm("3")
		mutate(&form)
		_, err := form.Input(options)
		vErr, ok := err.(*domain.ValidationError)
		if !ok || vErr.Field != field {
			t.Fatalf("%s: expected validation error, got %v", field, err)
		}
	}
}

func TestFormFromDoctorRoundTrip(t *testing.T) {
	d := domain.Doctor{FirstName: "A", LastName: "B", Email: "a@b.test", Phone: "1", Experience: 7, Education: "MIT", SpecialtyID: 3}
	form := FormFromDoctor(d)
	if form.Experience != "7" || form.SpecialtyID != "3" {
		t.Fatalf("unexpected form %+v", form)
	}
	if _, err := form.Input([]domain.Specialty{{ID: 3}}); err != nil {
		t.Fatalf("prefilled form should validate: %v", err)
	}
}

func TestAdminFormRejectsDisplayNameEmail(t *testing.T) {
	form := AdminForm{
		FirstName: "Ana",
		LastName:  "Admin",
		Email:     "Ana Admin <ana@clinic.test>",
		Password:  "secret",
		Phone:     "555",
		BirthDate: "1990-01-02",
	}
	var vErr *domain.ValidationError
	if _, err := form.Input(); !errors.As(err, &vErr) || vErr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}

	form.Email = "  ana@clinic.test "
	in, err := form.Input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Email != "ana@clinic.test" || in.Role != domain.RoleAdmin {
		t.Fatalf("unexpected input %+v", in)
	}
}
