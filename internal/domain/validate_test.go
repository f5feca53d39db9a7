package domain

import (
	"errors"
	"testing"
)

type sampleForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"notblank"`
	Born     string `form:"birthDate" validate:"required,datetime=2006-01-02"`
	Years    string `form:"experience" validate:"required,number"`
	Role     string `form:"role" validate:"required,oneof=patient admin"`
}

func validSample() sampleForm {
	return sampleForm{Email: "ana@clinic.test", Password: "secret", Born: "1990-04-02", Years: "3", Role: RoleAdmin}
}

func TestValidateAcceptsWellFormedForm(t *testing.T) {
	if err := Validate(validSample()); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestValidateNamesFieldByFormTag(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *sampleForm)
		field  string
	}{
		{"missing email", func(f *sampleForm) { f.Email = "" }, "email"},
		{"display name email", func(f *sampleForm) { f.Email = "Dr House <house@clinic.test>" }, "email"},
		{"blank password", func(f *sampleForm) { f.Password = "   " }, "password"},
		{"bad date", func(f *sampleForm) { f.Born = "02/04/1990" }, "birthDate"},
		{"negative years", func(f *sampleForm) { f.Years = "-1" }, "experience"},
		{"fractional years", func(f *sampleForm) { f.Years = "2.5" }, "experience"},
		{"unknown role", func(f *sampleForm) { f.Role = "doctor" }, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validSample()
			tc.mutate(&form)
			var vErr *ValidationError
			if err := Validate(form); !errors.As(err, &vErr) || vErr.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestValidateReportsFirstFieldInOrder(t *testing.T) {
	form := validSample()
	form.Email = ""
	form.Role = ""
	err := Validate(form)
	if err == nil || err.Error() != "email: email is required" {
		t.Fatalf("unexpected error %v", err)
	}
}
