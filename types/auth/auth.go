package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	MsgUsernameTooShort = "Username must be at least 3 characters long"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	MsgFirstNameMissing = "First name is required"
	MsgLastNameMissing  = "Last name is required"
	MsgEmailInvalid     = "Valid email is required"
	MsgCredentials      = "Username and password are required"
)

type RegisterRequest struct {
	Username   string  `json:"username" validate:"min=3"`
	Password   string  `json:"password" validate:"min=6"`
	FirstName  string  `json:"f_name" validate:"required"`
	LastName   string  `json:"l_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Sex        *string `json:"sex"`
	NationalID *string `json:"national_id"`
}

// fieldMessages maps a struct field to the message reported when any of
// its rules fail.
var fieldMessages = map[string]string{
	"Username":  MsgUsernameTooShort,
	"Password":  MsgPasswordTooShort,
	"FirstName": MsgFirstNameMissing,
	"LastName":  MsgLastNameMissing,
	"Email":     MsgEmailInvalid,
}

// Normalize trims names and lowercases the email.
func (r RegisterRequest) Normalize() RegisterRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

// Validate returns every violation of a normalized request in field order.
func (r RegisterRequest) Validate() []string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var violations []string
	seen := map[string]bool{}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok || seen[msg] {
			continue
		}
		seen[msg] = true
		violations = append(violations, msg)
	}
	return violations
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() []string {
	if err := validate.Struct(r); err != nil {
		return []string{MsgCredentials}
	}
	return nil
}
