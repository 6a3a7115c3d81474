package action

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/muurk/jenkins-users/internal/jenkins"
)

// Validation messages shown to the user when required fields are empty
const (
	MsgCreateUserFields = "Please fill in all fields."
	MsgAssignRoleFields = "Please enter both username and role name."
	MsgDeleteUserFields = "Please enter a username to delete."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Fields holds the raw text of the form inputs
type Fields struct {
	Username string
	FullName string
	Email    string
	Role     string
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (f Fields) Trimmed() Fields {
	return Fields{
		Username: strings.TrimSpace(f.Username),
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Role:     strings.TrimSpace(f.Role),
	}
}

// Required field sets, one per action
type createUserInput struct {
	Username string `field:"username" validate:"required"`
	FullName string `field:"full name" validate:"required"`
	Email    string `field:"email" validate:"required"`
}

type assignRoleInput struct {
	Username string `field:"username" validate:"required"`
	Role     string `field:"role" validate:"required"`
}

type deleteUserInput struct {
	Username string `field:"username" validate:"required"`
}

// Request is a validated action ready to be executed
type Request struct {
	Kind   Kind
	Fields Fields
}

// Subject returns the username the request targets, if any
func (r Request) Subject() string {
	return r.Fields.Username
}

// Build validates fields for kind and returns the request to execute.
// It performs no I/O. Missing required fields give a *jenkins.ValidationError.
func Build(kind Kind, fields Fields) (Request, error) {
	fields = fields.Trimmed()
	req := Request{Kind: kind, Fields: fields}

	switch kind {
	case CreateUser:
		in := createUserInput{Username: fields.Username, FullName: fields.FullName, Email: fields.Email}
		return req, check(in, MsgCreateUserFields)
	case ListUsers:
		return req, nil
	case AssignRole:
		in := assignRoleInput{Username: fields.Username, Role: fields.Role}
		return req, check(in, MsgAssignRoleFields)
	case DeleteUser:
		in := deleteUserInput{Username: fields.Username}
		return req, check(in, MsgDeleteUserFields)
	default:
		return req, fmt.Errorf("unknown action %v", kind)
	}
}

func check(input any, message string) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return jenkins.NewValidationError(message)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return jenkins.NewValidationError(message, missing...)
}
