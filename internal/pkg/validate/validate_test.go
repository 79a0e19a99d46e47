package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStructCollectsAllFailures(t *testing.T) {
	err := Struct(&signUpForm{})
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs["email"], "This field is required.")
	assert.Contains(t, fieldErrs["password"], "This field is required.")
}

func TestStructMessages(t *testing.T) {
	cases := []struct {
		name    string
		form    signUpForm
		field   string
		message string
	}{
		{"bad email", signUpForm{Email: "nope", Password: "secret1"}, "email", "Enter a valid email address."},
		{"short password", signUpForm{Email: "a@b.com", Password: "abc"}, "password", "Password must be at least 6 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(&tc.form)
			fieldErrs, ok := AsFieldErrors(err)
			require.True(t, ok)
			assert.Contains(t, fieldErrs[tc.field], tc.message)
		})
	}
}

func TestStructValidInput(t *testing.T) {
	assert.NoError(t, Struct(&signUpForm{Email: "a@b.com", Password: "secret1"}))
}

func TestAsFieldErrors(t *testing.T) {
	_, ok := AsFieldErrors(errors.New("plain"))
	assert.False(t, ok)

	fieldErrs := FieldErrors{}
	fieldErrs.Add("name", "taken")
	got, ok := AsFieldErrors(error(fieldErrs))
	require.True(t, ok)
	assert.Equal(t, []string{"taken"}, got["name"])
}
