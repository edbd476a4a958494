// ABOUTME: Client-side form validation rules for auth and profile forms
// ABOUTME: Mirrors the server's field contract so 422s are the exception

package rules

import (
	"errors"
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Email validates a login/register email address
func Email(v string) error {
	if v == "" {
		return errors.New("email is required")
	}
	if len(v) < 5 || len(v) > 160 {
		return errors.New("email must be 5-160 characters")
	}
	if !emailPattern.MatchString(v) {
		return errors.New("email format is invalid")
	}
	return nil
}

// Password validates a password field
func Password(v string) error {
	if v == "" {
		return errors.New("password is required")
	}
	if len(v) < 6 || len(v) > 160 {
		return errors.New("password must be 6-160 characters")
	}
	return nil
}

// ConfirmPassword returns a validator checking agreement with the
// value entered in the password field.
func ConfirmPassword(password *string) func(string) error {
	return func(v string) error {
		if err := Password(v); err != nil {
			return err
		}
		if password != nil && v != *password {
			return errors.New("passwords do not match")
		}
		return nil
	}
}

// Name validates the profile name field
func Name(v string) error {
	if len(v) > 160 {
		return errors.New("name must be at most 160 characters")
	}
	return nil
}

// Phone validates the profile phone field
func Phone(v string) error {
	if len(v) > 20 {
		return errors.New("phone must be at most 20 characters")
	}
	return nil
}

// Address validates the profile address field
func Address(v string) error {
	if len(v) > 160 {
		return errors.New("address must be at most 160 characters")
	}
	return nil
}

// DateOfBirth validates a YYYY-MM-DD date in the past
func DateOfBirth(v string) error {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return errors.New("date of birth must be YYYY-MM-DD")
	}
	if !t.Before(time.Now()) {
		return errors.New("date of birth must be in the past")
	}
	return nil
}
