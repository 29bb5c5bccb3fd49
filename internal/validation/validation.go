// Package validation holds the canonical field rules applied at the service
// boundary before anything reaches the store. The source systems disagreed on
// several of these (phone length 10 vs 7-12, password strength); the rules
// below are the single adopted set:
//
//   - email must be a gmail.com address (business rule, not a general format check)
//   - phone is digits only, exactly 10 of them
//   - passwords are at least 6 characters with at least one letter and one digit
//   - ratings are integers in [1,5]
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const passwordPattern = `^(?=.*[A-Za-z])(?=.*\d).{6,}$`

var (
	ErrInvalidEmail  = errors.New("email must be a gmail.com address")
	ErrInvalidPhone  = errors.New("phone must be exactly 10 digits")
	ErrWeakPassword  = errors.New("password must be at least 6 characters and contain a letter and a digit")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@gmail\.com$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

	// The lookaheads need regexp2; stdlib RE2 cannot express them.
	passwordRegex = regexp2.MustCompile(passwordPattern, regexp2.None)
)

func Email(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}

	return nil
}

func Phone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidPhone
	}

	return nil
}

func Password(password string) error {
	ok, err := passwordRegex.MatchString(password)
	if err != nil || !ok {
		return ErrWeakPassword
	}

	return nil
}

func Rating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	return nil
}

// AttendeeFields checks the fields a registration carries. All three are
// required after trimming whitespace.
func AttendeeFields(name, email, phone string) error {
	err := validation.Errors{
		"name": validation.Validate(strings.TrimSpace(name), validation.Required, validation.Length(1, 100)),
	}.Filter()
	if err != nil {
		return err
	}

	if err := Email(email); err != nil {
		return err
	}

	return Phone(phone)
}
