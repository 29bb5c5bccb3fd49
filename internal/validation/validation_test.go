package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"gmail address passes", "alice@gmail.com", nil},
		{"dots and plus pass", "a.b+c@gmail.com", nil},
		{"surrounding whitespace is trimmed", "  bob@gmail.com ", nil},
		{"yahoo is rejected", "x@yahoo.com", ErrInvalidEmail},
		{"bare domain is rejected", "@gmail.com", ErrInvalidEmail},
		{"missing domain is rejected", "alice", ErrInvalidEmail},
		{"empty is rejected", "", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, Email(tt.email))
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{"ten digits pass", "1234567890", nil},
		{"nine digits fail", "123456789", ErrInvalidPhone},
		{"eleven digits fail", "12345678901", ErrInvalidPhone},
		{"letters fail", "12345abcde", ErrInvalidPhone},
		{"dashes fail", "123-456-7890", ErrInvalidPhone},
		{"empty fails", "", ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, Phone(tt.phone))
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"letter and digit pass", "abc123", nil},
		{"long mixed passes", "correcthorse1", nil},
		{"too short fails", "ab1", ErrWeakPassword},
		{"letters only fail", "abcdef", ErrWeakPassword},
		{"digits only fail", "123456", ErrWeakPassword},
		{"empty fails", "", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, Password(tt.password))
		})
	}
}

func TestRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, Rating(rating))
	}

	assert.Equal(t, ErrInvalidRating, Rating(0))
	assert.Equal(t, ErrInvalidRating, Rating(6))
	assert.Equal(t, ErrInvalidRating, Rating(-1))
}

func TestAttendeeFields(t *testing.T) {
	assert.NoError(t, AttendeeFields("Alice", "alice@gmail.com", "1234567890"))
	assert.Error(t, AttendeeFields("   ", "alice@gmail.com", "1234567890"))
	assert.Equal(t, ErrInvalidEmail, AttendeeFields("Alice", "alice@yahoo.com", "1234567890"))
	assert.Equal(t, ErrInvalidPhone, AttendeeFields("Alice", "alice@gmail.com", "12345"))
}
