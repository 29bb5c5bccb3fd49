package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	rules "github.com/eventorg/smart-event-api/internal/validation"
)

type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Phone, validation.Required),
	)
	if err != nil {
		return err
	}

	return rules.AttendeeFields(req.Name, req.Email, req.Phone)
}
