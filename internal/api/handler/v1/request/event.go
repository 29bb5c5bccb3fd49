package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// EventDateLayout is the calendar date format accepted for events.
const EventDateLayout = "2006-01-02"

type CreateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date" format:"YYYY-MM-DD"`
	Time        string `json:"time"`
	Hall        string `json:"hall"`
	Description string `json:"description"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Date, validation.Required, validation.Date(EventDateLayout)),
		validation.Field(&req.Time, validation.Length(0, 50)),
		validation.Field(&req.Hall, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type UpdateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date" format:"YYYY-MM-DD"`
	Time        string `json:"time"`
	Hall        string `json:"hall"`
	Description string `json:"description"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Date, validation.Required, validation.Date(EventDateLayout)),
		validation.Field(&req.Time, validation.Length(0, 50)),
		validation.Field(&req.Hall, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}
