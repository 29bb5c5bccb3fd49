package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PostAnnouncementRequest struct {
	Message string `json:"message"`
}

func (req *PostAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 1000)),
	)
}
