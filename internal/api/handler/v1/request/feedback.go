package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitFeedbackRequest struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

func (req *SubmitFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comments, validation.Length(0, 1000)),
	)
}
