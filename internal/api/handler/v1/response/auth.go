package response

import "github.com/eventorg/smart-event-api/internal/domain"

type LoginResponse struct {
	Token   string         `json:"token"`
	Account domain.Account `json:"account"`
}
