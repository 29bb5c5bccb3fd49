package domain

import "time"

type Feedback struct {
	ID              uint      `json:"id"`
	EventID         uint      `json:"event_id"`
	AccountUsername string    `json:"account_username"`
	Rating          int       `json:"rating"`
	Comments        string    `json:"comments,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
