package domain

import "time"

// Registration statuses. A registration starts pending and only moves
// forward: pending -> paid, or pending|paid -> cancelled. There is no way
// back out of cancelled.
const (
	RegistrationPending   = "pending"
	RegistrationPaid      = "paid"
	RegistrationCancelled = "cancelled"
)

type Registration struct {
	ID              uint      `json:"id"`
	EventID         uint      `json:"event_id"`
	AccountUsername string    `json:"account_username"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Status          string    `json:"status"`
	RegisteredAt    time.Time `json:"registered_at"`
}

// Active reports whether the registration still counts against the event,
// i.e. it has not been cancelled.
func (r Registration) Active() bool {
	return r.Status == RegistrationPending || r.Status == RegistrationPaid
}
