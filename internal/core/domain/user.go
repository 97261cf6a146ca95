package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a user together with the aggregate counts shown on the
// profile page.
type Profile struct {
	User              User  `json:"user"`
	PollsCreated      int64 `json:"pollsCreated"`
	PollsParticipated int64 `json:"pollsParticipated"`
}
