package domain

import "time"

// User represents one registered subscriber account.
//
// The email doubles as the login key and the token subject; it is unique
// across all users, as is the phone number. The password is only ever held
// as an Argon2id hash. PlanID is nil until the subscriber picks a plan.
type User struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	PlanID       *int64
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
