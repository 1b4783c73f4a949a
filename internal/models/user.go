package models

import "time"

// User is the server-side account record. HashedPassword is a bcrypt hash;
// the plaintext password never reaches storage.
type User struct {
	ID             string
	Username       string
	Email          string
	FullName       string
	HashedPassword string
	Disabled       bool
	CreatedAt      time.Time
}
