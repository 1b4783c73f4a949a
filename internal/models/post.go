package models

import "time"

// Post is the server-side post record.
type Post struct {
	ID            string
	Caption       string
	ImageURL      string
	OwnerUsername string
	CreatedAt     time.Time
}
