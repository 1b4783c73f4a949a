package api

import "time"

// Post is a single published post. ID and OwnerUsername are assigned by the
// server; the client never fills them in.
type Post struct {
	ID            string    `json:"id"`
	Caption       string    `json:"caption"`
	ImageURL      string    `json:"image_url"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePostRequest is the body of POST /posts/.
type CreatePostRequest struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
}
