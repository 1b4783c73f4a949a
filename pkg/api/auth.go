package api

// Token is the response of a successful POST /token call.
type Token struct {
	AccessToken string `json:"access_token"` // opaque bearer token
	TokenType   string `json:"token_type"`   // always "bearer"
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"` // optional
}

// User is the account record returned by /register and /users/me/.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Disabled bool   `json:"disabled"`
}

// ErrorResponse is the error body used by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"` // human-readable error message
}
