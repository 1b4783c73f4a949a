package storage

import "context"

// CredentialStore persists the opaque bearer token between runs. It never
// talks to the network and never inspects the token; whether the credential
// is still valid is only ever decided by the server.
type CredentialStore interface {
	// Save stores the token, replacing any previous one.
	Save(ctx context.Context, token string) error

	// Get returns the stored token.
	// Returns ErrCredentialNotFound if none is stored.
	Get(ctx context.Context) (string, error)

	// Delete removes the stored token (logout or server rejection).
	// Deleting an absent token is not an error.
	Delete(ctx context.Context) error
}
