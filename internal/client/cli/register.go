package cli

import (
	"context"
)

func (c *Cli) runRegister(ctx context.Context) {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		c.io.Printf("failed to read username: %v\n", err)
		return
	}
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		c.io.Printf("failed to read email: %v\n", err)
		return
	}
	fullName, err := c.io.ReadInput("Full name (optional): ")
	if err != nil {
		c.io.Printf("failed to read full name: %v\n", err)
		return
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		c.io.Printf("failed to read password: %v\n", err)
		return
	}

	// A successful registration chains straight into login with the same
	// credentials; a failed one never attempts it.
	if err := c.controller.Register(ctx, username, password, email, fullName); err != nil {
		c.renderError()
		return
	}

	if snap := c.state.Snapshot(); snap.User != nil {
		c.io.Printf("✓ Account created, logged in as %s\n", snap.User.Username)
	}

	if err := c.sync.SessionEstablished(ctx); err != nil {
		c.renderError()
		return
	}
	c.renderSection()
}
