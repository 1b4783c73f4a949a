package cli

import (
	"context"
)

func (c *Cli) runLogin(ctx context.Context) {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		c.io.Printf("failed to read username: %v\n", err)
		return
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		c.io.Printf("failed to read password: %v\n", err)
		return
	}

	if err := c.controller.Login(ctx, username, password); err != nil {
		c.renderError()
		return
	}

	if snap := c.state.Snapshot(); snap.User != nil {
		c.io.Printf("✓ Logged in as %s\n", snap.User.Username)
	}

	if err := c.sync.SessionEstablished(ctx); err != nil {
		c.renderError()
		return
	}
	c.renderSection()
}

func (c *Cli) runLogout(ctx context.Context) {
	c.controller.Logout(ctx)
	c.io.Println("✓ Logged out")
}
