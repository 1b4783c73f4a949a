package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"picfeed/internal/client/compose"
	"picfeed/internal/client/iocli"
	"picfeed/internal/client/session"
	"picfeed/internal/client/view"
)

// Cli is the interactive shell. It renders controller state and forwards
// user intents; all session and fetch logic lives behind the controller,
// synchronizer and submission flow.
type Cli struct {
	io         iocli.IO
	state      *session.State
	controller *session.Controller
	sync       *view.Synchronizer
	compose    *compose.Flow

	// last unpublished draft, offered as the default on the next 'post'
	draftCaption  string
	draftImageURL string
}

func New(cio iocli.IO, state *session.State, controller *session.Controller, sync *view.Synchronizer, flow *compose.Flow) *Cli {
	return &Cli{
		io:         cio,
		state:      state,
		controller: controller,
		sync:       sync,
		compose:    flow,
	}
}

// Run restores any stored session and enters the command loop. Returns when
// the user exits or stdin is closed.
func (c *Cli) Run(ctx context.Context) error {
	c.io.Println("picfeed (type 'help' for commands)")

	if err := c.controller.Restore(ctx); err != nil {
		c.renderError()
	}
	if _, _, ok := c.state.Session(); ok {
		if err := c.sync.SessionEstablished(ctx); err != nil {
			c.renderError()
		}
	}
	c.runStatus()

	for {
		input, err := c.io.ReadInput("picfeed> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		args := strings.Fields(input)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "login":
			c.runLogin(ctx)
		case "register":
			c.runRegister(ctx)
		case "logout":
			c.runLogout(ctx)
		case "feed":
			c.enterSection(ctx, session.SectionFeed)
		case "profile":
			c.enterSection(ctx, session.SectionProfile)
		case "create":
			c.enterSection(ctx, session.SectionCreate)
		case "post":
			c.runPost(ctx)
		case "status":
			c.runStatus()
		case "help":
			c.printUsage()
		case "exit", "quit":
			return nil
		default:
			c.io.Printf("Unknown command: %s\n", args[0])
			c.printUsage()
		}
	}
}

// enterSection forwards the navigation intent and renders the result.
func (c *Cli) enterSection(ctx context.Context, section session.Section) {
	if err := c.sync.EnterSection(ctx, section); err != nil {
		c.renderError()
		return
	}
	c.renderSection()
}

// renderError prints the current user-visible error, if any.
func (c *Cli) renderError() {
	if snap := c.state.Snapshot(); snap.Err != "" {
		c.io.Printf("Error: %s\n", snap.Err)
	}
}

func (c *Cli) printUsage() {
	c.io.Println("Commands:")
	c.io.Println("  login       Login with username and password")
	c.io.Println("  register    Create a new account (logs in on success)")
	c.io.Println("  logout      Logout and forget the stored session")
	c.io.Println("  feed        Show the shared feed")
	c.io.Println("  profile     Show your own posts")
	c.io.Println("  create      Switch to the create section")
	c.io.Println("  post        Publish a new post (caption + image URL)")
	c.io.Println("  status      Show session status")
	c.io.Println("  exit        Quit")
}
