package cli

import (
	"context"

	"picfeed/internal/client/session"
	"picfeed/internal/validation"
)

// renderSection prints the collection behind the active section.
func (c *Cli) renderSection() {
	snap := c.state.Snapshot()

	if snap.User == nil {
		c.io.Println("Not logged in. Use 'login' or 'register'.")
		return
	}

	switch snap.Section {
	case session.SectionFeed:
		c.io.Println("=== Feed ===")
		c.renderPosts(snap.Feed)
	case session.SectionProfile:
		c.io.Printf("=== %s", snap.User.Username)
		if snap.User.FullName != "" {
			c.io.Printf(" (%s)", snap.User.FullName)
		}
		c.io.Println(" ===")
		c.renderPosts(snap.OwnPosts)
	case session.SectionCreate:
		c.io.Println("=== New post ===")
		c.io.Println("Use 'post' to publish a caption and image URL.")
	}
}

func (c *Cli) runPost(ctx context.Context) {
	caption, err := c.io.ReadInput(promptWithDefault("Caption", c.draftCaption))
	if err != nil {
		c.io.Printf("failed to read caption: %v\n", err)
		return
	}
	if caption == "" {
		caption = c.draftCaption
	}
	imageURL, err := c.io.ReadInput(promptWithDefault("Image URL", c.draftImageURL))
	if err != nil {
		c.io.Printf("failed to read image URL: %v\n", err)
		return
	}
	if imageURL == "" {
		imageURL = c.draftImageURL
	}

	post, err := c.compose.Submit(ctx, caption, imageURL)
	if err != nil {
		// The draft survives the failure and is offered again next time.
		c.draftCaption, c.draftImageURL = caption, imageURL
		if validation.IsValidationError(err) {
			c.io.Printf("Error: %v\n", err)
			return
		}
		c.renderError()
		return
	}
	c.draftCaption, c.draftImageURL = "", ""

	c.io.Printf("✓ Post published (id %s)\n", post.ID)
	c.renderSection()
}

func promptWithDefault(label, def string) string {
	if def == "" {
		return label + ": "
	}
	return label + " [" + def + "]: "
}
