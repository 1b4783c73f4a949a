package cli

func (c *Cli) runStatus() {
	snap := c.state.Snapshot()

	if snap.User == nil {
		c.io.Println("Status: logged out")
	} else {
		c.io.Printf("Status: logged in as %s <%s>\n", snap.User.Username, snap.User.Email)
	}
	c.io.Printf("Section: %s\n", snap.Section)
	if snap.Busy {
		c.io.Println("An operation is in progress")
	}
	if snap.Err != "" {
		c.io.Printf("Last error: %s\n", snap.Err)
	}
}
