package session

import (
	"errors"
	"sync"

	"picfeed/pkg/api"
)

// Section is the active UI view. Pure navigation state: never persisted,
// never sent to the server.
type Section string

const (
	SectionFeed    Section = "feed"
	SectionProfile Section = "profile"
	SectionCreate  Section = "create"
)

// Phase is the session lifecycle phase.
type Phase int

const (
	LoggedOut Phase = iota
	Authenticating
	LoggedIn
)

// ErrBusy is returned when a mutating flow (login, register, create post) is
// requested while another one is still in flight.
var ErrBusy = errors.New("another operation is in progress")

// State is the single owned session state shared by the controller, the view
// synchronizer and the submission flow. All access goes through its methods.
//
// Every mutation that lands after a network round-trip must pass the epoch it
// captured before suspending: the epoch changes whenever a session starts or
// ends, so results belonging to a session that is no longer current are
// silently dropped instead of applied.
type State struct {
	mu       sync.Mutex
	phase    Phase
	user     *api.User
	token    string
	section  Section
	feed     []api.Post
	ownPosts []api.Post
	errMsg   string
	busy     bool
	epoch    uint64
}

// NewState returns a logged-out state showing the feed section.
func NewState() *State {
	return &State{section: SectionFeed}
}

// Snapshot is the render state handed to the presentation layer.
type Snapshot struct {
	Phase    Phase
	User     *api.User
	Section  Section
	Feed     []api.Post
	OwnPosts []api.Post
	Busy     bool
	Err      string
}

// Snapshot returns a consistent copy of the render state. The post slices are
// shared but never mutated in place; collections are only ever replaced
// wholesale.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:    s.phase,
		User:     s.user,
		Section:  s.section,
		Feed:     s.feed,
		OwnPosts: s.ownPosts,
		Busy:     s.busy,
		Err:      s.errMsg,
	}
}

// Epoch returns the current session epoch. Flows capture it before a network
// call and pass it back when applying the result.
func (s *State) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Session returns the current user and token, and whether a session exists.
func (s *State) Session() (*api.User, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, "", false
	}
	return s.user, s.token, true
}

// ActiveSection returns the current navigation section.
func (s *State) ActiveSection() Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

// SetSection records the new active section without triggering any fetch.
func (s *State) SetSection(section Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section = section
}

// BeginFlow acquires the single busy slot shared by all mutating flows.
// Returns ErrBusy if another flow holds it.
func (s *State) BeginFlow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// EndFlow releases the busy slot.
func (s *State) EndFlow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// SetAuthenticating marks that a credential is being resolved.
func (s *State) SetAuthenticating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Authenticating
}

// EstablishSession installs user and token as the current session if epoch is
// still current. It clears any error, bumps the epoch (a new session starts)
// and reports whether it applied.
func (s *State) EstablishSession(epoch uint64, user *api.User, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.phase = LoggedIn
	s.user = user
	s.token = token
	s.errMsg = ""
	s.epoch++
	return true
}

// ClearSession drops user, token, both collections and any prior error, sets
// errMsg as the new message and bumps the epoch so in-flight results from the
// old session are discarded. Unconditional: used for logout and for
// credential-resolution failures alike.
func (s *State) ClearSession(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = LoggedOut
	s.user = nil
	s.token = ""
	s.feed = nil
	s.ownPosts = nil
	s.errMsg = errMsg
	s.epoch++
}

// SetLoggedOut resets the phase after a failed login without touching the
// collections or the stored credential state.
func (s *State) SetLoggedOut(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = LoggedOut
	s.user = nil
	s.token = ""
	s.errMsg = errMsg
}

// ReplaceFeed swaps in a freshly fetched feed collection if epoch is still
// current. Reports whether it applied.
func (s *State) ReplaceFeed(epoch uint64, posts []api.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || s.user == nil {
		return false
	}
	s.feed = posts
	return true
}

// ReplaceOwnPosts swaps in a freshly fetched own-posts collection if epoch is
// still current. Reports whether it applied.
func (s *State) ReplaceOwnPosts(epoch uint64, posts []api.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || s.user == nil {
		return false
	}
	s.ownPosts = posts
	return true
}

// SetError surfaces a user-visible message, overwriting any prior one, if
// epoch is still current.
func (s *State) SetError(epoch uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.errMsg = msg
	return true
}

// ClearError removes the current user-visible message.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}
