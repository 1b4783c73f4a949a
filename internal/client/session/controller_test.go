package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "picfeed/internal/client/api"
	"picfeed/internal/client/storage"
	"picfeed/pkg/api"
)

// mockGateway implements clientapi.Gateway for testing
type mockGateway struct {
	mu sync.Mutex

	authenticateFn func(ctx context.Context, username, password string) (*api.Token, error)
	registerFn     func(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	currentUserFn  func(ctx context.Context, token string) (*api.User, error)
	listFeedFn     func(ctx context.Context) ([]api.Post, error)
	listOwnFn      func(ctx context.Context, token string) ([]api.Post, error)
	createPostFn   func(ctx context.Context, token string, req api.CreatePostRequest) (*api.Post, error)

	authenticateCalls int
	registerCalls     int
	currentUserCalls  int
	listFeedCalls     int
	listOwnCalls      int
	createPostCalls   int
}

func (m *mockGateway) Authenticate(ctx context.Context, username, password string) (*api.Token, error) {
	m.mu.Lock()
	m.authenticateCalls++
	fn := m.authenticateFn
	m.mu.Unlock()
	if fn == nil {
		return &api.Token{AccessToken: "tok-default", TokenType: "bearer"}, nil
	}
	return fn(ctx, username, password)
}

func (m *mockGateway) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	m.mu.Lock()
	m.registerCalls++
	fn := m.registerFn
	m.mu.Unlock()
	if fn == nil {
		return &api.User{Username: req.Username, Email: req.Email, FullName: req.FullName}, nil
	}
	return fn(ctx, req)
}

func (m *mockGateway) CurrentUser(ctx context.Context, token string) (*api.User, error) {
	m.mu.Lock()
	m.currentUserCalls++
	fn := m.currentUserFn
	m.mu.Unlock()
	if fn == nil {
		return &api.User{Username: "alice", Email: "alice@example.com"}, nil
	}
	return fn(ctx, token)
}

func (m *mockGateway) ListFeed(ctx context.Context) ([]api.Post, error) {
	m.mu.Lock()
	m.listFeedCalls++
	fn := m.listFeedFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (m *mockGateway) ListOwnPosts(ctx context.Context, token string) ([]api.Post, error) {
	m.mu.Lock()
	m.listOwnCalls++
	fn := m.listOwnFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, token)
}

func (m *mockGateway) CreatePost(ctx context.Context, token string, req api.CreatePostRequest) (*api.Post, error) {
	m.mu.Lock()
	m.createPostCalls++
	fn := m.createPostFn
	m.mu.Unlock()
	if fn == nil {
		return &api.Post{ID: "1", Caption: req.Caption, ImageURL: req.ImageURL}, nil
	}
	return fn(ctx, token, req)
}

func (m *mockGateway) calls() (authenticate, register, currentUser, listFeed, listOwn, createPost int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateCalls, m.registerCalls, m.currentUserCalls, m.listFeedCalls, m.listOwnCalls, m.createPostCalls
}

// memCredStore implements storage.CredentialStore in memory for testing
type memCredStore struct {
	mu    sync.Mutex
	token string
	ok    bool
}

func (m *memCredStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = token, true
	return nil
}

func (m *memCredStore) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return "", storage.ErrCredentialNotFound
	}
	return m.token, nil
}

func (m *memCredStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = "", false
	return nil
}

func (m *memCredStore) stored() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.ok
}

func newTestController(gw *mockGateway, creds *memCredStore) (*Controller, *State) {
	state := NewState()
	logger := slog.New(slog.DiscardHandler)
	return NewController(state, gw, creds, logger), state
}

func TestRestore_NoStoredCredential(t *testing.T) {
	gw := &mockGateway{}
	creds := &memCredStore{}
	ctrl, state := newTestController(gw, creds)

	require.NoError(t, ctrl.Restore(context.Background()))

	snap := state.Snapshot()
	assert.Equal(t, LoggedOut, snap.Phase)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Err)

	_, _, currentUser, _, _, _ := gw.calls()
	assert.Zero(t, currentUser)
}

func TestRestore_RejectedCredential(t *testing.T) {
	// stored credential is invalid: resolution fails with 401, the
	// credential is cleared and the expiry message is surfaced
	gw := &mockGateway{
		currentUserFn: func(ctx context.Context, token string) (*api.User, error) {
			return nil, &clientapi.StatusError{Code: http.StatusUnauthorized, Detail: "Could not validate credentials"}
		},
	}
	creds := &memCredStore{token: "stale-token", ok: true}
	ctrl, state := newTestController(gw, creds)

	err := ctrl.Restore(context.Background())
	require.Error(t, err)

	snap := state.Snapshot()
	assert.Equal(t, LoggedOut, snap.Phase)
	assert.Nil(t, snap.User)
	assert.Equal(t, "Session expired. Please login again.", snap.Err)

	_, ok := creds.stored()
	assert.False(t, ok, "rejected credential must be deleted")
}

func TestRestore_ValidCredential(t *testing.T) {
	gw := &mockGateway{}
	creds := &memCredStore{token: "tok-good", ok: true}
	ctrl, state := newTestController(gw, creds)

	require.NoError(t, ctrl.Restore(context.Background()))

	snap := state.Snapshot()
	assert.Equal(t, LoggedIn, snap.Phase)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alice", snap.User.Username)

	token, ok := creds.stored()
	assert.True(t, ok)
	assert.Equal(t, "tok-good", token)
}

func TestLogin_BadPassword(t *testing.T) {
	gw := &mockGateway{
		authenticateFn: func(ctx context.Context, username, password string) (*api.Token, error) {
			return nil, &clientapi.StatusError{Code: http.StatusUnauthorized, Detail: "Incorrect password"}
		},
	}
	creds := &memCredStore{}
	ctrl, state := newTestController(gw, creds)

	err := ctrl.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	snap := state.Snapshot()
	assert.Equal(t, "Incorrect password", snap.Err)
	assert.Nil(t, snap.User)

	_, ok := creds.stored()
	assert.False(t, ok, "credential must not be written on failed login")
}

func TestLogin_FallbackMessage(t *testing.T) {
	gw := &mockGateway{
		authenticateFn: func(ctx context.Context, username, password string) (*api.Token, error) {
			return nil, errors.New("connection refused")
		},
	}
	ctrl, state := newTestController(gw, &memCredStore{})

	err := ctrl.Login(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.Equal(t, MsgLoginFailed, state.Snapshot().Err)
}

func TestLogin_Success(t *testing.T) {
	gw := &mockGateway{
		authenticateFn: func(ctx context.Context, username, password string) (*api.Token, error) {
			return &api.Token{AccessToken: "tok-alice", TokenType: "bearer"}, nil
		},
	}
	creds := &memCredStore{}
	ctrl, state := newTestController(gw, creds)

	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))

	snap := state.Snapshot()
	assert.Equal(t, LoggedIn, snap.Phase)
	require.NotNil(t, snap.User)
	assert.False(t, snap.Busy)
	assert.Empty(t, snap.Err)

	// invariant: a non-nil user implies a stored credential
	token, ok := creds.stored()
	require.True(t, ok)
	assert.Equal(t, "tok-alice", token)
}

func TestRegister_ChainsIntoLogin(t *testing.T) {
	gw := &mockGateway{
		authenticateFn: func(ctx context.Context, username, password string) (*api.Token, error) {
			return &api.Token{AccessToken: "tok-bob", TokenType: "bearer"}, nil
		},
		currentUserFn: func(ctx context.Context, token string) (*api.User, error) {
			return &api.User{Username: "bob", Email: "bob@example.com"}, nil
		},
	}
	creds := &memCredStore{}
	ctrl, state := newTestController(gw, creds)

	require.NoError(t, ctrl.Register(context.Background(), "bob", "secret", "bob@example.com", "Bob B"))

	snap := state.Snapshot()
	assert.Equal(t, LoggedIn, snap.Phase)
	require.NotNil(t, snap.User)
	assert.Equal(t, "bob", snap.User.Username)

	token, ok := creds.stored()
	require.True(t, ok)
	assert.Equal(t, "tok-bob", token)

	authenticate, register, _, _, _, _ := gw.calls()
	assert.Equal(t, 1, register)
	assert.Equal(t, 1, authenticate)
}

func TestRegister_FailureSkipsLogin(t *testing.T) {
	gw := &mockGateway{
		registerFn: func(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
			return nil, &clientapi.StatusError{Code: http.StatusBadRequest, Detail: "Username already registered"}
		},
	}
	creds := &memCredStore{}
	ctrl, state := newTestController(gw, creds)

	err := ctrl.Register(context.Background(), "bob", "secret", "bob@example.com", "")
	require.Error(t, err)

	assert.Equal(t, "Username already registered", state.Snapshot().Err)
	authenticate, _, _, _, _, _ := gw.calls()
	assert.Zero(t, authenticate, "a failed registration must not attempt login")

	_, ok := creds.stored()
	assert.False(t, ok)
}

func TestBusyGate_LoginDuringRegister(t *testing.T) {
	registerStarted := make(chan struct{})
	release := make(chan struct{})

	gw := &mockGateway{
		registerFn: func(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
			close(registerStarted)
			<-release
			return &api.User{Username: req.Username}, nil
		},
	}
	ctrl, _ := newTestController(gw, &memCredStore{})

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Register(context.Background(), "bob", "secret", "bob@example.com", "")
	}()

	<-registerStarted
	err := ctrl.Login(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestLogout_DuringResolveDiscardsResult(t *testing.T) {
	resolveStarted := make(chan struct{})
	release := make(chan struct{})

	gw := &mockGateway{
		currentUserFn: func(ctx context.Context, token string) (*api.User, error) {
			close(resolveStarted)
			<-release
			return &api.User{Username: "alice"}, nil
		},
	}
	creds := &memCredStore{token: "tok-alice", ok: true}
	ctrl, state := newTestController(gw, creds)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Restore(context.Background())
	}()

	<-resolveStarted
	ctrl.Logout(context.Background())
	close(release)
	require.NoError(t, <-done)

	// the resolution finished after logout: its result must be dropped and
	// the credential must stay gone
	snap := state.Snapshot()
	assert.Nil(t, snap.User)
	assert.Equal(t, LoggedOut, snap.Phase)
	_, ok := creds.stored()
	assert.False(t, ok)
}

func TestLogout_ClearsEverything(t *testing.T) {
	gw := &mockGateway{}
	creds := &memCredStore{}
	ctrl, state := newTestController(gw, creds)

	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))
	epoch := state.Epoch()
	state.ReplaceFeed(epoch, []api.Post{{ID: "1", Caption: "hi"}})
	state.SetError(epoch, "some earlier error")

	ctrl.Logout(context.Background())

	snap := state.Snapshot()
	assert.Equal(t, LoggedOut, snap.Phase)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Feed)
	assert.Nil(t, snap.OwnPosts)
	assert.Empty(t, snap.Err)

	_, ok := creds.stored()
	assert.False(t, ok)
}
