// Package session holds the authenticated-identity state that gates and
// scopes every task query. The state is an explicit object created once
// at startup and passed to its consumers; it is mutated only through
// SignIn, SignUp and SignOut.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/identity"
	"github.com/tasksync/backend/repository"
)

// Status of the in-flight auth operation.
const (
	StatusIdle    = "idle"
	StatusLoading = "loading"
)

// State is the session engine. Concurrent sign-ins race by design: the
// later call's outcome wins, there is no request queuing.
type State struct {
	ids    identity.Service
	users  repository.UserRepository
	logger *zap.Logger

	mu       sync.Mutex
	identity *domain.Identity
	status   string
	// generation stamps each auth attempt so a superseded sign-in
	// cannot clobber a later one's result.
	generation uint64
}

// New creates an idle, signed-out session state.
func New(ids identity.Service, users repository.UserRepository, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		ids:    ids,
		users:  users,
		logger: logger,
		status: StatusIdle,
	}
}

// CurrentUser returns the signed-in identity, or nil.
func (s *State) CurrentUser() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Status returns the auth operation status, idle or loading.
func (s *State) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SignIn authenticates against the identity service. On success the
// session identity is replaced; on failure it is left untouched and the
// error carries INVALID_CREDENTIAL or AUTH.
func (s *State) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	gen := s.begin()

	id, err := s.ids.SignIn(ctx, email, password)
	if err != nil {
		s.finish(gen, nil)
		if domain.IsDomainError(err, domain.ErrCodeInvalidCredential) {
			return domain.Identity{}, err
		}
		return domain.Identity{}, domain.WrapError(domain.ErrCodeAuth, "sign in failed", err)
	}

	s.finish(gen, &id)
	return id, nil
}

// SignUp creates the credential, sets the display name, then writes the
// users/{uid} profile record. A profile-write failure after account
// creation leaves the account standing and reports PARTIAL; the session
// identity is not set in that case.
func (s *State) SignUp(ctx context.Context, name, email, password string) (domain.Identity, error) {
	gen := s.begin()

	id, err := s.ids.CreateAccount(ctx, email, password)
	if err != nil {
		s.finish(gen, nil)
		return domain.Identity{}, domain.WrapError(domain.ErrCodeAuth, "sign up failed", err)
	}

	if err := s.ids.UpdateDisplayName(ctx, id.UID, name); err != nil {
		s.finish(gen, nil)
		s.logger.Warn("display name not set after account creation",
			zap.String("uid", id.UID), zap.Error(err))
		return domain.Identity{}, domain.WrapError(domain.ErrCodePartial, "account created without display name", err)
	}
	id.DisplayName = name

	profile := id.Profile()
	if err := s.users.Upsert(ctx, &profile); err != nil {
		s.finish(gen, nil)
		s.logger.Warn("profile write failed after account creation",
			zap.String("uid", id.UID), zap.Error(err))
		return domain.Identity{}, domain.WrapError(domain.ErrCodePartial, "account created without profile record", err)
	}

	s.finish(gen, &id)
	return id, nil
}

// SignOut clears the identity. Idempotent.
func (s *State) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}

func (s *State) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.status = StatusLoading
	return s.generation
}

// finish applies an attempt's outcome. A stale generation means a newer
// attempt has started; its identity write is discarded, not an error.
func (s *State) finish(gen uint64, id *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.status = StatusIdle
	if id != nil {
		s.identity = id
	}
}
