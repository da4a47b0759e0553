package session

import (
	"context"
	"errors"
	"testing"

	"github.com/tasksync/backend/domain"
)

type mockIdentityService struct {
	signInFn            func(ctx context.Context, email, password string) (domain.Identity, error)
	createAccountFn     func(ctx context.Context, email, password string) (domain.Identity, error)
	updateDisplayNameFn func(ctx context.Context, uid, name string) error
}

func (m *mockIdentityService) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password)
	}
	return domain.Identity{}, domain.ErrInvalidCredential
}

func (m *mockIdentityService) CreateAccount(ctx context.Context, email, password string) (domain.Identity, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(ctx, email, password)
	}
	return domain.Identity{UID: "new-uid", Email: email}, nil
}

func (m *mockIdentityService) UpdateDisplayName(ctx context.Context, uid, name string) error {
	if m.updateDisplayNameFn != nil {
		return m.updateDisplayNameFn(ctx, uid, name)
	}
	return nil
}

type mockUserRepo struct {
	upsertFn func(ctx context.Context, user *domain.User) error
	users    []*domain.User
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, user)
	}
	m.users = append(m.users, user)
	return nil
}

func TestSignIn_SetsIdentity(t *testing.T) {
	ctx := context.Background()
	ids := &mockIdentityService{
		signInFn: func(ctx context.Context, email, password string) (domain.Identity, error) {
			return domain.Identity{UID: "u1", DisplayName: "Alice", Email: email}, nil
		},
	}

	state := New(ids, &mockUserRepo{}, nil)

	id, err := state.SignIn(ctx, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if id.UID != "u1" {
		t.Errorf("expected uid u1, got %s", id.UID)
	}

	current := state.CurrentUser()
	if current == nil || current.UID != "u1" {
		t.Fatalf("expected current user u1, got %+v", current)
	}
	if state.Status() != StatusIdle {
		t.Errorf("expected idle after sign in, got %s", state.Status())
	}

	state.SignOut()
	if state.CurrentUser() != nil {
		t.Error("expected nil current user after sign out")
	}
	// idempotent
	state.SignOut()
	if state.CurrentUser() != nil {
		t.Error("repeated sign out changed state")
	}
}

func TestSignIn_InvalidCredentialLeavesIdentityUntouched(t *testing.T) {
	ctx := context.Background()
	ids := &mockIdentityService{
		signInFn: func(ctx context.Context, email, password string) (domain.Identity, error) {
			if password == "right" {
				return domain.Identity{UID: "u1", Email: email}, nil
			}
			return domain.Identity{}, domain.ErrInvalidCredential
		},
	}

	state := New(ids, &mockUserRepo{}, nil)

	if _, err := state.SignIn(ctx, "alice@example.com", "right"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	_, err := state.SignIn(ctx, "alice@example.com", "wrong")
	if !domain.IsDomainError(err, domain.ErrCodeInvalidCredential) {
		t.Fatalf("expected invalid credential, got %v", err)
	}

	if current := state.CurrentUser(); current == nil || current.UID != "u1" {
		t.Errorf("failed sign-in must not clear the previous identity, got %+v", current)
	}
	if state.Status() != StatusIdle {
		t.Errorf("expected idle after failure, got %s", state.Status())
	}
}

func TestSignIn_OtherFailureIsAuthError(t *testing.T) {
	ids := &mockIdentityService{
		signInFn: func(ctx context.Context, email, password string) (domain.Identity, error) {
			return domain.Identity{}, errors.New("backend down")
		},
	}

	state := New(ids, &mockUserRepo{}, nil)

	_, err := state.SignIn(context.Background(), "a@b.c", "pw")
	if !domain.IsDomainError(err, domain.ErrCodeAuth) {
		t.Errorf("expected AUTH classification, got %v", err)
	}
}

// A sign-in that resolves after a newer attempt has started must not
// clobber the newer attempt's outcome.
func TestSignIn_LaterAttemptWins(t *testing.T) {
	ctx := context.Background()

	release := make(chan struct{})
	firstStarted := make(chan struct{})

	call := 0
	ids := &mockIdentityService{}
	ids.signInFn = func(ctx context.Context, email, password string) (domain.Identity, error) {
		call++
		if call == 1 {
			close(firstStarted)
			<-release
			return domain.Identity{UID: "stale"}, nil
		}
		return domain.Identity{UID: "fresh"}, nil
	}

	state := New(ids, &mockUserRepo{}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = state.SignIn(ctx, "a@b.c", "pw")
	}()

	<-firstStarted
	if _, err := state.SignIn(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("second sign in: %v", err)
	}

	close(release)
	<-done

	if current := state.CurrentUser(); current == nil || current.UID != "fresh" {
		t.Errorf("expected the later attempt's identity, got %+v", current)
	}
}

func TestSignUp_WritesProfile(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	ids := &mockIdentityService{
		createAccountFn: func(ctx context.Context, email, password string) (domain.Identity, error) {
			return domain.Identity{UID: "new-uid", Email: email}, nil
		},
	}

	state := New(ids, users, nil)

	id, err := state.SignUp(ctx, "Bob", "bob@example.com", "secret")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if id.UID != "new-uid" || id.DisplayName != "Bob" {
		t.Errorf("unexpected identity: %+v", id)
	}

	profile, err := users.GetByID(ctx, "new-uid")
	if err != nil {
		t.Fatalf("profile not written: %v", err)
	}
	if profile.Username != "Bob" || profile.Email != "bob@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	if current := state.CurrentUser(); current == nil || current.UID != "new-uid" {
		t.Errorf("expected signed-in identity after sign up, got %+v", current)
	}
}

func TestSignUp_ProfileWriteFailureIsPartial(t *testing.T) {
	ctx := context.Background()
	accountCreated := false
	ids := &mockIdentityService{
		createAccountFn: func(ctx context.Context, email, password string) (domain.Identity, error) {
			accountCreated = true
			return domain.Identity{UID: "orphan", Email: email}, nil
		},
	}
	users := &mockUserRepo{
		upsertFn: func(ctx context.Context, user *domain.User) error {
			return domain.WrapError(domain.ErrCodeStore, "store down", errors.New("io"))
		},
	}

	state := New(ids, users, nil)

	_, err := state.SignUp(ctx, "Bob", "bob@example.com", "secret")
	if !domain.IsDomainError(err, domain.ErrCodePartial) {
		t.Fatalf("expected PARTIAL, got %v", err)
	}
	if !accountCreated {
		t.Error("account creation should have happened before the failure")
	}
	if state.CurrentUser() != nil {
		t.Error("partial sign-up must not set the session identity")
	}
}
