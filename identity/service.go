// Package identity defines the credential-service port. Authentication
// lives outside the document store: credentials are the service's own
// concern, only the profile record at users/{uid} is shared.
package identity

import (
	"context"

	"github.com/tasksync/backend/domain"
)

// Service authenticates credential pairs and manages accounts. SignIn
// failures distinguish a bad credential (domain.ErrInvalidCredential)
// from everything else (AUTH-coded errors).
type Service interface {
	SignIn(ctx context.Context, email, password string) (domain.Identity, error)
	CreateAccount(ctx context.Context, email, password string) (domain.Identity, error)
	UpdateDisplayName(ctx context.Context, uid, name string) error
}
