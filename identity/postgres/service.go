// Package postgres implements the identity service on a credentials
// table, with bcrypt password hashes.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/identity"
)

type service struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewService returns a Postgres-backed identity service.
func NewService(pool *pgxpool.Pool, logger *zap.Logger) identity.Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{pool: pool, logger: logger}
}

func (s *service) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	const query = `
	SELECT uid, display_name, password_hash
	FROM credentials
	WHERE email = $1
	`
	var (
		uid  string
		name string
		hash string
	)
	if err := s.pool.QueryRow(ctx, query, email).Scan(&uid, &name, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Identity{}, domain.ErrInvalidCredential
		}
		return domain.Identity{}, domain.WrapError(domain.ErrCodeAuth, "credential lookup failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.Identity{}, domain.ErrInvalidCredential
	}

	return domain.Identity{UID: uid, DisplayName: name, Email: email}, nil
}

func (s *service) CreateAccount(ctx context.Context, email, password string) (domain.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, domain.WrapError(domain.ErrCodeAuth, "password hash failed", err)
	}

	uid := uuid.NewString()
	const query = `
	INSERT INTO credentials (uid, email, display_name, password_hash)
	VALUES ($1, $2, '', $3)
	`
	if _, err := s.pool.Exec(ctx, query, uid, email, string(hash)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Identity{}, domain.NewError(domain.ErrCodeAuth, "email already registered")
		}
		return domain.Identity{}, domain.WrapError(domain.ErrCodeAuth, "account creation failed", err)
	}

	s.logger.Info("account created", zap.String("uid", uid))
	return domain.Identity{UID: uid, Email: email}, nil
}

func (s *service) UpdateDisplayName(ctx context.Context, uid, name string) error {
	const query = `
	UPDATE credentials
	SET display_name = $2
	WHERE uid = $1
	`
	tag, err := s.pool.Exec(ctx, query, uid, name)
	if err != nil {
		return domain.WrapError(domain.ErrCodeAuth, "display name update failed", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
