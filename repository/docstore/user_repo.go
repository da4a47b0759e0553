package docstore

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
	"github.com/tasksync/backend/store"
)

const usersNode = "users"

type userRepository struct {
	store  store.Client
	logger *zap.Logger
}

// NewUserRepository returns a document-store backed UserRepository.
func NewUserRepository(client store.Client, logger *zap.Logger) repository.UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userRepository{store: client, logger: logger}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, ok, err := r.store.Get(ctx, userPath(id))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "user read failed", err)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "user record corrupt", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	docs, err := r.store.List(ctx, usersNode)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "user scan failed", err)
	}

	users := make([]domain.User, 0, len(docs))
	for id, doc := range docs {
		var user domain.User
		if err := json.Unmarshal(doc, &user); err != nil {
			r.logger.Warn("skipping undecodable user record",
				zap.String("user_id", id), zap.Error(err))
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	if err := r.store.Set(ctx, userPath(user.ID), user); err != nil {
		return domain.WrapError(domain.ErrCodeStore, "user write failed", err)
	}
	return nil
}

func userPath(id string) string {
	return store.Join(usersNode, id)
}
