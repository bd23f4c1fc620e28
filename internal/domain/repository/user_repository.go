package repository

import (
	"context"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
)

// UserRepository stores accounts; emails are unique and looked up already normalised.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
