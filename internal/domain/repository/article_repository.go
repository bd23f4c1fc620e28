package repository

import (
	"context"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
)

// ArticleRepository is the durable store for articles. Reads return the article with its
// Author populated.
type ArticleRepository interface {
	// List returns every article, newest first; equal timestamps are ordered by ascending id.
	List(ctx context.Context) ([]entity.Article, error)
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	Create(ctx context.Context, a *entity.Article) error
	// Update persists title and content of an existing article and refreshes UpdatedAt.
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id int64) error
}

// ArticleIndex is a secondary full-text index over articles. It is never the source of truth.
type ArticleIndex interface {
	Index(ctx context.Context, a *entity.Article) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, size int) ([]entity.Article, error)
}
