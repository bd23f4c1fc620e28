package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	"github.com/oksasatya/go-article-cms/internal/domain/repository"
)

// ArticleRepository stores articles in the articles table. Update and Delete are single
// statements; callers that read-check-write are not protected against concurrent writers.
type ArticleRepository struct {
	db DBTX
}

func NewArticleRepository(db DBTX) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const selectArticle = `
	SELECT a.id, a.title, a.content, a.author_id, a.created_at, a.updated_at,
	       u.id, u.name, u.email
	FROM articles a
	JOIN users u ON u.id = a.author_id
`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	a := &entity.Article{Author: &entity.Author{}}
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Name, &a.Author.Email); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]entity.Article, error) {
	rows, err := r.db.Query(ctx, selectArticle+` ORDER BY a.created_at DESC, a.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a, err := scanArticle(r.db.QueryRow(ctx, selectArticle+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO articles (title, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Content, a.AuthorID)

	return mapError(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	row := r.db.QueryRow(ctx, `
		UPDATE articles
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, a.Title, a.Content, a.ID)

	return mapError(row.Scan(&a.UpdatedAt))
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
