package application

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-article-cms/internal/domain/apperror"
	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	repo "github.com/oksasatya/go-article-cms/internal/domain/repository"
	"github.com/oksasatya/go-article-cms/pkg/validation"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// ArticleService applies article operations on behalf of an identity and enforces that
// only the author may change or remove an article.
//
// Update and Delete read, check ownership and then write in separate store calls. Two
// concurrent updates of the same article are last-writer-wins.
type ArticleService struct {
	Repo     repo.ArticleRepository
	Index    repo.ArticleIndex
	Logger   *logrus.Logger
	validate *validator.Validate
}

// NewArticleService builds the service; index may be nil when search is not configured.
func NewArticleService(repo repo.ArticleRepository, index repo.ArticleIndex, logger *logrus.Logger) *ArticleService {
	return &ArticleService{Repo: repo, Index: index, Logger: logger, validate: validation.New()}
}

type CreateArticleInput struct {
	Title   string `json:"title" validate:"required,title"`
	Content string `json:"content" validate:"required,body"`
}

// ArticlePatch carries optional fields; nil means "leave unchanged".
type ArticlePatch struct {
	Title   *string `json:"title" validate:"omitnil,title"`
	Content *string `json:"content" validate:"omitnil,body"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func (s *ArticleService) List(ctx context.Context) ([]entity.Article, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if items == nil {
		items = []entity.Article{}
	}
	return items, nil
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*entity.Article, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, apperror.StoreUnavailable(err)
	}
	return a, nil
}

func (s *ArticleService) Create(ctx context.Context, caller entity.Identity, in CreateArticleInput) (*entity.Article, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.ToDetails(err))
	}

	a := &entity.Article{Title: in.Title, Content: in.Content, AuthorID: caller.ID}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	a.Author = &entity.Author{ID: caller.ID, Name: caller.Name, Email: caller.Email}
	s.reindex(ctx, a)
	return a, nil
}

// Update checks existence first and ownership second, so a non-owner learns whether the
// id exists (404 versus 403).
func (s *ArticleService) Update(ctx context.Context, caller entity.Identity, id int64, patch ArticlePatch) (*entity.Article, error) {
	a, err := s.owned(ctx, caller, id, "you are not allowed to modify this article")
	if err != nil {
		return nil, err
	}

	trimPtr(patch.Title)
	trimPtr(patch.Content)
	if err := s.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(validation.ToDetails(err))
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}

	if err := s.Repo.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, apperror.StoreUnavailable(err)
	}
	s.reindex(ctx, a)
	return a, nil
}

// Delete removes the article permanently.
func (s *ArticleService) Delete(ctx context.Context, caller entity.Identity, id int64) error {
	if _, err := s.owned(ctx, caller, id, "you are not allowed to delete this article"); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound("article not found")
		}
		return apperror.StoreUnavailable(err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("article_id", id).Warn("search index remove failed")
		}
	}
	return nil
}

// Search queries the secondary index. Without an index it returns no results.
func (s *ArticleService) Search(ctx context.Context, q string, size int) ([]entity.Article, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation(map[string]string{"q": "is required"})
	}
	if s.Index == nil {
		return []entity.Article{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	items, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.StoreUnavailable(err)
	}
	if items == nil {
		items = []entity.Article{}
	}
	return items, nil
}

func (s *ArticleService) owned(ctx context.Context, caller entity.Identity, id int64, denied string) (*entity.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.OwnedBy(caller.ID) {
		return nil, apperror.Forbidden(denied)
	}
	return a, nil
}

func (s *ArticleService) reindex(ctx context.Context, a *entity.Article) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, a); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("article_id", a.ID).Warn("search index update failed")
	}
}
