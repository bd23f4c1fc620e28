package router

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	repo "github.com/oksasatya/go-article-cms/internal/domain/repository"
)

type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	articles map[int64]entity.Article
	userSeq  int
	artSeq   int64
	now      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*entity.User{},
		articles: map[int64]entity.Article{},
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

type memUserRepo struct{ *memStore }

func (r memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return repo.ErrDuplicate
	}
	r.userSeq++
	u.ID = "00000000-0000-0000-0000-00000000000" + strconv.Itoa(r.userSeq)
	u.CreatedAt = r.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memArticleRepo struct{ *memStore }

// withAuthor mimics the join the SQL repository does.
func (r memArticleRepo) withAuthor(a entity.Article) entity.Article {
	for _, u := range r.users {
		if u.ID == a.AuthorID {
			a.Author = &entity.Author{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return a
}

func (r memArticleRepo) List(_ context.Context) ([]entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, r.withAuthor(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memArticleRepo) GetByID(_ context.Context, id int64) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	a = r.withAuthor(a)
	return &a, nil
}

func (r memArticleRepo) Create(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artSeq++
	a.ID = r.artSeq
	a.CreatedAt = r.tick()
	a.UpdatedAt = a.CreatedAt
	r.articles[a.ID] = *a
	return nil
}

func (r memArticleRepo) Update(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.articles[a.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Title, cur.Content = a.Title, a.Content
	cur.UpdatedAt = r.tick()
	a.UpdatedAt = cur.UpdatedAt
	r.articles[a.ID] = cur
	return nil
}

func (r memArticleRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}
