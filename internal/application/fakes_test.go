package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	repo "github.com/oksasatya/go-article-cms/internal/domain/repository"
)

var errStoreDown = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	seq     int
	fail    error
	// skipLookup makes GetByEmail miss so Create hits the unique constraint
	skipLookup bool
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	m.seq++
	u.ID = "user-" + strconv.Itoa(m.seq)
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.byEmail[email]
	if !ok || m.skipLookup {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memArticles struct {
	mu    sync.Mutex
	rows  map[int64]entity.Article
	seq   int64
	clock func() time.Time
	fail  error
}

func newMemArticles(clock func() time.Time) *memArticles {
	return &memArticles{rows: map[int64]entity.Article{}, clock: clock}
}

func (m *memArticles) List(_ context.Context) ([]entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]entity.Article, 0, len(m.rows))
	for _, a := range m.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memArticles) GetByID(_ context.Context, id int64) (*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &a, nil
}

func (m *memArticles) Create(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.seq++
	a.ID = m.seq
	a.CreatedAt = m.clock()
	a.UpdatedAt = a.CreatedAt
	m.rows[a.ID] = *a
	return nil
}

func (m *memArticles) Update(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	cur, ok := m.rows[a.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Title, cur.Content = a.Title, a.Content
	cur.UpdatedAt = m.clock()
	a.UpdatedAt = cur.UpdatedAt
	m.rows[a.ID] = cur
	return nil
}

func (m *memArticles) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type recordingIndex struct {
	indexed []int64
	removed []int64
	results []entity.Article
	err     error
	lastQ   string
	lastN   int
}

func (r *recordingIndex) Index(_ context.Context, a *entity.Article) error {
	r.indexed = append(r.indexed, a.ID)
	return r.err
}

func (r *recordingIndex) Remove(_ context.Context, id int64) error {
	r.removed = append(r.removed, id)
	return r.err
}

func (r *recordingIndex) Search(_ context.Context, q string, size int) ([]entity.Article, error) {
	r.lastQ, r.lastN = q, size
	return r.results, r.err
}

type recordingPublisher struct {
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

type recordingUploader struct {
	path        string
	contentType string
	body        []byte
	err         error
}

func (u *recordingUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.path, u.contentType = objectPath, contentType
	u.body, _ = io.ReadAll(r)
	return "https://cdn.example.com/" + objectPath, nil
}

// steppingClock advances one second per call so creation times are distinct.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}
