package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	"github.com/oksasatya/go-article-cms/internal/domain/repository"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int64:
			*p = r.values[i].(int64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

type fakeDB struct {
	row     fakeRow
	tag     pgconn.CommandTag
	execErr error
	lastSQL string
	args    []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.args = sql, args
	return f.tag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.args = sql, args
	return nil, errors.New("not supported by fake")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.args = sql, args
	return f.row
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505"}), repository.ErrDuplicate)

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), mapError(other))
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now()
	db := &fakeDB{row: fakeRow{values: []any{"u-1", now, now}}}
	repo := NewUserRepository(db)

	u := &entity.User{Email: "a@x.com", Password: "hash", Name: "Alice"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.Equal(t, []any{"a@x.com", "hash", "Alice"}, db.args)
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: &pgconn.PgError{Code: "23505"}}}
	repo := NewUserRepository(db)

	err := repo.Create(context.Background(), &entity.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo := NewUserRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	u, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArticleRepository_GetByID(t *testing.T) {
	now := time.Now()
	db := &fakeDB{row: fakeRow{values: []any{int64(3), "Hello", "long enough body", "u-1", now, now, "u-1", "Alice", "a@x.com"}}}
	repo := NewArticleRepository(db)

	a, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, "u-1", a.AuthorID)
	require.NotNil(t, a.Author)
	assert.Equal(t, "Alice", a.Author.Name)
	assert.Contains(t, db.lastSQL, "WHERE a.id = $1")
}

func TestArticleRepository_GetByID_NotFound(t *testing.T) {
	repo := NewArticleRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArticleRepository_Update_Missing(t *testing.T) {
	repo := NewArticleRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	err := repo.Update(context.Background(), &entity.Article{ID: 1, Title: "abc", Content: "0123456789"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArticleRepository_Delete(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewArticleRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.Equal(t, []any{int64(5)}, db.args)

	db.tag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), repository.ErrNotFound)

	db.execErr = errors.New("conn reset")
	assert.EqualError(t, repo.Delete(context.Background(), 5), "conn reset")
}

func TestArticleRepository_List_OrdersNewestFirst(t *testing.T) {
	db := &fakeDB{}
	repo := NewArticleRepository(db)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, db.lastSQL, "ORDER BY a.created_at DESC, a.id ASC")
}
