package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *ArticleIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the client refuses to talk to servers that do not identify as Elasticsearch
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewArticleIndex(es, "articles")
}

func TestArticleIndex_Index(t *testing.T) {
	var gotPath string
	var gotDoc map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	a := &entity.Article{ID: 12, Title: "Hello", Content: "long enough body", AuthorID: "u-1",
		Author: &entity.Author{ID: "u-1", Name: "Alice"}, CreatedAt: time.Now()}
	require.NoError(t, idx.Index(context.Background(), a))
	assert.Equal(t, "/articles/_doc/12", gotPath)
	assert.Equal(t, "Hello", gotDoc["title"])
	assert.Equal(t, "Alice", gotDoc["author_name"])
}

func TestArticleIndex_Remove_MissingIsNotAnError(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	assert.NoError(t, idx.Remove(context.Background(), 4))
}

func TestArticleIndex_Search(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.True(t, strings.Contains(string(b), `"multi_match"`))
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"id":2,"title":"Go tips","content":"some content here","author_id":"u-2","author_name":"Bob"}},
			{"_source":{"id":1,"title":"Go intro","content":"other content here","author_id":"u-1"}}
		]}}`))
	})

	got, err := idx.Search(context.Background(), "go", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "Bob", got[0].Author.Name)
	assert.Equal(t, "u-1", got[1].AuthorID)
}

func TestArticleIndex_Search_ErrorStatus(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := idx.Search(context.Background(), "go", 10)
	assert.Error(t, err)
}

func TestArticleIndex_EnsureIndex(t *testing.T) {
	var created bool
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			b, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(b), `"author_id"`)
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.True(t, created)
}

func TestArticleIndex_EnsureIndex_Exists(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
}

func TestToDoc_StripsMarkup(t *testing.T) {
	raw := "<p>Hello <b>world</b></p><script>alert(1)</script>"
	d := toDoc(&entity.Article{ID: 1, Title: "Fish & Chips", Content: raw})
	assert.Equal(t, "Fish & Chips", d.TitleText)
	assert.Equal(t, "Hello world", d.ContentText)

	// hits come back exactly as stored
	a := d.toEntity()
	assert.Equal(t, "Fish & Chips", a.Title)
	assert.Equal(t, raw, a.Content)
}

func TestArticleIndex_SearchQueriesPlainTextFields(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(b), `"title_text^2"`)
		assert.Contains(t, string(b), `"content_text"`)
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"id":5,"title":"Tags","content":"<em>rich</em> content body","title_text":"Tags","content_text":"rich content body","author_id":"u-1"}}
		]}}`))
	})

	got, err := idx.Search(context.Background(), "rich", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "<em>rich</em> content body", got[0].Content)
}
