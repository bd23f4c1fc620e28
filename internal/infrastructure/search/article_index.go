package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/microcosm-cc/bluemonday"

	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	"github.com/oksasatya/go-article-cms/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// ArticleIndex keeps a searchable copy of articles in Elasticsearch.
type ArticleIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewArticleIndex(es *elasticsearch.Client, index string) *ArticleIndex {
	return &ArticleIndex{es: es, index: index}
}

// articleDoc keeps title and content as stored so hits match the store; the *_text fields
// hold the markup-free copies that are actually searched.
type articleDoc struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TitleText   string    `json:"title_text"`
	ContentText string    `json:"content_text"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	AuthorEmail string    `json:"author_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// plainText strips markup so the analyzer indexes words, not tags.
var plainText = bluemonday.StrictPolicy()

func stripTags(s string) string {
	return html.UnescapeString(plainText.Sanitize(s))
}

func toDoc(a *entity.Article) articleDoc {
	d := articleDoc{
		ID:        a.ID,
		Title:       a.Title,
		Content:     a.Content,
		TitleText:   stripTags(a.Title),
		ContentText: stripTags(a.Content),
		AuthorID:    a.AuthorID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Author != nil {
		d.AuthorName = a.Author.Name
		d.AuthorEmail = a.Author.Email
	}
	return d
}

func (d articleDoc) toEntity() entity.Article {
	return entity.Article{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		AuthorID:  d.AuthorID,
		Author:    &entity.Author{ID: d.AuthorID, Name: d.AuthorName, Email: d.AuthorEmail},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (i *ArticleIndex) Index(ctx context.Context, a *entity.Article) error {
	b, err := json.Marshal(toDoc(a))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("index article %d: %w", a.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index article %d: %s", a.ID, res.Status())
	}
	return nil
}

func (i *ArticleIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("remove article %d: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	// a missing document is already in the desired state
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove article %d: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over the plain-text title and content, newest first on equal score.
func (i *ArticleIndex) Search(ctx context.Context, q string, size int) ([]entity.Article, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title_text^2", "content_text"},
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.es.Search(i.es.Search.WithContext(c), i.es.Search.WithIndex(i.index), i.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search articles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source articleDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Article, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.toEntity())
	}
	return out, nil
}

var _ repository.ArticleIndex = (*ArticleIndex)(nil)

const articleMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "long"},
      "title":        {"type": "keyword", "index": false},
      "content":      {"type": "text", "index": false},
      "title_text":   {"type": "text"},
      "content_text": {"type": "text"},
      "author_id":    {"type": "keyword"},
      "author_name":  {"type": "text"},
      "author_email": {"type": "keyword"},
      "created_at":   {"type": "date"},
      "updated_at":   {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping unless it already exists.
func (i *ArticleIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", i.index, err)
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{Index: i.index, Body: strings.NewReader(articleMapping)}.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", i.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", i.index, res.Status())
	}
	return nil
}
