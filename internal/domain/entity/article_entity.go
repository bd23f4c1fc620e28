package entity

import "time"

// Article is an owned piece of content. AuthorID is set once at creation.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the public projection of an article's owner.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OwnedBy reports whether the identity with the given id created the article.
func (a *Article) OwnedBy(userID string) bool {
	return a.AuthorID == userID
}
