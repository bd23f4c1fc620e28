package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-article-cms/config"
	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	"github.com/oksasatya/go-article-cms/internal/domain/repository"
	pginfra "github.com/oksasatya/go-article-cms/internal/infrastructure/postgres"
	"github.com/oksasatya/go-article-cms/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	articles := pginfra.NewArticleRepository(pool)

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"

	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, err := helpers.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		u = &entity.User{Email: email, Password: hash, Name: name}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, email, password)
	case err != nil:
		log.Fatalf("failed to look up demo user: %v", err)
	default:
		fmt.Printf("demo user already exists: id=%s\n", u.ID)
	}

	existing, err := articles.List(ctx)
	if err != nil {
		log.Fatalf("failed to list articles: %v", err)
	}
	for _, a := range existing {
		if a.AuthorID == u.ID {
			fmt.Println("demo article already exists; nothing to do")
			return
		}
	}

	a := &entity.Article{
		Title:    "Welcome to the CMS",
		Content:  "This article was created by the seed command. Log in as the demo user to edit or delete it.",
		AuthorID: u.ID,
	}
	if err := articles.Create(ctx, a); err != nil {
		log.Fatalf("failed to seed article: %v", err)
	}
	fmt.Printf("seeded article: id=%d title=%q\n", a.ID, a.Title)
}
