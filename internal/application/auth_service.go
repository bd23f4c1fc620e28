package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-article-cms/internal/domain/apperror"
	"github.com/oksasatya/go-article-cms/internal/domain/entity"
	repo "github.com/oksasatya/go-article-cms/internal/domain/repository"
	"github.com/oksasatya/go-article-cms/pkg/helpers"
	"github.com/oksasatya/go-article-cms/pkg/mailer"
	"github.com/oksasatya/go-article-cms/pkg/validation"
)

// JobPublisher enqueues background jobs; *helpers.RabbitPublisher implements it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService is the credential issuer: it registers users and exchanges email/password
// for signed identity tokens.
type AuthService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Logger    *logrus.Logger
	Publisher JobPublisher
	validate  *validator.Validate
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub JobPublisher) *AuthService {
	return &AuthService{
		Repo:      repo,
		JWT:       jwt,
		Logger:    logger,
		Publisher: pub,
		validate:  validation.New(),
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Name     string `json:"name" validate:"required,min=2"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is what login and registration hand back to the caller.
type AuthResult struct {
	User  entity.Identity `json:"user"`
	Token helpers.Token   `json:"-"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password and logs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.ToDetails(err))
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperror.Conflict("email already registered")
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, apperror.StoreUnavailable(err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindInternal, Message: "internal server error", Err: err}
	}
	u := &entity.User{Email: in.Email, Password: hash, Name: in.Name}
	if err := s.Repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, apperror.StoreUnavailable(err)
	}

	tok, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.enqueueWelcome(ctx, u)
	return &AuthResult{User: u.Identity(), Token: tok}, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.StoreUnavailable(err)
	}
	if u == nil {
		helpers.CompareDummyPassword(password)
		return nil, apperror.InvalidCredentials()
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.InvalidCredentials()
	}
	return u, nil
}

// Login authenticates and issues a token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.ToDetails(err))
	}
	u, err := s.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	tok, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u.Identity(), Token: tok}, nil
}

func (s *AuthService) issue(u *entity.User) (helpers.Token, error) {
	tok, err := s.JWT.Issue(u.Identity())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign token failed")
		}
		return helpers.Token{}, &apperror.Error{Kind: apperror.KindInternal, Message: "internal server error", Err: err}
	}
	return tok, nil
}

// publishTimeout bounds the wait for the broker confirm on the request path.
const publishTimeout = 3 * time.Second

// enqueueWelcome is best effort; registration never fails because the queue is down.
func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Publisher == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name, "Email": u.Email, "RegisteredAt": time.Now().UTC().Format(time.RFC3339)},
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
