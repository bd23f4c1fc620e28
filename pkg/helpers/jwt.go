package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/go-article-cms/internal/domain/apperror"
	"github.com/oksasatya/go-article-cms/internal/domain/entity"
)

// JWTManager issues and verifies HS256 identity tokens with a single secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source; used by tests to mint or check tokens at a fixed instant.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	cp := *m
	cp.now = now
	return &cp
}

// Claims is the signed token payload.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Token is a signed identity assertion.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Issue signs a token for the identity, valid from now for the configured TTL.
func (m *JWTManager) Issue(id entity.Identity) (Token, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UserID: id.ID,
		Email:  id.Email,
		Name:   id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: s, ExpiresAt: exp}, nil
}

// Verify checks signature and expiry and returns the embedded identity. Expired tokens
// report TokenExpired even when the signature does not match.
func (m *JWTManager) Verify(tokenStr string) (entity.Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || m.expired(tkn, claims) {
			return entity.Identity{}, apperror.TokenExpired()
		}
		return entity.Identity{}, apperror.InvalidToken(err)
	}
	if !tkn.Valid || claims.UserID == "" {
		return entity.Identity{}, apperror.InvalidToken(errors.New("token carries no identity"))
	}
	return entity.Identity{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}

// expired inspects claims decoded before signature verification failed.
func (m *JWTManager) expired(tkn *jwt.Token, claims *Claims) bool {
	if tkn == nil || claims.ExpiresAt == nil {
		return false
	}
	return !m.now().Before(claims.ExpiresAt.Time)
}
