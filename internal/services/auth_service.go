package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/repositories"
	"gateway/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

func (s AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "email and password are required"}
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, errBadCredentials
		}
		return LoginResult{}, err
	}
	if u.Status != "" && u.Status != "active" {
		return LoginResult{}, domain.UnauthorizedError{Msg: "account is disabled"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, errBadCredentials
	}

	token, exp, err := IssueToken(s.Secret, domain.RequestContext{
		UserID:   domain.ID(u.ID),
		TenantID: domain.ID(u.TenantID),
		Role:     u.Role,
	}, s.ttl(), s.now())
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "could not issue token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d tenant_id=%d", u.ID, u.TenantID))
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) ttl() time.Duration {
	if s.TTL <= 0 {
		return defaultTokenTTL
	}
	return s.TTL
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueToken signs an HS256 access token for rc.
func IssueToken(secret []byte, rc domain.RequestContext, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   int64(rc.UserID),
		"tenant_id": int64(rc.TenantID),
		"role":      rc.Role,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	})
	signed, err := token.SignedString(secret)
	return signed, exp, err
}

// ParseToken verifies a token and returns the caller it was issued to.
func ParseToken(secret []byte, raw string) (domain.RequestContext, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	userID, uerr := numericClaim(claims, "user_id")
	tenantID, terr := numericClaim(claims, "tenant_id")
	if err := errors.Join(uerr, terr); err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	role, _ := claims["role"].(string)

	return domain.RequestContext{
		UserID:   domain.ID(userID),
		TenantID: domain.ID(tenantID),
		Role:     role,
	}, nil
}

func numericClaim(claims jwt.MapClaims, key string) (int64, error) {
	f, ok := claims[key].(float64)
	if !ok || f <= 0 {
		return 0, fmt.Errorf("claim %s missing", key)
	}
	return int64(f), nil
}
