package services

import (
	"context"
	"testing"
	"time"

	"gateway/internal/domain"
	"gateway/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	rc := domain.RequestContext{UserID: 7, TenantID: 3, Role: "dispatcher"}
	token, exp, err := IssueToken(testSecret, rc, time.Hour, time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, rc, got)
}

func TestParseToken_Rejects(t *testing.T) {
	rc := domain.RequestContext{UserID: 7, TenantID: 3, Role: "admin"}

	token, _, err := IssueToken(testSecret, rc, time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseToken([]byte("other"), token)
	assert.True(t, domain.IsUnauthorized(err))

	expired, _, err := IssueToken(testSecret, rc, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(testSecret, expired)
	assert.True(t, domain.IsUnauthorized(err))

	noTenant, _, err := IssueToken(testSecret, domain.RequestContext{UserID: 1}, time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseToken(testSecret, noTenant)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = ParseToken(testSecret, "not-a-token")
	assert.True(t, domain.IsUnauthorized(err))
}

func TestAuthServiceLogin(t *testing.T) {
	conn, mock := newMock(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	cols := []string{"id", "tenant_id", "name", "email", "password_hash", "role", "status"}
	mock.ExpectQuery(`FROM users`).
		WithArgs("ops@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, 3, "Ops", "ops@example.com", string(hash), "dispatcher", "active"))
	mock.ExpectQuery(`FROM users`).
		WithArgs("ops@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, 3, "Ops", "ops@example.com", string(hash), "dispatcher", "active"))
	mock.ExpectQuery(`FROM users`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(cols))

	svc := AuthService{Users: repositories.UserRepository{DB: conn}, Secret: testSecret}

	res, err := svc.Login(context.Background(), " OPS@example.com ", "rahasia")
	require.NoError(t, err)
	rc, err := ParseToken(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(3), rc.TenantID)
	assert.Equal(t, "dispatcher", rc.Role)

	_, err = svc.Login(context.Background(), "ops@example.com", "salah")
	assert.True(t, domain.IsUnauthorized(err))

	_, err = svc.Login(context.Background(), "ghost@example.com", "x")
	assert.True(t, domain.IsUnauthorized(err))

	_, err = svc.Login(context.Background(), "", "")
	assert.True(t, domain.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
