package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, email, password_hash, role, status
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}
