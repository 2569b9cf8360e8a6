package models

type User struct {
	ID           int64  `json:"id"`
	TenantID     int64  `json:"tenantId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}
