// internal/workers/auth/admin-login/models.go
package adminlogin

import (
	"time"

	"ghotok-workers/internal/models"
)

type Input struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Output struct {
	Success   bool              `json:"success"`
	Token     string            `json:"token"`
	User      models.PublicUser `json:"user"`
	ExpiresAt time.Time         `json:"expiresAt"`
}
