// internal/workers/auth/validate-session/models.go
package validatesession

import (
	"time"

	"ghotok-workers/internal/models"
)

type Input struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}

type Output struct {
	Valid     bool              `json:"valid"`
	User      models.PublicUser `json:"user"`
	ExpiresAt time.Time         `json:"expiresAt"`
}
