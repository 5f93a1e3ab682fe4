// internal/workers/auth/admin-logout/models.go
package adminlogout

import "time"

type Input struct {
	UserID    int64  `json:"userId"`
	Token     string `json:"token"`
	LogoutAll bool   `json:"logoutAll,omitempty"`
}

type Output struct {
	Success             bool      `json:"success"`
	Message             string    `json:"message"`
	SessionsInvalidated int       `json:"sessionsInvalidated"`
	TokenRevoked        bool      `json:"tokenRevoked"`
	LogoutAt            time.Time `json:"logoutAt"`
}
