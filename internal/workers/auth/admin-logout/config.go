// internal/workers/auth/admin-logout/config.go
package adminlogout

import "time"

type Config struct {
	Timeout time.Duration
}
