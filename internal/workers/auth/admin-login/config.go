// internal/workers/auth/admin-login/config.go
package adminlogin

import "time"

type Config struct {
	Timeout time.Duration
}
