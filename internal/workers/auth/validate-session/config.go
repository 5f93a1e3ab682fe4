// internal/workers/auth/validate-session/config.go
package validatesession

import "time"

type Config struct {
	Timeout time.Duration
}
