// internal/workers/profiles/update-profile/config.go
package updateprofile

import "time"

type Config struct {
	Timeout time.Duration
}
