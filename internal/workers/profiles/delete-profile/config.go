// internal/workers/profiles/delete-profile/config.go
package deleteprofile

import "time"

type Config struct {
	Timeout time.Duration
}
