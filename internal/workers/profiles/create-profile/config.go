// internal/workers/profiles/create-profile/config.go
package createprofile

import "time"

type Config struct {
	Timeout time.Duration
}
