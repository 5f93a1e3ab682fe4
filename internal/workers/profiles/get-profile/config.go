// internal/workers/profiles/get-profile/config.go
package getprofile

import "time"

type Config struct {
	Timeout time.Duration
}
