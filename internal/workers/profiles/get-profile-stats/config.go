// internal/workers/profiles/get-profile-stats/config.go
package getprofilestats

import "time"

type Config struct {
	Timeout time.Duration
}
