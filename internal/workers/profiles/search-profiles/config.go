// internal/workers/profiles/search-profiles/config.go
package searchprofiles

import "time"

type Config struct {
	Timeout time.Duration
	// FallbackToDatabase retries a failed index search against postgres.
	FallbackToDatabase bool
}
