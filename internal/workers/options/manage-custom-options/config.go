// internal/workers/options/manage-custom-options/config.go
package managecustomoptions

import "time"

type Config struct {
	Timeout time.Duration
}
