// internal/workers/communication/notify-match/config.go
package notifymatch

import "time"

type Config struct {
	Timeout        time.Duration
	EmailEnabled   bool
	SMSEnabled     bool
	StaffRecipient string
}
