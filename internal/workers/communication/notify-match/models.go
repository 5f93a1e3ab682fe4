// internal/workers/communication/notify-match/models.go
package notifymatch

import "time"

// Input is the summary of a completed match, usually the match-profile output mapped by
// the process.
type Input struct {
	InputName          string `json:"inputName"`
	InputGender        string `json:"inputGender,omitempty"`
	MatchedName        string `json:"matchedName"`
	MatchedProfileID   string `json:"matchedProfileId"`
	CompatibilityScore int    `json:"compatibilityScore"`
	RecipientEmail     string `json:"recipientEmail,omitempty"`
	RecipientPhone     string `json:"recipientPhone,omitempty"`
}

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type ChannelResult struct {
	Channel   string `json:"channel"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Output struct {
	NotificationID string          `json:"notificationId"`
	Status         string          `json:"status"`
	Channels       []ChannelResult `json:"channels"`
	SentAt         time.Time       `json:"sentAt"`
}
