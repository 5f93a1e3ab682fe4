// internal/workers/communication/notify-match/handler.go
package notifymatch

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-match"
)

// EmailSender is satisfied by the SES mailer.
type EmailSender interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) (string, error)
}

// SMSSender is satisfied by the SNS texter.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	email        EmailSender
	sms          SMSSender
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. A nil sender disables its channel.
func NewHandler(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		email:        email,
		sms:          sms,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
}

// Handle retries failed deliveries while the job has retries left. On the last attempt
// the job completes with status failed so the process does not stall on a notification.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil && (output == nil || job.Retries > 1) {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}
	if err != nil {
		h.logger.Warn("giving up on match notification", map[string]interface{}{
			"jobKey":         job.Key,
			"notificationId": output.NotificationID,
			"error":          err.Error(),
		})
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
	}
}

func parseInput(variables string) (*Input, error) {
	result, err := inputValidator.ValidateJSON(variables)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(result.Summary())
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

// Execute sends the notification. When every attempted channel fails it returns both
// the failed output and a retryable error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{
		NotificationID: uuid.NewString(),
		Status:         StatusDisabled,
		Channels:       []ChannelResult{},
		SentAt:         time.Now().UTC(),
	}

	recipient := input.RecipientEmail
	if recipient == "" {
		recipient = h.config.StaffRecipient
	}

	var failures []error
	if h.config.EmailEnabled && h.email != nil && recipient != "" {
		res := ChannelResult{Channel: ChannelEmail, Status: StatusSent}
		id, err := h.email.Send(ctx, recipient, subject(input), textBody(input), htmlBody(input))
		if err != nil {
			res.Status, res.Error = StatusFailed, err.Error()
			failures = append(failures, fmt.Errorf("%s: %w", ChannelEmail, err))
		}
		res.MessageID = id
		out.Channels = append(out.Channels, res)
	}

	if h.config.SMSEnabled && h.sms != nil && input.RecipientPhone != "" {
		res := ChannelResult{Channel: ChannelSMS, Status: StatusSent}
		id, err := h.sms.Send(ctx, input.RecipientPhone, smsBody(input))
		if err != nil {
			res.Status, res.Error = StatusFailed, err.Error()
			failures = append(failures, fmt.Errorf("%s: %w", ChannelSMS, err))
		}
		res.MessageID = id
		out.Channels = append(out.Channels, res)
	}

	switch {
	case len(out.Channels) == 0:
		h.logger.Info("match notification skipped, no channel enabled", map[string]interface{}{
			"notificationId": out.NotificationID,
		})
		return out, nil
	case len(failures) == len(out.Channels):
		out.Status = StatusFailed
		return out, errors.NewNotificationSendFailedError(failedChannels(out.Channels), stderrors.Join(failures...))
	}

	out.Status = StatusSent
	h.logger.Info("match notification sent", map[string]interface{}{
		"notificationId":   out.NotificationID,
		"matchedProfileId": input.MatchedProfileID,
		"channels":         len(out.Channels),
		"failedChannels":   len(failures),
	})
	return out, nil
}

func failedChannels(results []ChannelResult) string {
	var names []string
	for _, r := range results {
		if r.Status == StatusFailed {
			names = append(names, r.Channel)
		}
	}
	return strings.Join(names, ",")
}
