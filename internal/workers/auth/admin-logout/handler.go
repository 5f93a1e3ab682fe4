// internal/workers/auth/admin-logout/handler.go
package adminlogout

import (
	"context"
	"encoding/json"
	"time"

	"ghotok-workers/internal/auth"
	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "admin-logout"
)

type Handler struct {
	config       *Config
	sessions     *auth.SessionStore
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, sessions *auth.SessionStore, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		sessions:     sessions,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
}

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
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute ends the session and revokes its token. A session that already expired still
// gets its token revoked.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var invalidated int
	if input.LogoutAll {
		n, err := h.sessions.DeleteAll(ctx, input.UserID)
		if err != nil {
			return nil, errors.NewSessionStoreFailedError(err)
		}
		invalidated = n
	} else {
		existed, err := h.sessions.Delete(ctx, input.UserID, input.Token)
		if err != nil {
			return nil, errors.NewSessionStoreFailedError(err)
		}
		if existed {
			invalidated = 1
		}
	}

	revoked := true
	if err := h.sessions.Revoke(ctx, input.Token); err != nil {
		h.logger.Warn("failed to revoke token", map[string]interface{}{"userId": input.UserID, "error": err.Error()})
		revoked = false
	}

	h.logger.Info("admin logged out", map[string]interface{}{
		"userId":              input.UserID,
		"sessionsInvalidated": invalidated,
		"tokenRevoked":        revoked,
	})

	return &Output{
		Success:             true,
		Message:             "Logout successful",
		SessionsInvalidated: invalidated,
		TokenRevoked:        revoked,
		LogoutAt:            time.Now().UTC(),
	}, nil
}
