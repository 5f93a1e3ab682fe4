// internal/workers/auth/validate-session/handler.go
package validatesession

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"ghotok-workers/internal/auth"
	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-session"
)

type Handler struct {
	config        *Config
	authenticator *auth.Authenticator
	errorHandler  *errors.ErrorHandler
	logger        logger.Logger
}

func NewHandler(config *Config, authenticator *auth.Authenticator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		authenticator: authenticator,
		errorHandler:  errors.NewErrorHandler(l),
		logger:        l,
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
		return nil, errors.NewSessionInvalidError(result.Summary())
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	user, sess, err := h.authenticator.Validate(ctx, input.UserID, input.Token)
	switch {
	case stderrors.Is(err, auth.ErrTokenRevoked):
		return nil, errors.NewSessionInvalidError("token revoked")
	case stderrors.Is(err, auth.ErrSessionNotFound):
		return nil, errors.NewSessionInvalidError("session expired or unknown")
	case stderrors.Is(err, auth.ErrUserNotFound):
		return nil, errors.NewSessionInvalidError("user no longer exists")
	case err != nil:
		return nil, errors.NewSessionStoreFailedError(err)
	}

	return &Output{Valid: true, User: user.Public(), ExpiresAt: sess.ExpiresAt}, nil
}
