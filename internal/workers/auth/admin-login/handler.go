// internal/workers/auth/admin-login/handler.go
package adminlogin

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
	TaskType = "admin-login"
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.authenticator.Login(ctx, input.Username, input.Password)
	if stderrors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Warn("login rejected", map[string]interface{}{"username": input.Username})
		return nil, errors.NewAuthenticationFailedError("invalid username or password")
	}
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	h.logger.Info("admin logged in", map[string]interface{}{
		"userId":    res.User.ID,
		"bootstrap": res.Created,
	})

	return &Output{
		Success:   true,
		Token:     res.Session.Token,
		User:      res.User.Public(),
		ExpiresAt: res.Session.ExpiresAt,
	}, nil
}
