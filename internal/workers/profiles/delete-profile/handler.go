// internal/workers/profiles/delete-profile/handler.go
package deleteprofile

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/common/validation"
	"ghotok-workers/internal/profiles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "delete-profile"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"id": {Type: "integer", Minimum: validation.Float(1)},
	},
	Required: []string{"id"},
})

type Handler struct {
	config       *Config
	store        *profiles.Store
	index        *profiles.Index
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store *profiles.Store, index *profiles.Index, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		index:        index,
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
	result, err := inputSchema.ValidateJSON(variables)
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
	err := h.store.Delete(ctx, input.ID)
	if stderrors.Is(err, profiles.ErrNotFound) {
		return nil, errors.NewProfileNotFoundError(input.ID)
	}
	if err != nil {
		return nil, errors.FromDatabaseError("delete profile", err)
	}

	if h.index != nil {
		if err := h.index.Remove(ctx, input.ID); err != nil {
			h.logger.Warn("failed to remove profile from index", map[string]interface{}{"id": input.ID, "error": err.Error()})
		}
	}

	h.logger.Info("profile deleted", map[string]interface{}{"id": input.ID})
	return &Output{ID: input.ID, Deleted: true}, nil
}
