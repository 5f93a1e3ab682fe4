// internal/workers/profiles/search-profiles/handler.go
package searchprofiles

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/common/validation"
	"ghotok-workers/internal/models"
	"ghotok-workers/internal/profiles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-profiles"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"gender":        {Type: validation.Nullable("string"), Enum: []interface{}{"Male", "Female", "", nil}},
		"profession":    {Type: validation.Nullable("string")},
		"maritalStatus": {Type: validation.Nullable("string")},
		"birthYear":     {Type: validation.Nullable("integer"), Minimum: validation.Float(0)},
		"height":        {Type: validation.Nullable("string")},
		"age":           {Type: validation.Nullable("integer"), Minimum: validation.Float(0), Maximum: validation.Float(120)},
	},
})

type Handler struct {
	config       *Config
	store        *profiles.Store
	index        *profiles.Index
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. With a nil index every search goes to postgres.
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
	if len(variables) > 0 {
		if err := json.Unmarshal([]byte(variables), &input); err != nil {
			return nil, errors.NewParseError(err)
		}
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	f := input.filters()

	if h.index != nil {
		list, total, err := h.index.Search(ctx, f)
		if err == nil {
			return &Output{Profiles: list, Total: total, Source: SourceElasticsearch}, nil
		}
		if !h.config.FallbackToDatabase {
			return nil, searchError(err)
		}
		h.logger.Warn("index search failed, falling back to postgres", map[string]interface{}{"error": err.Error()})
	}

	list, err := h.store.Search(ctx, f)
	if err != nil {
		return nil, errors.FromDatabaseError("search profiles", err)
	}
	return &Output{Profiles: nonNil(list), Total: int64(len(list)), Source: SourcePostgres}, nil
}

func searchError(err error) *errors.StandardError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewSearchTimeoutError()
	}
	return errors.NewSearchQueryFailedError(err)
}

func nonNil(list []models.Profile) []models.Profile {
	if list == nil {
		return []models.Profile{}
	}
	return list
}
