// internal/workers/profiles/create-profile/handler.go
package createprofile

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
	TaskType = "create-profile"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"name":                   {Type: "string", MinLength: validation.Int(1)},
		"age":                    {Type: "integer", Minimum: validation.Float(1), Maximum: validation.Float(120)},
		"gender":                 {Type: "string", Enum: []interface{}{"Male", "Female"}},
		"profession":             {Type: validation.Nullable("string")},
		"qualification":          {Type: validation.Nullable("string")},
		"maritalStatus":          {Type: validation.Nullable("string")},
		"height":                 {Type: "string", MinLength: validation.Int(1)},
		"birthYear":              {Type: validation.Nullable("integer")},
		"profilePicture":         {Type: validation.Nullable("string")},
		"profilePictureOriginal": {Type: validation.Nullable("string")},
		"document":               {Type: validation.Nullable("string")},
		"documentOriginal":       {Type: validation.Nullable("string")},
	},
	Required: []string{"name", "age", "gender", "height"},
})

type Handler struct {
	config       *Config
	store        *profiles.Store
	index        *profiles.Index
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. index may be nil when search indexing is off.
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
	profile := input.toProfile()
	if err := profiles.Validate(profile); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}

	created, err := h.store.Create(ctx, profile)
	if stderrors.Is(err, profiles.ErrIDExhausted) {
		return nil, errors.NewDuplicateProfileIDError(err)
	}
	if err != nil {
		return nil, errors.FromDatabaseError("create profile", err)
	}

	h.logger.Info("profile created", map[string]interface{}{
		"id":        created.ID,
		"profileId": created.ProfileID,
		"gender":    created.Gender,
	})

	indexed := false
	if h.index != nil {
		if err := h.index.Put(ctx, created); err != nil {
			h.logger.Warn("failed to index profile", map[string]interface{}{"id": created.ID, "error": err.Error()})
		} else {
			indexed = true
		}
	}

	return &Output{Profile: *created, Indexed: indexed}, nil
}
