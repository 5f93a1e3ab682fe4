// internal/workers/options/manage-custom-options/handler.go
package managecustomoptions

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/common/validation"
	"ghotok-workers/internal/options"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "manage-custom-options"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"operation": {Type: "string", Enum: []interface{}{OperationList, OperationCreate, OperationDelete}},
		"fieldType": {Type: validation.Nullable("string")},
		"value":     {Type: validation.Nullable("string")},
		"id":        {Type: validation.Nullable("integer")},
	},
	Required: []string{"operation"},
})

type Handler struct {
	config       *Config
	store        *options.Store
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store *options.Store, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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
	switch input.Operation {
	case OperationList:
		field, err := fieldType(input.FieldType)
		if err != nil {
			return nil, err
		}
		values, custom, err := h.store.Merged(ctx, field)
		if err != nil {
			return nil, errors.FromDatabaseError("list custom options", err)
		}
		return &Output{Operation: input.Operation, Values: values, Custom: custom}, nil

	case OperationCreate:
		field, err := fieldType(input.FieldType)
		if err != nil {
			return nil, err
		}
		opt, err := h.store.Create(ctx, field, input.Value)
		if stderrors.Is(err, options.ErrInvalidValue) {
			return nil, errors.NewInvalidInputError(err.Error())
		}
		if err != nil {
			return nil, errors.FromDatabaseError("create custom option", err)
		}
		h.logger.Info("custom option created", map[string]interface{}{"id": opt.ID, "fieldType": opt.FieldType})
		return &Output{Operation: input.Operation, Option: opt}, nil

	case OperationDelete:
		if input.ID <= 0 {
			return nil, errors.NewInvalidInputError("id is required for delete")
		}
		err := h.store.Delete(ctx, input.ID)
		if stderrors.Is(err, options.ErrNotFound) {
			return nil, errors.NewOptionNotFoundError(input.ID)
		}
		if err != nil {
			return nil, errors.FromDatabaseError("delete custom option", err)
		}
		h.logger.Info("custom option deleted", map[string]interface{}{"id": input.ID})
		return &Output{Operation: input.Operation, Deleted: true}, nil
	}

	return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown operation %q", input.Operation))
}

func fieldType(raw string) (options.FieldType, error) {
	field := options.FieldType(raw)
	if !field.Valid() {
		return "", errors.NewInvalidInputError(fmt.Sprintf("unknown fieldType %q", raw))
	}
	return field, nil
}
