// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"ghotok-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name        string
	PackageName string
	TaskType    string
	Description string
	Category    string
	ErrorCodes  []string
	Fields      []Field
	Required    []string
}

// Field is one input property lifted from the activity's input schema.
type Field struct {
	Name        string
	JSONName    string
	GoType      string
	SchemaType  string
	Description string
	Required    bool
}

func fieldsFromSchema(schema map[string]interface{}) ([]Field, []string) {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	var requiredList []string
	if list, ok := schema["required"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok {
				required[s] = true
				requiredList = append(requiredList, s)
			}
		}
	}
	sort.Strings(requiredList)

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		schemaType, _ := details["type"].(string)
		if schemaType == "" {
			schemaType = "string"
		}
		desc, _ := details["description"].(string)
		fields = append(fields, Field{
			Name:        upperFirst(name),
			JSONName:    name,
			GoType:      goTypeFromJSONType(schemaType),
			SchemaType:  schemaType,
			Description: desc,
			Required:    required[name],
		})
	}
	return fields, requiredList
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType string) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "Id") {
		s = strings.TrimSuffix(s, "Id") + "ID"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}
`

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .Fields }}
	{{ .Name }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}{{ if not .Required }},omitempty{{ end }}\"`" + `{{ if .Description }} // {{ .Description }}{{ end }}
{{- end }}
}

type Output struct {
	Success bool ` + "`json:\"success\"`" + `
}
`

const validationTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/validation.go
package {{ .PackageName }}

import (
	"encoding/json"

	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/validation"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
{{- range .Fields }}
		"{{ .JSONName }}": {Type: "{{ .SchemaType }}"{{ if .Description }}, Description: {{ printf "%q" .Description }}{{ end }}},
{{- end }}
	},
{{- if .Required }}
	Required: []string{ {{- range $i, $r := .Required }}{{ if $i }}, {{ end }}"{{ $r }}"{{ end -}} },
{{- end }}
})

func parseInput(raw string) (*Input, error) {
	result, err := inputSchema.ValidateJSON(raw)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(result.Summary())
	}

	var input Input
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &input); err != nil {
			return nil, errors.NewParseError(err)
		}
	}
	return &input, nil
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"

	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler runs {{ .Name }} jobs.{{ if .Description }} {{ .Description }}{{ end }}
type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{Success: true}, nil
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"ghotok-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.True(t, out.Success)
}
{{ if .Required }}
func TestParseInputRequiresFields(t *testing.T) {
	_, err := parseInput("{}")
	assert.Error(t, err)
}
{{ end -}}
`

var templates = []struct {
	filename string
	body     string
}{
	{"config.go", configTemplate},
	{"models.go", modelsTemplate},
	{"validation.go", validationTemplate},
	{"handler.go", handlerTemplate},
	{"handler_test.go", testTemplate},
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("worker-generator", flag.ContinueOnError)
	fs.SetOutput(out)
	activity := fs.String("activity", "", "Activity ID from registry (e.g., match-profile)")
	outputDir := fs.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := fs.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *activity == "" {
		fmt.Fprintln(out, "Usage: worker-generator -activity <id> [-output <dir>] [-registry <path>] [-force]")
		return fmt.Errorf("activity is required")
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		return fmt.Errorf("loading registry from %s: %w", *registryPath, err)
	}
	act := reg.Find(*activity)
	if act == nil {
		return fmt.Errorf("activity %q not found in registry %s", *activity, *registryPath)
	}

	fields, required := fieldsFromSchema(act.InputSchema)
	data := WorkerData{
		Name:        act.DisplayName,
		PackageName: strings.ReplaceAll(act.ID, "-", ""),
		TaskType:    act.TaskType,
		Description: act.Description,
		Category:    act.Category,
		ErrorCodes:  act.ErrorCodes,
		Fields:      fields,
		Required:    required,
	}

	workerDir := filepath.Join(*outputDir, act.Category, act.ID)
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	for _, t := range templates {
		path := filepath.Join(workerDir, t.filename)
		if _, err := os.Stat(path); err == nil && !*force {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}

		src, err := render(t.filename, t.body, data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(out, "Generated %s\n", path)
	}

	fmt.Fprintf(out, "\nWorker scaffold generated at: %s\n", workerDir)
	fmt.Fprintf(out, "Next steps:\n")
	fmt.Fprintf(out, "  1. Implement execute in handler.go\n")
	fmt.Fprintf(out, "  2. Register the handler in cmd/worker-manager/workers.go\n")
	fmt.Fprintf(out, "  3. Add a workers.%s section to configs/config.yaml\n", act.TaskType)
	return nil
}

func render(name, body string, data WorkerData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", name, err)
	}
	return src, nil
}
