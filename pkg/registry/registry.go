// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Implementation statuses accepted by Validate.
var Statuses = []string{"planned", "in-progress", "completed", "verified"}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// New returns an empty registry stamped with now.
func New(now time.Time) *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: now.UTC().Format(time.RFC3339),
		Activities:  []Activity{},
	}
}

// Save writes the registry as indented JSON, creating parent directories.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the activity with the given id, or nil.
func (r *ActivityRegistry) Find(id string) *Activity {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i]
		}
	}
	return nil
}

// Add appends a new activity. Ids and task types must be unique.
func (r *ActivityRegistry) Add(a Activity, now time.Time) error {
	for _, existing := range r.Activities {
		if existing.ID == a.ID {
			return fmt.Errorf("activity with ID %s already exists", a.ID)
		}
		if existing.TaskType == a.TaskType {
			return fmt.Errorf("task type %s already registered by %s", a.TaskType, existing.ID)
		}
	}
	r.Activities = append(r.Activities, a)
	r.touch(now)
	return nil
}

// Update sets one named field on an existing activity.
func (r *ActivityRegistry) Update(id, field, value string, now time.Time) error {
	a := r.Find(id)
	if a == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}
	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		var retries int
		if _, err := fmt.Sscanf(value, "%d", &retries); err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	case "errorCodes":
		a.ErrorCodes = splitList(value)
	case "tags":
		a.Tags = splitList(value)
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	r.touch(now)
	return nil
}

// Validate checks required fields, uniqueness, statuses, timeouts and, when
// knownCodes is non-empty, that every declared error code is one of them.
func (r *ActivityRegistry) Validate(knownCodes []string) error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	known := make(map[string]bool, len(knownCodes))
	for _, c := range knownCodes {
		known[c] = true
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]string)
	var problems []string
	for _, a := range r.Activities {
		if a.ID == "" {
			problems = append(problems, "activity missing required field: ID")
			continue
		}
		if ids[a.ID] {
			problems = append(problems, fmt.Sprintf("duplicate activity ID: %s", a.ID))
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			problems = append(problems, fmt.Sprintf("activity %s missing required field: DisplayName", a.ID))
		}
		if a.Category == "" {
			problems = append(problems, fmt.Sprintf("activity %s missing required field: Category", a.ID))
		}
		if a.TaskType == "" {
			problems = append(problems, fmt.Sprintf("activity %s missing required field: TaskType", a.ID))
		} else if owner, dup := taskTypes[a.TaskType]; dup {
			problems = append(problems, fmt.Sprintf("activity %s reuses task type %s of %s", a.ID, a.TaskType, owner))
		} else {
			taskTypes[a.TaskType] = a.ID
		}
		if a.ImplementationStatus != "" && !contains(Statuses, a.ImplementationStatus) {
			problems = append(problems, fmt.Sprintf("activity %s has unknown status %q", a.ID, a.ImplementationStatus))
		}
		if _, err := a.TimeoutDuration(); err != nil {
			problems = append(problems, fmt.Sprintf("activity %s has invalid timeout %q", a.ID, a.Timeout))
		}
		if len(known) > 0 {
			for _, code := range a.ErrorCodes {
				if !known[code] {
					problems = append(problems, fmt.Sprintf("activity %s declares unknown error code %s", a.ID, code))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// ByCategory groups activity ids by category, sorted.
func (r *ActivityRegistry) ByCategory() map[string][]string {
	out := make(map[string][]string)
	for _, a := range r.Activities {
		out[a.Category] = append(out[a.Category], a.ID)
	}
	for _, ids := range out {
		sort.Strings(ids)
	}
	return out
}

func (r *ActivityRegistry) touch(now time.Time) {
	r.LastUpdated = now.UTC().Format(time.RFC3339)
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
