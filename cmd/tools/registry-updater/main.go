// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"ghotok-workers/internal/common/errors"
	"ghotok-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, now func() time.Time) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("command is required")
	}

	switch args[0] {
	case "add":
		return runAdd(args[1:], out, now())
	case "update":
		return runUpdate(args[1:], out, now())
	case "validate":
		return runValidate(args[1:], out)
	case "list":
		return runList(args[1:], out)
	default:
		help(out)
		return nil
	}
}

func runAdd(args []string, out io.Writer, now time.Time) error {
	cmd := flag.NewFlagSet("add", flag.ContinueOnError)
	cmd.SetOutput(out)
	path := cmd.String("path", defaultRegistryPath, "Path to registry file")
	id := cmd.String("id", "", "Activity ID (e.g., match-profile)")
	displayName := cmd.String("displayName", "", "Display Name (e.g., Match Profile)")
	description := cmd.String("description", "", "Description")
	category := cmd.String("category", "", "Category (e.g., matching)")
	taskType := cmd.String("taskType", "", "Zeebe Task Type (defaults to id)")
	version := cmd.String("version", "1.0.0", "Version")
	status := cmd.String("status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
	timeout := cmd.String("timeout", "10s", "Job timeout")
	retries := cmd.Int("retries", 3, "Job retries")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	if *id == "" || *displayName == "" || *description == "" || *category == "" {
		cmd.Usage()
		return fmt.Errorf("id, displayName, description and category are required for add")
	}
	if *taskType == "" {
		*taskType = *id
	}

	reg, err := registry.LoadRegistry(*path)
	if os.IsNotExist(err) {
		reg, err = registry.New(now), nil
	}
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activity := registry.Activity{
		ID:                   *id,
		DisplayName:          *displayName,
		Description:          *description,
		Category:             *category,
		Version:              *version,
		TaskType:             *taskType,
		ImplementationStatus: *status,
		InputSchema:          map[string]interface{}{},
		OutputSchema:         map[string]interface{}{},
		ErrorCodes:           []string{},
		Timeout:              *timeout,
		Retries:              *retries,
		Workflows:            []string{},
		Tags:                 []string{},
	}
	if err := reg.Add(activity, now); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added activity: %s\n", *id)
	return nil
}

func runUpdate(args []string, out io.Writer, now time.Time) error {
	cmd := flag.NewFlagSet("update", flag.ContinueOnError)
	cmd.SetOutput(out)
	path := cmd.String("path", defaultRegistryPath, "Path to registry file")
	id := cmd.String("id", "", "Activity ID to update")
	field := cmd.String("field", "", "Field to update (status, version, timeout, retries, errorCodes, ...)")
	value := cmd.String("value", "", "New value for the field")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id == "" || *field == "" || *value == "" {
		cmd.Usage()
		return fmt.Errorf("id, field and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(*id, *field, *value, now); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func runValidate(args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	cmd.SetOutput(out)
	path := cmd.String("path", defaultRegistryPath, "Path to registry file")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(knownErrorCodes()); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func runList(args []string, out io.Writer) error {
	cmd := flag.NewFlagSet("list", flag.ContinueOnError)
	cmd.SetOutput(out)
	path := cmd.String("path", defaultRegistryPath, "Path to registry file")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	groups := reg.ByCategory()
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		fmt.Fprintf(out, "%s:\n", c)
		for _, id := range groups[c] {
			a := reg.Find(id)
			fmt.Fprintf(out, "  %-24s %-12s %s\n", a.ID, a.ImplementationStatus, a.TaskType)
		}
	}
	return nil
}

// knownErrorCodes is every code a worker can throw to the engine.
func knownErrorCodes() []string {
	codes := []string{string(errors.ErrCodeInternal)}
	seen := map[string]bool{string(errors.ErrCodeInternal): true}
	for _, bpmn := range errors.BPMNErrorMapping {
		if !seen[bpmn] {
			seen[bpmn] = true
			codes = append(codes, bpmn)
		}
	}
	sort.Strings(codes)
	return codes
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  list     List activities grouped by category
  help     Show this help message

Examples:
  registry-updater add -id notify-match -displayName "Notify Match" -description "Sends a match notification" -category communication
  registry-updater update -id notify-match -field status -value completed
  registry-updater validate -path configs/activity-registry.json

Use 'registry-updater <command> -h' for more information about a command.`)
}
