package importer

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/planner"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title            string      `yaml:"title"`
	Date             string      `yaml:"date,omitempty"`
	Deadline         string      `yaml:"deadline,omitempty"`
	EstimatedMinutes int         `yaml:"estimated_minutes,omitempty"`
	Priority         string      `yaml:"priority,omitempty"`
	Importance       int         `yaml:"importance,omitempty"`
	Urgency          int         `yaml:"urgency,omitempty"`
	FocusType        string      `yaml:"focus_type,omitempty"`
	Steps            []YAMLMicro `yaml:"steps,omitempty"`
}

// YAMLMicro is a micro-commitment nested under its parent task.
type YAMLMicro struct {
	Title string `yaml:"title"`
}

// YAMLBlock represents a single time block in the YAML input.
type YAMLBlock struct {
	Title    string `yaml:"title"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Date     string `yaml:"date,omitempty"`
	LinkedTo string `yaml:"linked_to,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks  []YAMLTask  `yaml:"tasks"`
	Blocks []YAMLBlock `yaml:"blocks"`
}

// Import parses a YAML string and creates tasks and time blocks through the
// planner. Returns the number of items created.
func Import(ctx context.Context, svc *planner.Service, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 && len(input.Blocks) == 0 {
		return 0, fmt.Errorf("no tasks or blocks found in YAML")
	}

	count := 0
	// Tasks first so that blocks can link to them by title.
	titleIDs := make(map[string]string)
	for _, yt := range input.Tasks {
		n, err := importTask(ctx, svc, yt, titleIDs)
		if err != nil {
			return count, err
		}
		count += n
	}
	for _, yb := range input.Blocks {
		if err := importBlock(ctx, svc, yb, titleIDs); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importTask(ctx context.Context, svc *planner.Service, yt YAMLTask, titleIDs map[string]string) (int, error) {
	if yt.Title == "" {
		return 0, fmt.Errorf("task title is required")
	}

	date, err := parseDay(yt.Date)
	if err != nil {
		return 0, fmt.Errorf("date for %q: %w", yt.Title, err)
	}

	draft := planner.TaskDraft{
		Title:            yt.Title,
		Date:             date,
		EstimatedMinutes: yt.EstimatedMinutes,
		Priority:         model.Priority(yt.Priority),
		Importance:       yt.Importance,
		Urgency:          yt.Urgency,
		FocusType:        model.FocusType(yt.FocusType),
	}
	if yt.Deadline != "" {
		at, err := time.Parse(time.RFC3339, yt.Deadline)
		if err != nil {
			return 0, fmt.Errorf("deadline for %q: %w", yt.Title, err)
		}
		draft.Deadline = &at
	}

	task, err := svc.CreateTask(ctx, draft)
	if err != nil {
		return 0, fmt.Errorf("add task %q: %w", yt.Title, err)
	}
	titleIDs[task.Title] = task.ID
	count := 1

	for _, step := range yt.Steps {
		if step.Title == "" {
			return count, fmt.Errorf("step title is required under %q", yt.Title)
		}
		if _, err := svc.CreateMicroCommitment(ctx, task.ID, step.Title); err != nil {
			return count, fmt.Errorf("add step %q: %w", step.Title, err)
		}
		count++
	}
	return count, nil
}

func importBlock(ctx context.Context, svc *planner.Service, yb YAMLBlock, titleIDs map[string]string) error {
	if yb.Title == "" {
		return fmt.Errorf("block title is required")
	}
	linkedID := ""
	if yb.LinkedTo != "" {
		id, ok := titleIDs[yb.LinkedTo]
		if !ok {
			return fmt.Errorf("block %q links to unknown task %q", yb.Title, yb.LinkedTo)
		}
		linkedID = id
	}
	date, err := parseDay(yb.Date)
	if err != nil {
		return fmt.Errorf("date for block %q: %w", yb.Title, err)
	}
	if _, err := svc.CreateTimeBlock(ctx, yb.Title, yb.Start, yb.End, date, linkedID); err != nil {
		return fmt.Errorf("add block %q: %w", yb.Title, err)
	}
	return nil
}

// parseDay normalizes an optional day field. Empty stays empty so the
// planner can default it.
func parseDay(raw string) (model.Day, error) {
	if raw == "" {
		return "", nil
	}
	return model.ParseDay(raw)
}
