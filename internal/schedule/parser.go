package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Parser handles parsing project definitions from YAML or JSON, so a
// project's tasks and anchors can be authored as a file and imported
// instead of assembled request by request.
type Parser struct{}

// NewParser creates a new definition parser.
func NewParser() *Parser {
	return &Parser{}
}

// Definition is a parsed project definition: an optional display name plus
// the schedule request it describes.
type Definition struct {
	Name    string
	Request Request
}

// definitionFile represents the structure of a project definition file.
type definitionFile struct {
	Name    string            `json:"name" yaml:"name"`
	Tasks   []taskFile        `json:"tasks" yaml:"tasks"`
	Anchors map[string]string `json:"anchors,omitempty" yaml:"anchors,omitempty"`
}

// taskFile represents the structure of a task in a definition file.
type taskFile struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	DurationDays    int64    `json:"duration_days" yaml:"duration_days"`
	DurationMinutes *int64   `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	Dependencies    []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Completed       bool     `json:"completed" yaml:"completed"`
	Notes           *string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	IsMilestone     bool     `json:"is_milestone" yaml:"is_milestone"`
	Subtasks        []string `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
}

// ParseYAMLFile parses a project definition from a YAML file.
func (p *Parser) ParseYAMLFile(filepath string) (*Definition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseYAML(data)
}

// ParseYAML parses a project definition from YAML bytes.
func (p *Parser) ParseYAML(data []byte) (*Definition, error) {
	var df definitionFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return p.convert(&df)
}

// ParseJSONFile parses a project definition from a JSON file.
func (p *Parser) ParseJSONFile(filepath string) (*Definition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseJSON(data)
}

// ParseJSON parses a project definition from JSON bytes.
func (p *Parser) ParseJSON(data []byte) (*Definition, error) {
	var df definitionFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return p.convert(&df)
}

// convert validates a definitionFile and produces the Definition. Reference
// problems (unknown anchors, unknown dependencies) reuse the scheduler's
// error kinds so callers see the same diagnostics an invalid Schedule call
// would produce.
func (p *Parser) convert(df *definitionFile) (*Definition, error) {
	tasks := make([]Task, 0, len(df.Tasks))
	seen := make(map[string]bool, len(df.Tasks))
	for _, tf := range df.Tasks {
		if tf.ID == "" {
			return nil, fmt.Errorf("task %q has no id", tf.Name)
		}
		if seen[tf.ID] {
			return nil, fmt.Errorf("duplicate task id %q", tf.ID)
		}
		seen[tf.ID] = true

		name := tf.Name
		if name == "" {
			name = tf.ID
		}
		if tf.DurationDays < 0 {
			return nil, fmt.Errorf("task %q has negative duration_days", tf.ID)
		}
		if tf.DurationMinutes != nil && *tf.DurationMinutes < 0 {
			return nil, fmt.Errorf("task %q has negative duration_minutes", tf.ID)
		}

		tasks = append(tasks, Task{
			ID:              tf.ID,
			Name:            name,
			DurationDays:    tf.DurationDays,
			DurationMinutes: tf.DurationMinutes,
			Dependencies:    tf.Dependencies,
			Completed:       tf.Completed,
			Notes:           tf.Notes,
			IsMilestone:     tf.IsMilestone,
			Subtasks:        tf.Subtasks,
		})
	}

	for _, t := range tasks {
		for _, depID := range t.Dependencies {
			if !seen[depID] {
				return nil, errTaskNotFound(depID)
			}
		}
	}

	req := Request{Tasks: tasks, Anchors: df.Anchors}
	if _, err := newGraph(req); err != nil {
		return nil, err
	}
	for taskID, raw := range df.Anchors {
		if _, err := parseAnchor(taskID, raw); err != nil {
			return nil, err
		}
	}

	return &Definition{Name: df.Name, Request: req}, nil
}
