package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlDefinition = `
name: Album Release
tasks:
  - id: record
    name: Record tracks
    duration_days: 10
  - id: mix
    name: Mix
    duration_days: 5
    dependencies: [record]
  - id: release
    name: Release
    duration_minutes: 90
    dependencies: [mix]
    is_milestone: true
anchors:
  release: "2026-09-01"
`

func TestParseYAML(t *testing.T) {
	def, err := NewParser().ParseYAML([]byte(yamlDefinition))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.Name != "Album Release" {
		t.Errorf("name = %q, want Album Release", def.Name)
	}
	if len(def.Request.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(def.Request.Tasks))
	}
	if def.Request.Tasks[1].Dependencies[0] != "record" {
		t.Errorf("mix should depend on record, got %v", def.Request.Tasks[1].Dependencies)
	}
	if def.Request.Tasks[2].DurationMinutes == nil || *def.Request.Tasks[2].DurationMinutes != 90 {
		t.Errorf("release should carry minute precision, got %v", def.Request.Tasks[2].DurationMinutes)
	}
	if !def.Request.Tasks[2].IsMilestone {
		t.Error("release should be a milestone")
	}
	if def.Request.Anchors["release"] != "2026-09-01" {
		t.Errorf("expected anchor on release, got %v", def.Request.Anchors)
	}
}

func TestParseYAMLFeedsSchedule(t *testing.T) {
	def, err := NewParser().ParseYAML([]byte(yamlDefinition))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Schedule(def.Request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 scheduled tasks, got %d", len(got))
	}
	if got[2].EndDate != "2026-09-01T23:59:59" {
		t.Errorf("release end = %s, want 2026-09-01T23:59:59", got[2].EndDate)
	}
}

func TestParseYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(yamlDefinition), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	def, err := NewParser().ParseYAMLFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Request.Tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(def.Request.Tasks))
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"name": "Launch Plan",
		"tasks": [
			{"id": "design", "name": "Design", "duration_days": 2},
			{"id": "ship", "name": "Ship", "duration_days": 1, "dependencies": ["design"]}
		],
		"anchors": {"ship": "2026-07-01T12:00:00"}
	}`)

	def, err := NewParser().ParseJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "Launch Plan" {
		t.Errorf("name = %q", def.Name)
	}
	if len(def.Request.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(def.Request.Tasks))
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	if _, err := NewParser().ParseYAML([]byte("{ tasks: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestParseConvertRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing task id",
			yaml: "tasks:\n  - name: Nameless\n    duration_days: 1\n",
		},
		{
			name: "duplicate task id",
			yaml: "tasks:\n  - id: a\n    duration_days: 1\n  - id: a\n    duration_days: 2\n",
		},
		{
			name: "unknown dependency",
			yaml: "tasks:\n  - id: a\n    duration_days: 1\n    dependencies: [ghost]\n",
		},
		{
			name: "unknown anchor task",
			yaml: "tasks:\n  - id: a\n    duration_days: 1\nanchors:\n  ghost: \"2026-01-01\"\n",
		},
		{
			name: "malformed anchor date",
			yaml: "tasks:\n  - id: a\n    duration_days: 1\nanchors:\n  a: \"next tuesday\"\n",
		},
		{
			name: "negative duration",
			yaml: "tasks:\n  - id: a\n    duration_days: -1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParser().ParseYAML([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
