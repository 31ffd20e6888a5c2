package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/projectanchor/scheduler/internal/schedule"
	"github.com/projectanchor/scheduler/pkg/models"
)

// fileProjectStore persists each project as its own <uuid>.json file under
// dir, mirroring the original desktop app's per-project file layout rather
// than a single database table: projects are small, edited one at a time,
// and never need cross-project queries beyond the listing.
type fileProjectStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileProjectStore creates dir if needed and returns a ProjectRepository
// backed by it.
func NewFileProjectStore(dir string) (ProjectRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create projects directory: %w", err)
	}
	return &fileProjectStore{dir: dir}, nil
}

func (s *fileProjectStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *fileProjectStore) Create(ctx context.Context, name string) (*models.Project, error) {
	now := time.Now().UTC()
	project := &models.Project{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    now,
		LastModified: now,
		Tasks:        []schedule.Task{},
		Anchors:      schedule.Anchors{},
	}
	if err := s.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *fileProjectStore) Save(ctx context.Context, project *models.Project) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project.LastModified = time.Now().UTC()

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project %s: %w", project.ID, err)
	}

	tmp := s.path(project.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write project %s: %w", project.ID, err)
	}
	if err := os.Rename(tmp, s.path(project.ID)); err != nil {
		return fmt.Errorf("finalize project %s: %w", project.ID, err)
	}
	return nil
}

func (s *fileProjectStore) Get(ctx context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read project %s: %w", id, err)
	}

	var project models.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("unmarshal project %s: %w", id, err)
	}
	return &project, nil
}

func (s *fileProjectStore) List(ctx context.Context) ([]models.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read projects directory: %w", err)
	}

	result := make([]models.Metadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var project models.Project
		if err := json.Unmarshal(data, &project); err != nil {
			continue
		}
		result = append(result, models.Metadata{
			ID:           project.ID,
			Name:         project.Name,
			CreatedAt:    project.CreatedAt,
			LastModified: project.LastModified,
			TaskCount:    len(project.Tasks),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LastModified.After(result[j].LastModified)
	})

	return result, nil
}

func (s *fileProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}
