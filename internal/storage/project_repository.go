package storage

import (
	"context"

	"github.com/projectanchor/scheduler/pkg/models"
)

// ProjectRepository defines the interface for project persistence. It holds
// no execution history: a project is just tasks and anchors, and the
// schedule is always recomputed on read.
type ProjectRepository interface {
	Create(ctx context.Context, name string) (*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Metadata, error)
	Delete(ctx context.Context, id string) error
}
