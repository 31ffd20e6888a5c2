// Package recompute runs the periodic batch recompute: every project on
// disk gets Schedule() run against its current tasks and anchors, and the
// result is published as a notify.Event. Nothing here persists a computed
// schedule; the recompute exists purely to surface schedule errors and
// push fresh slack/criticality numbers to subscribers without a client
// having to ask for every project in turn.
package recompute

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/projectanchor/scheduler/internal/circuitbreaker"
	"github.com/projectanchor/scheduler/internal/dlq"
	"github.com/projectanchor/scheduler/internal/notify"
	"github.com/projectanchor/scheduler/internal/retry"
	"github.com/projectanchor/scheduler/internal/schedule"
	"github.com/projectanchor/scheduler/internal/storage"
	"github.com/projectanchor/scheduler/pkg/models"
)

// Daemon owns the cron schedule that drives batch recompute.
type Daemon struct {
	cron      *cron.Cron
	store     storage.ProjectRepository
	publisher notify.Publisher
	breaker   *circuitbreaker.CircuitBreaker
	retry     *retry.Executor
	failures  *dlq.Manager

	mu      sync.Mutex
	running bool
}

// New builds a recompute daemon. publisher and failures may be nil; a no-op
// publisher and an in-memory DLQ are substituted so callers can opt into
// only the pieces they need wired.
func New(store storage.ProjectRepository, publisher notify.Publisher, failures *dlq.Manager) *Daemon {
	if publisher == nil {
		publisher = notify.NoOpPublisher{}
	}
	if failures == nil {
		failures = dlq.NewManager(dlq.NewMemoryQueue(), 0)
	}

	return &Daemon{
		cron:      cron.New(cron.WithSeconds()),
		store:     store,
		publisher: publisher,
		breaker:   circuitbreaker.New(circuitbreaker.NotifyDefaults()),
		retry:     retry.NewExecutor(retry.DefaultConfig()),
		failures:  failures,
	}
}

// Schedule registers the recurring recompute job, using standard 6-field
// cron-with-seconds syntax (e.g. "0 */5 * * * *" for every five minutes).
func (d *Daemon) Schedule(cronExpr string) error {
	_, err := d.cron.AddFunc(cronExpr, func() {
		d.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid recompute schedule %q: %w", cronExpr, err)
	}
	return nil
}

// Start begins running the registered job on its schedule.
func (d *Daemon) Start() {
	d.mu.Lock()
	d.running = true
	d.mu.Unlock()
	d.cron.Start()
}

// Stop waits for any in-flight run to finish before returning.
func (d *Daemon) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
}

// RunOnce recomputes every project's schedule exactly once, useful both as
// the cron job body and for an operator-triggered manual run.
func (d *Daemon) RunOnce(ctx context.Context) {
	projects, err := d.store.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("recompute: failed to list projects")
		return
	}

	for _, meta := range projects {
		d.recomputeOne(ctx, meta.ID)
	}
}

func (d *Daemon) recomputeOne(ctx context.Context, projectID string) {
	// A project file can be mid-rewrite (temp file renamed into place) when
	// the listing was taken; a couple of quick retries rides that out
	// instead of treating it as a permanent failure.
	var project *models.Project
	err := d.retry.Execute(ctx, func() error {
		var loadErr error
		project, loadErr = d.store.Get(ctx, projectID)
		return loadErr
	})
	if err != nil {
		logrus.WithError(err).WithField("project_id", projectID).Warn("recompute: failed to load project")
		return
	}

	result, err := schedule.Schedule(schedule.Request{Tasks: project.Tasks, Anchors: project.Anchors})

	event := notify.Event{ProjectID: projectID, OccurredAt: time.Now().UTC(), TaskCount: len(project.Tasks)}
	if err != nil {
		event.Error = err.Error()
		if dlqErr := d.failures.AddFailedRecompute(ctx, projectID, 1, err); dlqErr != nil {
			logrus.WithError(dlqErr).WithField("project_id", projectID).Warn("recompute: failed to record dlq entry")
		}
	} else {
		for _, task := range result {
			if task.IsCritical {
				event.CriticalPath++
			}
		}
	}

	if publishErr := d.breaker.Execute(func() error { return d.publisher.Publish(event) }); publishErr != nil {
		logrus.WithError(publishErr).WithField("project_id", projectID).Warn("recompute: failed to publish event")
	}
}
