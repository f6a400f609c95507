package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DraftRetentionJob purges unconverted checkout drafts older than the
// retention window. Converted drafts are kept; the conversion report
// depends on them.
type DraftRetentionJob struct {
	uowFactory commands.DraftUoWFactory
	retention  time.Duration
	cron       *cron.Cron
	spec       string
	logger     *slog.Logger
}

// NewDraftRetentionJob creates the purge job. The cron spec is expected to
// fire about once a day; running it more often only wastes a query.
func NewDraftRetentionJob(
	uowFactory commands.DraftUoWFactory,
	retention time.Duration,
	spec string,
	logger *slog.Logger,
) *DraftRetentionJob {
	return &DraftRetentionJob{
		uowFactory: uowFactory,
		retention:  retention,
		cron:       cron.New(),
		spec:       spec,
		logger:     logger.With("component", "draft_retention_job"),
	}
}

// Start begins the purge schedule.
func (j *DraftRetentionJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft retention job started",
		"spec", j.spec, "retention", j.retention.String())
	return nil
}

// Stop stops the purge schedule.
func (j *DraftRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft retention job stopped")
}

func (j *DraftRetentionJob) run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.retention)

	removed, err := j.purge(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft retention purge failed", "error", err)
		return
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "Purged stale checkout drafts",
			"removed", removed, "cutoff", cutoff)
	}
}

func (j *DraftRetentionJob) purge(ctx context.Context, cutoff time.Time) (int64, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.DraftRepository().PurgeUnconvertedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
