package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// CourierStatusJob periodically re-polls the carrier for every dispatched
// order and stores the returned status. Orders whose courier status has
// reached a terminal value drop out of the poll set on their own.
type CourierStatusJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.RefreshCourierStatusCommandHandler
	cron       *cron.Cron
	spec       string
	logger     *slog.Logger
}

// NewCourierStatusJob creates the polling job. The cron spec controls the
// poll cadence; carrier rate limits make anything under a minute unwise.
func NewCourierStatusJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.RefreshCourierStatusCommandHandler,
	spec string,
	logger *slog.Logger,
) *CourierStatusJob {
	return &CourierStatusJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(),
		spec:       spec,
		logger:     logger.With("component", "courier_status_job"),
	}
}

// Start begins polling on the configured schedule.
func (j *CourierStatusJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier status job started", "spec", j.spec)
	return nil
}

// Stop stops the polling job.
func (j *CourierStatusJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier status job stopped")
}

// run polls one batch. A failure on one order is logged and does not stop
// the rest of the batch; the next tick retries naturally.
func (j *CourierStatusJob) run() {
	ctx := context.Background()

	dispatched, err := j.listDispatched(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing dispatched orders failed", "error", err)
		return
	}

	for _, aggregate := range dispatched {
		cmd, cmdErr := commands.NewRefreshCourierStatusCommand(aggregate.ID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Building refresh command failed",
				"order_id", aggregate.ID().String(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.WarnContext(ctx, "Courier status refresh failed",
				"order_id", aggregate.ID().String(), "error", handleErr)
		}
	}
}

func (j *CourierStatusJob) listDispatched(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllDispatched(ctx)
}
