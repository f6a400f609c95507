package jobs

import "fmt"

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierStatusJob  *CourierStatusJob
	draftRetentionJob *DraftRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	courierStatusJob *CourierStatusJob,
	draftRetentionJob *DraftRetentionJob,
) *JobManager {
	return &JobManager{
		courierStatusJob:  courierStatusJob,
		draftRetentionJob: draftRetentionJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.courierStatusJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier status job: %w", err)
	}

	if err := jm.draftRetentionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.courierStatusJob.Stop()
		return fmt.Errorf("failed to start draft retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.courierStatusJob.Stop()
	jm.draftRetentionJob.Stop()
}
