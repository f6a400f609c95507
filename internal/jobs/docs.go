// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. CourierStatusJob - Polls the carrier for every dispatched order and caches the returned status
// 2. DraftRetentionJob - Purges unconverted checkout drafts older than the retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(courierStatusJob, draftRetentionJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both schedules come from configuration: the status poll runs every few
// minutes, the retention purge about once a day. Standard five-field cron
// expressions are used.
//
// # Error Handling
//
// - A failed status refresh for one order is logged and the batch continues
// - A failed purge is logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
