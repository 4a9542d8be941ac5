// Package jobs provides scheduled background tasks for the delivery
// coordination platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. StaleClaimReleaseJob - Runs every minute to return claims that were
// never started to the available pool, so a driver who claims a request and
// disappears cannot strand it.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(releaseHandler, maxClaimAge, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed start
// surfaces to the caller so the process can refuse to come up half-running.
package jobs
