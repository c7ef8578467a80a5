// Package jobs runs scheduled background work on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. AbandonStaleTransactionsJob - every minute, marks PENDING payment
//     transactions older than the configured age as ABANDONED.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger,
//		jobs.NewAbandonStaleTransactionsJob(handler, 30*time.Minute, logger))
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A failed start stops the jobs already running. Job errors are logged and
// the job runs again on its next tick.
package jobs
