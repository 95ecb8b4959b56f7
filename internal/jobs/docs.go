// Package jobs provides scheduled background tasks for the laundry backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PaymentTimeoutJob - Sweeps pending orders whose online payment never
// arrived within the configured TTL, moving them to payment_failed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(markStaleHandler, schedule, ttl, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; the job never
// stops itself on error.
package jobs
