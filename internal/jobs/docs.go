// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// BrokerAssignmentJob runs every 30 seconds by default (six-field cron
// expression, seconds first). Each run assigns brokers to shipments that
// are under review without one, oldest first, picking the broker with the
// fewest active shipments. A run that overlaps the previous one is skipped.
//
// # Usage
//
//	job := jobs.NewBrokerAssignmentJob(orchestrator, cfg.BrokerAssignmentSchedule, metrics, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// "Nothing waiting" and "no brokers configured" end a run quietly; every
// other error is logged and ends the run. The next tick retries.
package jobs
