// Package jobs provides scheduled background tasks for the round planner.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RefineRoundJob re-solves every courier tour that the solver returned as
// time-limited, with the larger refine budget. When a tour improves, the whole
// round is saved and published under a fresh round ID, and the replacement is
// one undoable edit of the planner.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(refineHandler, jobs.DefaultRefineSchedule, 30*time.Second, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six cron fields, seconds first. Runs never overlap with edits:
// the planner serializes every state change.
//
// # Error Handling
//
// Failures are logged and the next run tries again. A run that finds no
// time-limited tour does nothing.
package jobs
