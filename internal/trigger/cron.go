// Package trigger adds cron-scheduled DAG runs on top of the on-demand
// engine. It sits strictly outside the core: a CronTrigger never mutates a
// Dag and never runs the same Dag instance concurrently with itself, so it
// cannot introduce persistence across runs or re-entrant execution.
package trigger

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/taskgraph/dagrs/internal/engine"
	"github.com/taskgraph/dagrs/internal/logger"
)

// CronTrigger periodically calls Engine.RunDag on a robfig/cron schedule.
type CronTrigger struct {
	engine *engine.Engine
	log    logger.Logger
	cron   *cron.Cron
}

// NewCronTrigger wraps engine with a cron scheduler. log receives a line per
// scheduled run, success or failure.
func NewCronTrigger(e *engine.Engine, log logger.Logger) *CronTrigger {
	if log == nil {
		log = logger.Default
	}
	return &CronTrigger{engine: e, log: log, cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))}
}

// Schedule registers a standard 5-field cron spec that invokes RunDag(dagName)
// each time it fires. The scheduler is built with cron.SkipIfStillRunning, so
// it does not start a new invocation of the same entry while a previous one
// is still running — and Engine.RunDag additionally rejects a Dag instance that is
// already mid-run (see dag.Dag's at-most-once-per-instance guard), so a
// CronTrigger cannot produce concurrent runs of the same DAG.
func (c *CronTrigger) Schedule(spec string, dagName string) (cron.EntryID, error) {
	return c.cron.AddFunc(spec, func() {
		if _, err := c.engine.RunDag(context.Background(), dagName); err != nil {
			c.log.Error("scheduled dag run failed", "dag", dagName, "error", err)
			return
		}
		c.log.Info("scheduled dag run completed", "dag", dagName)
	})
}

// Start begins firing scheduled entries in a background goroutine.
func (c *CronTrigger) Start() { c.cron.Start() }

// Stop halts the scheduler, waiting for any in-flight entry to finish.
func (c *CronTrigger) Stop() {
	<-c.cron.Stop().Done()
}
