package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *zap.Logger
}

func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger.With(zap.String("component", "job_manager")),
	}
}

// StartAll starts the jobs in order. If one fails, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}
	jm.logger.Info("jobs started", zap.Int("count", len(jm.started)))
	return nil
}

// StopAll stops started jobs in reverse order and waits for running ticks.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
