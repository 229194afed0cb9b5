package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job represents a scheduled job
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron       *cron.Cron
	jobs       map[string]Job
	isRunning  bool
	jobTimeout time.Duration
	log        *logrus.Entry
}

// NewScheduler creates a scheduler whose specs carry a seconds field.
func NewScheduler(log *logrus.Entry) *Scheduler {
	log = log.WithField("component", "scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cron.PrintfLogger(log)),
			cron.WithChain(cron.Recover(cron.PrintfLogger(log))),
		),
		jobs:       make(map[string]Job),
		jobTimeout: 10 * time.Minute,
		log:        log,
	}
}

// AddJob adds a job to the scheduler with a cron specification
func (s *Scheduler) AddJob(spec string, job Job) error {
	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	_, err := s.cron.AddFunc(spec, func() {
		log := s.log.WithField("job", name)
		log.Info("starting scheduled job")
		startTime := time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		if err := job.Run(ctx); err != nil {
			log.WithError(err).Error("job failed")
			return
		}
		log.WithField("duration", time.Since(startTime).String()).Info("job completed")
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %v", name, err)
	}

	s.jobs[name] = job
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.log.Info("scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.log.Info("scheduler stopped")
}

// RunJobNow runs a job immediately outside of schedule
func (s *Scheduler) RunJobNow(ctx context.Context, name string) error {
	job, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not registered", name)
	}

	s.log.WithField("job", name).Info("manually running job")
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	return job.Run(ctx)
}
