// Package scheduler periodically queues offline progress syncs for every
// learner.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/lingualearn/internal/jobs"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
)

// UserLister lists the learners whose progress should be synced.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserLister
	queue     jobs.JobQueue
	interval  time.Duration
	log       *logger.Logger
}

// New creates a scheduler that enqueues a sync for every user each interval.
func New(users UserLister, queue jobs.JobQueue, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		users:     users,
		queue:     queue,
		interval:  interval,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start begins running all scheduled tasks without blocking. The first sync
// runs one interval after start.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		if _, err := s.EnqueueSyncs(context.Background()); err != nil {
			s.log.Error("scheduled sync failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule sync: %w", err)
	}

	s.log.Info("syncing offline progress every %s", s.interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// EnqueueSyncs queues a sync job for every user and returns how many were
// queued. A full queue skips the remaining users until the next run.
func (s *Scheduler) EnqueueSyncs(ctx context.Context) (int, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, u := range users {
		if err := s.queue.EnqueueSync(u.ID); err != nil {
			s.log.Warn("stopped queueing syncs at user %d: %v", u.ID, err)
			return queued, nil
		}
		queued++
	}
	s.log.Debug("queued %d sync jobs", queued)
	return queued, nil
}
