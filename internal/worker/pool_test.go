package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(3, 10)
	pool.Start(context.Background())

	var count atomic.Int32
	for range 10 {
		require.NoError(t, pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			count.Add(1)
			return nil
		}}))
	}
	pool.Stop()

	assert.Equal(t, int32(10), count.Load(), "stop drains the queue")
}

func TestPool_FailingAndPanickingJobsDoNotStopWorkers(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start(context.Background())

	var ran atomic.Bool
	require.NoError(t, pool.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "panic", fn: func(context.Context) error { panic("boom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "ok", fn: func(context.Context) error {
		ran.Store(true)
		return nil
	}}))
	pool.Stop()

	assert.True(t, ran.Load())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_SubmitWhenFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	pool.Start(context.Background())
	blocker := funcJob{name: "block", fn: func(context.Context) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}}
	require.NoError(t, pool.Submit(blocker))
	<-started
	require.NoError(t, pool.Submit(blocker))

	err := pool.Submit(blocker)
	assert.ErrorIs(t, err, worker.ErrQueueFull)
	assert.Equal(t, 1, pool.QueueSize())

	close(release)
	pool.Stop()
}

type stubSyncer struct {
	userID int64
	n      int
	err    error
}

func (s *stubSyncer) SyncOfflineData(_ context.Context, userID int64) (int, error) {
	s.userID = userID
	return s.n, s.err
}

func TestSyncProgressJob(t *testing.T) {
	syncer := &stubSyncer{n: 2}
	job := &worker.SyncProgressJob{Syncer: syncer, UserID: 7}

	assert.Equal(t, "sync_progress", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, int64(7), syncer.userID)

	syncer.err = errors.New("offline")
	assert.Error(t, job.Run(context.Background()))
}
