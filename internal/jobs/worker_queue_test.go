package jobs_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/jobs"
	"github.com/vytor/lingualearn/internal/worker"
)

type recordingSyncer struct {
	mu    sync.Mutex
	users []int64
}

func (r *recordingSyncer) SyncOfflineData(_ context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	return 0, nil
}

func TestWorkerQueue_EnqueueSync(t *testing.T) {
	pool := worker.NewPool(1, 4)
	syncer := &recordingSyncer{}
	queue := jobs.NewWorkerQueue(pool, syncer)

	pool.Start(context.Background())
	require.NoError(t, queue.EnqueueSync(1))
	require.NoError(t, queue.EnqueueSync(2))
	pool.Stop()

	assert.Equal(t, []int64{1, 2}, syncer.users)
	assert.ErrorIs(t, queue.EnqueueSync(3), worker.ErrPoolStopped)
}
