package jobs

import (
	"github.com/vytor/lingualearn/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	syncPool *worker.Pool
	syncer   worker.ProgressSyncer
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(syncPool *worker.Pool, syncer worker.ProgressSyncer) JobQueue {
	return &WorkerQueue{
		syncPool: syncPool,
		syncer:   syncer,
	}
}

func (q *WorkerQueue) EnqueueSync(userID int64) error {
	return q.syncPool.Submit(&worker.SyncProgressJob{
		Syncer: q.syncer,
		UserID: userID,
	})
}
