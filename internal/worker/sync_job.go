package worker

import (
	"context"

	"github.com/vytor/lingualearn/internal/logger"
)

// ProgressSyncer pushes a user's offline completions to the primary store.
type ProgressSyncer interface {
	SyncOfflineData(ctx context.Context, userID int64) (int, error)
}

// SyncProgressJob syncs one user's offline progress.
type SyncProgressJob struct {
	Syncer ProgressSyncer
	UserID int64
}

func (j *SyncProgressJob) Name() string { return "sync_progress" }

func (j *SyncProgressJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)
	n, err := j.Syncer.SyncOfflineData(ctx, j.UserID)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("synced %d offline completions", n)
	}
	return nil
}
