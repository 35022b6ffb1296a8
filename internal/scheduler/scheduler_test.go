package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/scheduler"
	"github.com/vytor/lingualearn/internal/testutil/mocks"
)

type staticUsers struct {
	users []models.User
	err   error
}

func (s staticUsers) ListUsers(context.Context) ([]models.User, error) {
	return s.users, s.err
}

func TestScheduler_EnqueueSyncs(t *testing.T) {
	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueSync", int64(1)).Return(nil)
	queue.On("EnqueueSync", int64(2)).Return(nil)

	s := scheduler.New(staticUsers{users: []models.User{{ID: 1}, {ID: 2}}}, queue, time.Minute)
	n, err := s.EnqueueSyncs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	queue.AssertExpectations(t)
}

func TestScheduler_EnqueueSyncsStopsWhenQueueFull(t *testing.T) {
	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueSync", int64(1)).Return(nil)
	queue.On("EnqueueSync", int64(2)).Return(errors.New("worker queue full"))

	s := scheduler.New(staticUsers{users: []models.User{{ID: 1}, {ID: 2}, {ID: 3}}}, queue, time.Minute)
	n, err := s.EnqueueSyncs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	queue.AssertNotCalled(t, "EnqueueSync", int64(3))
}

func TestScheduler_EnqueueSyncsListFailure(t *testing.T) {
	queue := new(mocks.MockJobQueue)
	s := scheduler.New(staticUsers{err: errors.New("db closed")}, queue, time.Minute)

	_, err := s.EnqueueSyncs(context.Background())

	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	queue := new(mocks.MockJobQueue)
	s := scheduler.New(staticUsers{}, queue, time.Hour)

	require.NoError(t, s.Start())
	s.Stop()

	queue.AssertNotCalled(t, "EnqueueSync", int64(1))
}
