package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"workshopcart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (f *countingRefresher) Refresh(ctx context.Context) ([]models.CatalogItem, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []models.CatalogItem{{ID: "1"}}, nil
}

func TestRefreshOnceSucceeds(t *testing.T) {
	r := &countingRefresher{}
	require.NoError(t, refreshOnce(context.Background(), r, zap.NewNop()))
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestRefreshOnceFailureIsNotRetried(t *testing.T) {
	r := &countingRefresher{err: errors.New("backend down")}
	err := refreshOnce(context.Background(), r, zap.NewNop())
	assert.EqualError(t, err, "backend down")
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestStartCatalogRefresherTicks(t *testing.T) {
	r := &countingRefresher{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartCatalogRefresher(ctx, r, 10*time.Millisecond, zap.NewNop())
	assert.Eventually(t, func() bool { return r.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestStartCatalogRefresherFailedTickFetchesOnce(t *testing.T) {
	r := &countingRefresher{err: errors.New("backend down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartCatalogRefresher(ctx, r, time.Hour, zap.NewNop())
	require.Eventually(t, func() bool { return r.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestStartCatalogRefresherDisabled(t *testing.T) {
	r := &countingRefresher{}
	StartCatalogRefresher(context.Background(), r, 0, zap.NewNop())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, r.calls.Load())
}
