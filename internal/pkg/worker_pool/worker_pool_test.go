package worker_pool

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 3, false, log.New())
	defer pool.Stop()

	const n = 20
	go func() {
		for i := 0; i < n; i++ {
			i := i
			assert.NoError(t, pool.Submit(fmt.Sprint(i), func(ctx context.Context) (any, error) {
				return i * i, nil
			}))
		}
	}()

	got := make(map[string]any, n)
	for len(got) < n {
		res := <-pool.ResultsCh
		assert.NoError(t, res.Err)
		got[res.ID] = res.Result
	}
	assert.Equal(t, 49, got["7"])
	assert.Equal(t, 361, got["19"])
}

func TestWorkerPool_ReportsTaskErrors(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2, false, log.New())
	defer pool.Stop()

	boom := errors.New("boom")
	go pool.Submit("bad", func(ctx context.Context) (any, error) { return nil, boom })

	res := <-pool.ResultsCh
	assert.Equal(t, "bad", res.ID)
	assert.ErrorIs(t, res.Err, boom)
}

func TestWorkerPool_StopOnError(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, true, log.New())

	require.NoError(t, pool.Submit("first", func(ctx context.Context) (any, error) {
		return nil, errors.New("fail")
	}))

	// the results channel is closed once the failing task cancels the pool
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-pool.ResultsCh:
			if !ok {
				assert.ErrorIs(t, pool.Submit("late", func(ctx context.Context) (any, error) { return nil, nil }), ErrPoolCanceled)
				return
			}
		case <-deadline:
			t.Fatal("results channel was not closed")
		}
	}
}

func TestWorkerPool_StopClosesResults(t *testing.T) {
	var ran atomic.Int32
	pool := NewWorkerPool(context.Background(), 4, false, log.New())
	require.NoError(t, pool.Submit("one", func(ctx context.Context) (any, error) {
		ran.Add(1)
		return nil, nil
	}))
	<-pool.ResultsCh
	pool.Stop()

	_, ok := <-pool.ResultsCh
	assert.False(t, ok)
	assert.Equal(t, int32(1), ran.Load())
}
