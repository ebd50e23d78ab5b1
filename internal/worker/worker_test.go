package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 2
}

func TestNoticeCleanupWorker_StopsOnCancel(t *testing.T) {
	s := &countingSweeper{}
	w := NewNoticeCleanupWorker(s, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker không dừng sau khi hủy context")
	}
}

func TestNewNoticeCleanupWorker_DefaultInterval(t *testing.T) {
	w := NewNoticeCleanupWorker(&countingSweeper{}, 0)
	assert.Equal(t, time.Minute, w.interval)
}
