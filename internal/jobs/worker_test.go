package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSweeper is a mock implementation of Sweeper
type MockSweeper struct {
	mock.Mock

	mu    sync.Mutex
	calls int
}

func (m *MockSweeper) Sweep(ctx context.Context) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSweeper) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestWorker_SweepsImmediatelyAndOnInterval(t *testing.T) {
	sweeper := new(MockSweeper)
	sweeper.On("Sweep", mock.Anything).Return(nil)

	worker := NewWorker(sweeper, 20*time.Millisecond)
	go worker.Start(context.Background())

	time.Sleep(70 * time.Millisecond)
	worker.Stop()

	// One immediate sweep plus at least two ticks.
	assert.GreaterOrEqual(t, sweeper.callCount(), 3)
}

func TestWorker_KeepsRunningAfterSweepError(t *testing.T) {
	sweeper := new(MockSweeper)
	sweeper.On("Sweep", mock.Anything).Return(errors.New("boom"))

	worker := NewWorker(sweeper, 20*time.Millisecond)
	go worker.Start(context.Background())

	time.Sleep(50 * time.Millisecond)
	worker.Stop()

	assert.GreaterOrEqual(t, sweeper.callCount(), 2)
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	sweeper := new(MockSweeper)
	sweeper.On("Sweep", mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())

	worker := NewWorker(sweeper, 10*time.Millisecond)
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
