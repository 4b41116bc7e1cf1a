package future

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOnce(t *testing.T) {
	f := New[int]()
	assert.False(t, f.IsResolved())

	require.NoError(t, f.Resolve(1))
	assert.True(t, f.IsResolved())

	// 第二次解析被拒绝，且不改变结果
	assert.ErrorIs(t, f.Resolve(2), ErrAlreadyResolved)
	assert.ErrorIs(t, f.Reject(errors.New("late")), ErrAlreadyResolved)

	v, err := f.AwaitTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestReject(t *testing.T) {
	boom := errors.New("boom")
	f := Failed[string](boom)

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestAwaitTimeout(t *testing.T) {
	f := New[int]()

	start := time.Now()
	_, err := f.AwaitTimeout(50 * time.Millisecond)
	assert.ErrorIs(t, err, ErrAwaitTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	// 超时不会解析 Future
	assert.False(t, f.IsResolved())
}

func TestAwaitContext(t *testing.T) {
	f := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitFromOtherGoroutine(t *testing.T) {
	f := New[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = f.Resolve(42)
	}()

	v, err := f.AwaitTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestOnComplete(t *testing.T) {
	f := New[int]()

	var got atomic.Int64
	var wg sync.WaitGroup
	wg.Add(2)
	f.OnComplete(func(v int, err error) {
		got.Add(int64(v))
		wg.Done()
	})

	require.NoError(t, f.Resolve(5))

	// 已解析后注册的回调立即执行
	f.OnComplete(func(v int, err error) {
		got.Add(int64(v))
		wg.Done()
	})

	wg.Wait()
	assert.Equal(t, int64(10), got.Load())
}

func TestConcurrentResolve(t *testing.T) {
	f := New[int]()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if f.Resolve(v) == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	first, _, ok := f.Result()
	require.True(t, ok)
	again, _, _ := f.Result()
	assert.Equal(t, first, again)
}

func TestResolvedHelper(t *testing.T) {
	f := Resolved("ok")
	select {
	case <-f.Done():
	default:
		t.Fatal("expected resolved future")
	}
	v, err := f.AwaitTimeout(0)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
