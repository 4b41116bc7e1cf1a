// Package future 提供一次性写入的结果槽（reply slot）
//
// Future 只能被解析一次：第一次 Resolve/Reject 生效，之后的调用返回
// [ErrAlreadyResolved]，不会覆盖已经被观察到的结果。
//
// 既支持阻塞等待（[Future.Await]、[Future.AwaitTimeout]），
// 也支持非阻塞的延续回调（[Future.OnComplete]）。
package future

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrAlreadyResolved 重复解析同一个 Future
	ErrAlreadyResolved = errors.New("future already resolved")
	// ErrAwaitTimeout 等待超时（Future 本身仍未解析）
	ErrAwaitTimeout = errors.New("await timed out")
)

// Future 一次性写入的结果槽
//
// Thread Safety: 所有方法都是并发安全的。
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	value     T
	err       error
	callbacks []func(T, error)
}

// New 创建未解析的 Future
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved 创建已经以 v 解析的 Future
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	_ = f.Resolve(v)
	return f
}

// Failed 创建已经以 err 失败的 Future
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	_ = f.Reject(err)
	return f
}

// Resolve 以值完成 Future
func (f *Future[T]) Resolve(v T) error {
	return f.complete(v, nil)
}

// Reject 以错误完成 Future
func (f *Future[T]) Reject(err error) error {
	var zero T
	return f.complete(zero, err)
}

func (f *Future[T]) complete(v T, err error) error {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return ErrAlreadyResolved
	}
	f.resolved = true
	f.value = v
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(v, err)
	}
	return nil
}

// IsResolved 是否已解析（不阻塞）
func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Done 解析后关闭的通道
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result 返回当前结果；ok 为 false 表示尚未解析
func (f *Future[T]) Result() (value T, err error, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err, f.resolved
}

// Await 阻塞直到解析或 ctx 结束
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitTimeout 阻塞至多 d
// d <= 0 表示永不超时
func (f *Future[T]) AwaitTimeout(d time.Duration) (T, error) {
	if d <= 0 {
		<-f.done
		return f.value, f.err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero T
		return zero, ErrAwaitTimeout
	}
}

// OnComplete 注册解析后的回调
//
// 若已解析，回调在当前 goroutine 立即执行；否则在解析者的 goroutine 上执行。
// 回调不应阻塞。
func (f *Future[T]) OnComplete(fn func(T, error)) {
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.value, f.err
	f.mu.Unlock()

	fn(v, err)
}
