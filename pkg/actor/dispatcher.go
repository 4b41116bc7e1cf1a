package actor

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Dispatcher 调度器
//
// 把处理轮次提交到 worker 上执行。Dispatch 必须可以被任意 goroutine 并发调用，
// 包括 worker 自身（Actor 在处理轮次中向另一个 Actor 发送消息）。
// 调度器不做去重，同一 Actor 不会并发运行由 Actor 的 scheduled 标记保证。
type Dispatcher interface {
	// Dispatch 提交任务；调度器停止后返回 ErrDispatcherStopped
	Dispatch(task func()) error
	// Stop 停止接收新任务，等待已排队任务执行完毕（受 ctx 限制）
	Stop(ctx context.Context) error
	// Workers worker 数量
	Workers() int
}

// ═══════════════════════════════════════════════════════════════════════════
// PoolDispatcher 固定大小的 worker 池
// ═══════════════════════════════════════════════════════════════════════════

// PoolDispatcher 固定 worker 数量 + 无界任务队列
//
// 任务队列没有上限，过载时会持续增长，不提供背压。
type PoolDispatcher struct {
	workers int
	logger  *slog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	head   int
	closed bool

	group    errgroup.Group
	done     chan struct{}
	executed atomic.Int64
}

// NewPoolDispatcher 创建并启动 worker 池
func NewPoolDispatcher(workers int, logger *slog.Logger) *PoolDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &PoolDispatcher{
		workers: workers,
		logger:  logger,
		done:    make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)

	for i := 0; i < workers; i++ {
		d.group.Go(func() error {
			d.work()
			return nil
		})
	}

	go func() {
		_ = d.group.Wait()
		close(d.done)
	}()

	return d
}

// Dispatch 实现 Dispatcher
func (d *PoolDispatcher) Dispatch(task func()) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherStopped
	}
	d.tasks = append(d.tasks, task)
	d.mu.Unlock()

	d.cond.Signal()
	return nil
}

// Stop 实现 Dispatcher
func (d *PoolDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.cond.Broadcast()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Workers 实现 Dispatcher
func (d *PoolDispatcher) Workers() int {
	return d.workers
}

// QueueLen 排队中的任务数
func (d *PoolDispatcher) QueueLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks) - d.head
}

// Executed 已执行的任务数
func (d *PoolDispatcher) Executed() int64 {
	return d.executed.Load()
}

// work worker 循环：队列空且已关闭时退出
func (d *PoolDispatcher) work() {
	for {
		task, ok := d.next()
		if !ok {
			return
		}
		d.execute(task)
	}
}

func (d *PoolDispatcher) next() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for d.head == len(d.tasks) && !d.closed {
		d.cond.Wait()
	}
	if d.head == len(d.tasks) {
		return nil, false
	}

	task := d.tasks[d.head]
	d.tasks[d.head] = nil
	d.head++
	if d.head == len(d.tasks) {
		d.tasks = d.tasks[:0]
		d.head = 0
	}
	return task, true
}

func (d *PoolDispatcher) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in dispatcher task",
				"error", r,
				"stack", string(debug.Stack()))
		}
	}()

	task()
	d.executed.Add(1)
}

// ═══════════════════════════════════════════════════════════════════════════
// InlineDispatcher 同步调度器
// ═══════════════════════════════════════════════════════════════════════════

// InlineDispatcher 在调用 Dispatch 的 goroutine 上直接执行任务
//
// 用于确定性测试。行为中阻塞等待 Ask 会造成死锁。
type InlineDispatcher struct {
	closed atomic.Bool
	logger *slog.Logger
}

// NewInlineDispatcher 创建同步调度器
func NewInlineDispatcher(logger *slog.Logger) *InlineDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &InlineDispatcher{logger: logger}
}

// Dispatch 实现 Dispatcher
func (d *InlineDispatcher) Dispatch(task func()) error {
	if d.closed.Load() {
		return ErrDispatcherStopped
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in dispatcher task", "error", r)
		}
	}()
	task()
	return nil
}

// Stop 实现 Dispatcher
func (d *InlineDispatcher) Stop(_ context.Context) error {
	d.closed.Store(true)
	return nil
}

// Workers 实现 Dispatcher
func (d *InlineDispatcher) Workers() int {
	return 1
}
