package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type systemState int32

const (
	stateRunning systemState = iota
	stateDraining
	stateStopped
)

// System Actor 系统
// 名称注册表、调度器的所有者，以及故障上报的入口
//
// System 不是全局单例：在应用启动时创建，显式传给需要注册或查找 Actor 的组件，
// 退出前调用 Shutdown。
type System struct {
	// 基本信息
	name string

	// Actor 注册表
	actors   map[string]*cell
	actorsMu sync.RWMutex

	dispatcher Dispatcher
	pending    *pendingTracker

	// 生命周期
	state    atomic.Int32
	stopOnce sync.Once
	stopErr  error

	// 配置
	config *SystemConfig

	// 统计信息
	stats *systemCounters

	failureHandler FailureHandler

	// 日志
	logger *slog.Logger
}

// NewSystem 创建新的 Actor 系统
func NewSystem(name string) *System {
	cfg := DefaultSystemConfig()
	cfg.Name = name
	sys, err := NewSystemWithConfig(cfg)
	if err != nil {
		// 默认配置总是合法的
		panic(err)
	}
	return sys
}

// NewSystemWithConfig 使用配置创建 Actor 系统
func NewSystemWithConfig(config *SystemConfig) (*System, error) {
	if config == nil {
		config = DefaultSystemConfig()
	}
	cfg := *config
	if cfg.DuplicatePolicy == "" {
		cfg.DuplicatePolicy = DuplicateReject
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid actor system config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("system", cfg.Name)

	dispatcher := cfg.Dispatcher
	if dispatcher == nil {
		workers := cfg.Workers
		if workers <= 0 {
			workers = DefaultSystemConfig().Workers
		}
		dispatcher = NewPoolDispatcher(workers, logger)
	}

	handler := cfg.FailureHandler
	if handler == nil {
		handler = LogFailures(nil)
	}

	s := &System{
		name:           cfg.Name,
		actors:         make(map[string]*cell),
		dispatcher:     dispatcher,
		pending:        newPendingTracker(),
		config:         &cfg,
		failureHandler: handler,
		logger:         logger,
		stats: &systemCounters{
			startTime: time.Now(),
		},
	}

	s.logger.Info("actor system started", "workers", dispatcher.Workers())
	return s, nil
}

// Name 返回系统名称
func (s *System) Name() string {
	return s.name
}

// Logger 系统日志器
func (s *System) Logger() *slog.Logger {
	return s.logger
}

// Config 返回配置副本
func (s *System) Config() SystemConfig {
	return *s.config
}

// ═══════════════════════════════════════════════════════════════════════════
// 注册与查找
// ═══════════════════════════════════════════════════════════════════════════

// Register 注册 Actor，返回其 Ref
//
// 同名注册按 SystemConfig.DuplicatePolicy 处理。被 DuplicateReplace 覆盖的 Actor
// 不会被销毁，之前拿到的 Ref 仍然可以投递。
func (s *System) Register(name string, actor Actor) (*Ref, error) {
	if name == "" {
		return nil, errors.New("actor name must not be empty")
	}
	if actor == nil {
		return nil, fmt.Errorf("actor %s: nil actor", name)
	}
	if !s.IsRunning() {
		return nil, ErrSystemStopped
	}

	if ref, done, err := s.checkDuplicate(name); done {
		return ref, err
	}

	c := newCell(s, name, actor)
	if err := c.start(); err != nil {
		return nil, fmt.Errorf("start actor %s: %w", name, err)
	}

	s.actorsMu.Lock()
	defer s.actorsMu.Unlock()

	if existing, ok := s.actors[name]; ok {
		switch s.config.DuplicatePolicy {
		case DuplicateKeep:
			return existing.ref, nil
		case DuplicateReject:
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		s.logger.Warn("actor name re-registered, replacing", "name", name)
	} else {
		s.stats.actors.Add(1)
	}

	s.actors[name] = c
	s.logger.Debug("registered actor", "name", name)
	return c.ref, nil
}

// checkDuplicate 在执行 PreStart 之前处理 reject/keep 策略
func (s *System) checkDuplicate(name string) (*Ref, bool, error) {
	s.actorsMu.RLock()
	existing, ok := s.actors[name]
	s.actorsMu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	switch s.config.DuplicatePolicy {
	case DuplicateKeep:
		s.logger.Warn("actor already exists, returning existing ref", "name", name)
		return existing.ref, true, nil
	case DuplicateReject:
		return nil, true, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	return nil, false, nil
}

// Lookup 按名称查找 Actor
// 未注册时返回包装了 ErrActorNotFound 的错误
func (s *System) Lookup(name string) (*Ref, error) {
	s.actorsMu.RLock()
	defer s.actorsMu.RUnlock()

	if c, ok := s.actors[name]; ok {
		return c.ref, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrActorNotFound, name)
}

// ListActors 列出所有 Actor（按名称排序）
func (s *System) ListActors() []*Ref {
	s.actorsMu.RLock()
	refs := make([]*Ref, 0, len(s.actors))
	for _, c := range s.actors {
		refs = append(refs, c.ref)
	}
	s.actorsMu.RUnlock()

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name() < refs[j].Name() })
	return refs
}

// Count 返回 Actor 数量
func (s *System) Count() int {
	s.actorsMu.RLock()
	defer s.actorsMu.RUnlock()
	return len(s.actors)
}

// ═══════════════════════════════════════════════════════════════════════════
// 投递与故障
// ═══════════════════════════════════════════════════════════════════════════

// deliver 投递消息到 Actor 邮箱
// 系统停止后消息转为死信
func (s *System) deliver(c *cell, msg *Message) {
	if systemState(s.state.Load()) == stateStopped {
		s.deadLetter(c.name, msg, ErrSystemStopped)
		return
	}

	s.pending.add()
	s.stats.messages.Add(1)
	c.enqueue(msg)
}

// deadLetter 记录无法投递的消息，并使其回复槽失败
func (s *System) deadLetter(target string, msg *Message, reason error) {
	s.stats.deadLetters.Add(1)
	if msg.HasReply() {
		_ = msg.Fail(reason)
	}
	s.logger.Warn("dead letter",
		"target", target,
		"kind", msg.Kind(),
		"sender", msg.Sender(),
		"reason", reason)
}

// ReportFailure 上报 Actor 故障
// 由处理轮次在行为出错时调用，交给 SystemConfig.FailureHandler
func (s *System) ReportFailure(ref *Ref, msg *Message, err error) {
	s.stats.failures.Add(1)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in failure handler",
				"error", r,
				"stack", string(debug.Stack()))
		}
	}()

	s.failureHandler.HandleFailure(s, &Failure{
		Actor:   ref,
		Message: msg,
		Err:     err,
		At:      time.Now(),
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// 静默与关闭
// ═══════════════════════════════════════════════════════════════════════════

// IsQuiescent 所有已投递的消息都已处理完毕
func (s *System) IsQuiescent() bool {
	return s.pending.count() == 0
}

// AwaitQuiescence 阻塞直到系统静默或 ctx 结束
func (s *System) AwaitQuiescence(ctx context.Context) error {
	select {
	case <-s.pending.idle():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning 系统是否仍接受注册
func (s *System) IsRunning() bool {
	return systemState(s.state.Load()) == stateRunning
}

// Shutdown 使用 SystemConfig.ShutdownTimeout 关闭系统
func (s *System) Shutdown() error {
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultSystemConfig().ShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.ShutdownContext(ctx)
}

// ShutdownContext 排空并停止
//
// 1. 停止接受注册；处理中的 Actor 仍可以互相发送消息
// 2. 等待系统静默（受 ctx 限制）
// 3. 停止投递：之后的 Tell 成为死信，Ask 以 ErrSystemStopped 失败
// 4. 停止调度器，等待 worker 退出
//
// ctx 先结束时返回其错误，仍在邮箱中的消息转为死信或由 worker 在后台处理完。
// 重复调用返回第一次的结果。
func (s *System) ShutdownContext(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.state.Store(int32(stateDraining))
		s.logger.Info("actor system shutting down", "pending", s.pending.count())

		drainErr := s.AwaitQuiescence(ctx)
		if drainErr != nil {
			s.logger.Warn("actor system drain incomplete", "pending", s.pending.count(), "error", drainErr)
		}

		s.state.Store(int32(stateStopped))
		stopErr := s.dispatcher.Stop(ctx)

		s.stopErr = errors.Join(drainErr, stopErr)
		if s.stopErr == nil {
			s.logger.Info("actor system shutdown complete")
		} else {
			s.logger.Warn("actor system shutdown timeout", "error", s.stopErr)
		}
	})
	return s.stopErr
}

// Stats 获取统计信息
func (s *System) Stats() *SystemStats {
	return &SystemStats{
		Name:          s.name,
		TotalActors:   s.stats.actors.Load(),
		TotalMessages: s.stats.messages.Load(),
		ProcessedMsgs: s.stats.processed.Load(),
		Failures:      s.stats.failures.Load(),
		DeadLetters:   s.stats.deadLetters.Load(),
		Pending:       s.pending.count(),
		Workers:       s.dispatcher.Workers(),
		StartTime:     s.stats.startTime,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// pendingTracker 在途消息计数
// ═══════════════════════════════════════════════════════════════════════════

// pendingTracker 计数归零时关闭 idle 通道，避免调用方轮询
type pendingTracker struct {
	mu      sync.Mutex
	pending int64
	idleCh  chan struct{}
}

func newPendingTracker() *pendingTracker {
	ch := make(chan struct{})
	close(ch)
	return &pendingTracker{idleCh: ch}
}

func (t *pendingTracker) add() {
	t.mu.Lock()
	if t.pending == 0 {
		t.idleCh = make(chan struct{})
	}
	t.pending++
	t.mu.Unlock()
}

func (t *pendingTracker) done() {
	t.mu.Lock()
	t.pending--
	if t.pending == 0 {
		close(t.idleCh)
	}
	t.mu.Unlock()
}

func (t *pendingTracker) count() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

func (t *pendingTracker) idle() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idleCh
}
