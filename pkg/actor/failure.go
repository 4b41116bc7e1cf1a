package actor

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Failure 一次上报的 Actor 故障
type Failure struct {
	Actor   *Ref
	Message *Message
	Err     error
	At      time.Time
}

// FailureHandler 系统级故障处理
//
// 这是监督扩展（重启、停止、上报）的唯一接入点；运行时本身只记录，不做任何恢复动作。
type FailureHandler interface {
	HandleFailure(sys *System, f *Failure)
}

// FailureHandlerFunc 函数式 FailureHandler
type FailureHandlerFunc func(sys *System, f *Failure)

// HandleFailure 实现 FailureHandler
func (fn FailureHandlerFunc) HandleFailure(sys *System, f *Failure) {
	fn(sys, f)
}

// LogFailures 默认策略：记录错误日志
// logger 为 nil 时使用系统日志器
func LogFailures(logger *slog.Logger) FailureHandler {
	return FailureHandlerFunc(func(sys *System, f *Failure) {
		l := logger
		if l == nil {
			l = sys.logger
		}

		attrs := []any{
			"actor", f.Actor.Name(),
			"error", f.Err,
		}
		if f.Message != nil {
			attrs = append(attrs, "kind", f.Message.Kind(), "message_id", f.Message.ID())
		}
		var fault *BehaviorFault
		if errors.As(f.Err, &fault) && fault.Stack != nil {
			attrs = append(attrs, "stack", string(fault.Stack))
		}
		l.Error("actor failure", attrs...)
	})
}

// ChainFailures 依次调用多个 FailureHandler
func ChainFailures(handlers ...FailureHandler) FailureHandler {
	return FailureHandlerFunc(func(sys *System, f *Failure) {
		for _, h := range handlers {
			if h != nil {
				h.HandleFailure(sys, f)
			}
		}
	})
}

// FailureRecorder 记录所有故障，便于测试和诊断
type FailureRecorder struct {
	mu       sync.Mutex
	failures []*Failure
}

// NewFailureRecorder 创建 FailureRecorder
func NewFailureRecorder() *FailureRecorder {
	return &FailureRecorder{}
}

// HandleFailure 实现 FailureHandler
func (r *FailureRecorder) HandleFailure(_ *System, f *Failure) {
	r.mu.Lock()
	r.failures = append(r.failures, f)
	r.mu.Unlock()
}

// Failures 已记录的故障副本
func (r *FailureRecorder) Failures() []*Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Len 已记录的故障数
func (r *FailureRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures)
}
