package actor

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrActorNotFound 名称未注册
	ErrActorNotFound = errors.New("actor not found")
	// ErrDuplicateName 名称已注册（DuplicateReject 策略）
	ErrDuplicateName = errors.New("actor name already registered")
	// ErrSystemStopped 系统已停止
	ErrSystemStopped = errors.New("actor system stopped")
	// ErrNoReplySlot 消息没有回复槽
	ErrNoReplySlot = errors.New("message has no reply slot")
	// ErrAskTimeout Ask 超时，可用 errors.Is 判断
	ErrAskTimeout = errors.New("ask timed out")
	// ErrDispatcherStopped 调度器已停止，不再接受任务
	ErrDispatcherStopped = errors.New("dispatcher stopped")
)

// AskTimeout Ask 超时错误
type AskTimeout struct {
	Target  *Ref
	Timeout time.Duration
}

// Error 实现 error 接口
func (e *AskTimeout) Error() string {
	return fmt.Sprintf("ask to %s timed out after %v", e.Target, e.Timeout)
}

// Is 使 errors.Is(err, ErrAskTimeout) 成立
func (e *AskTimeout) Is(target error) bool {
	return target == ErrAskTimeout
}

// BehaviorFault Receive 返回错误或 panic
type BehaviorFault struct {
	Actor string
	Kind  string
	// Err Receive 返回的错误；panic 时为 nil
	Err error
	// Panic panic 的值
	Panic any
	// Stack panic 时的调用栈
	Stack []byte
}

// Error 实现 error 接口
func (f *BehaviorFault) Error() string {
	if f.Panic != nil {
		return fmt.Sprintf("actor %s panicked on %s: %v", f.Actor, f.Kind, f.Panic)
	}
	return fmt.Sprintf("actor %s failed on %s: %v", f.Actor, f.Kind, f.Err)
}

// Unwrap 返回原始错误
func (f *BehaviorFault) Unwrap() error {
	if f.Err != nil {
		return f.Err
	}
	if err, ok := f.Panic.(error); ok {
		return err
	}
	return nil
}

// UnknownMessage Actor 不认识的消息类型
type UnknownMessage struct {
	Actor   string
	Payload any
}

// Error 实现 error 接口
func (e *UnknownMessage) Error() string {
	return fmt.Sprintf("actor %s: unknown message kind %s", e.Actor, KindOf(e.Payload))
}

// UnexpectedReply 回复类型与期望不符
type UnexpectedReply struct {
	Target string
	Want   string
	Got    any
}

// Error 实现 error 接口
func (e *UnexpectedReply) Error() string {
	return fmt.Sprintf("reply from %s: want %s, got %T", e.Target, e.Want, e.Got)
}
