package actor

import (
	"log/slog"
)

// Actor Actor 接口
// 实现此接口即可成为 Actor
type Actor interface {
	// Receive 处理一条消息
	// 返回的错误会被视为 BehaviorFault，不会中断邮箱的处理
	Receive(ctx *Context, msg *Message) error
}

// ActorFunc 函数式 Actor，便于快速创建简单 Actor
type ActorFunc func(ctx *Context, msg *Message) error

// Receive 实现 Actor 接口
func (f ActorFunc) Receive(ctx *Context, msg *Message) error {
	return f(ctx, msg)
}

// BaseActor 基础 Actor 实现
// 提供默认的空实现，方便嵌入
type BaseActor struct{}

// Receive 默认实现，不处理任何消息
func (b *BaseActor) Receive(_ *Context, _ *Message) error { return nil }

// ErrorHandler Actor 本地错误钩子
// 未实现时默认记录日志并继续处理
type ErrorHandler interface {
	OnError(ctx *Context, msg *Message, err error)
}

// Starter 注册时回调
// PreStart 在第一条消息之前执行一次，返回错误则注册失败
type Starter interface {
	PreStart(ctx *Context) error
}

// Kinded 可选的消息类型标识，用于日志和统计
type Kinded interface {
	Kind() string
}

// Context Actor 执行上下文
// 只在一次 Receive 调用期间有效，不要在 Actor 外保存
type Context struct {
	// Self 当前 Actor
	Self *Ref
	// Sender 消息发送者（可能为 nil）
	Sender *Ref

	system  *System
	message *Message
}

// Message 当前正在处理的消息
func (c *Context) Message() *Message {
	return c.message
}

// System 获取 Actor 系统引用
func (c *Context) System() *System {
	return c.system
}

// Logger 带 actor 字段的日志器
func (c *Context) Logger() *slog.Logger {
	return c.system.logger.With("actor", c.Self.Name())
}

// Reply 回复当前消息
// Ask 消息解析其回复槽；否则若有 Sender，以 Tell 回送；都没有时返回 ErrNoReplySlot
func (c *Context) Reply(v any) error {
	if c.message == nil {
		return ErrNoReplySlot
	}
	if c.message.HasReply() {
		return c.message.Reply(v)
	}
	if c.Sender != nil {
		c.Sender.Tell(v, c.Self)
		return nil
	}
	return ErrNoReplySlot
}

// Tell 以当前 Actor 为发送者发送消息
func (c *Context) Tell(target *Ref, payload any) {
	target.Tell(payload, c.Self)
}

// Forward 原样转发当前消息（保留发送者和回复槽）
func (c *Context) Forward(target *Ref) {
	if c.message != nil {
		target.Send(c.message)
	}
}
