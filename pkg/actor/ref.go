package actor

import (
	"context"
	"time"

	"github.com/lwmacct/251219-go-pkg-actor/pkg/future"
)

// Ref Actor 句柄
//
// 外部代码只能通过 Ref 寻址 Actor，看不到其内部状态。
// Ref 可以自由复制和共享，生命周期不短于其指向的 Actor。
type Ref struct {
	cell *cell
}

// Name 返回注册名称
func (r *Ref) Name() string {
	return r.cell.name
}

// String 返回 Ref 的字符串表示
func (r *Ref) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.cell.name
}

// Tell 发送消息（fire-and-forget）
// sender 可以为 nil
func (r *Ref) Tell(payload any, sender *Ref) {
	r.cell.system.deliver(r.cell, NewMessage(payload, sender))
}

// Send 投递已构造好的消息
func (r *Ref) Send(msg *Message) {
	r.cell.system.deliver(r.cell, msg)
}

// Ask 发送带回复槽的消息，返回可等待的 Future
//
// timeout <= 0 时使用 SystemConfig.AskTimeout；两者都不大于 0 时永不超时。
// 超时后 Future 以 *AskTimeout 失败，但消息不会被撤回，
// 行为稍后的回复返回 future.ErrAlreadyResolved，不影响调用方已看到的结果。
func (r *Ref) Ask(payload any, sender *Ref, timeout time.Duration) *future.Future[any] {
	msg := NewRequest(payload, sender)
	slot := msg.ReplySlot()

	if timeout <= 0 {
		timeout = r.cell.system.config.AskTimeout
	}
	if timeout > 0 {
		timer := time.AfterFunc(timeout, func() {
			_ = slot.Reject(&AskTimeout{Target: r, Timeout: timeout})
		})
		slot.OnComplete(func(any, error) { timer.Stop() })
	}

	r.cell.system.deliver(r.cell, msg)
	return slot
}

// Request 发送请求并等待响应（同步调用）
func (r *Ref) Request(payload any, timeout time.Duration) (any, error) {
	return r.Ask(payload, nil, timeout).Await(context.Background())
}

// IsIdle 邮箱为空且没有运行中的处理轮次
func (r *Ref) IsIdle() bool {
	return r.cell.idle()
}

// Pending 邮箱中等待处理的消息数
func (r *Ref) Pending() int {
	return r.cell.mailbox.Len()
}

// Stats 获取该 Actor 的统计快照
func (r *Ref) Stats() *ActorStats {
	return r.cell.stats.Stats()
}
