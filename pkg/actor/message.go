package actor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lwmacct/251219-go-pkg-actor/pkg/future"
)

// Message 消息信封
//
// 构造后不可变，唯一的状态变化是回复槽由未解析变为已解析（只发生一次）。
type Message struct {
	id      string
	payload any
	sender  *Ref
	sentAt  time.Time
	reply   *future.Future[any]
}

// NewMessage 创建单向消息（无回复槽）
func NewMessage(payload any, sender *Ref) *Message {
	return &Message{
		id:      uuid.NewString(),
		payload: payload,
		sender:  sender,
		sentAt:  time.Now(),
	}
}

// NewRequest 创建带回复槽的消息
func NewRequest(payload any, sender *Ref) *Message {
	m := NewMessage(payload, sender)
	m.reply = future.New[any]()
	return m
}

// ID 消息唯一标识
func (m *Message) ID() string { return m.id }

// Payload 消息内容
func (m *Message) Payload() any { return m.payload }

// Sender 发送者，可能为 nil
func (m *Message) Sender() *Ref { return m.sender }

// SentAt 创建时间
func (m *Message) SentAt() time.Time { return m.sentAt }

// Kind 消息类型标识
func (m *Message) Kind() string { return KindOf(m.payload) }

// HasReply 是否带回复槽
func (m *Message) HasReply() bool { return m.reply != nil }

// ReplySlot 回复槽，单向消息返回 nil
func (m *Message) ReplySlot() *future.Future[any] { return m.reply }

// Reply 解析回复槽
// 已解析（例如 Ask 已超时）时返回 future.ErrAlreadyResolved，结果不会被覆盖
func (m *Message) Reply(v any) error {
	if m.reply == nil {
		return ErrNoReplySlot
	}
	return m.reply.Resolve(v)
}

// Fail 以错误解析回复槽
func (m *Message) Fail(err error) error {
	if m.reply == nil {
		return ErrNoReplySlot
	}
	return m.reply.Reject(err)
}

// KindOf 返回 payload 的类型标识
// 实现 Kinded 时使用 Kind()，否则使用 Go 类型名
func KindOf(payload any) string {
	switch p := payload.(type) {
	case nil:
		return "nil"
	case Kinded:
		return p.Kind()
	case string:
		return p
	default:
		return fmt.Sprintf("%T", payload)
	}
}
