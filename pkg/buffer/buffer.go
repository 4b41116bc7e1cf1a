package buffer

import (
	"time"

	"github.com/lwmacct/251219-go-pkg-actor/pkg/actor"
)

// ═══════════════════════════════════════════════════════════════════════════
// 消息
// ═══════════════════════════════════════════════════════════════════════════

// Add 计数加一
type Add struct{}

// Kind 实现 actor.Kinded 接口
func (Add) Kind() string { return "buffer.add" }

// Remove 计数减一，为 0 时不变
type Remove struct{}

// Kind 实现 actor.Kinded 接口
func (Remove) Kind() string { return "buffer.remove" }

// Get 读取当前计数，需通过 Ask 发送
type Get struct{}

// Kind 实现 actor.Kinded 接口
func (Get) Kind() string { return "buffer.get" }

// ═══════════════════════════════════════════════════════════════════════════
// Actor
// ═══════════════════════════════════════════════════════════════════════════

// Buffer 计数器 Actor
//
// Thread Safety: 状态只在 Receive 中访问，由运行时保证串行。
type Buffer struct {
	count    int
	produced int
	consumed int
	empty    int
}

// New 创建初始值为 initial 的 Buffer
func New(initial int) *Buffer {
	if initial < 0 {
		initial = 0
	}
	return &Buffer{count: initial}
}

// Receive 实现 actor.Actor 接口
func (b *Buffer) Receive(ctx *actor.Context, msg *actor.Message) error {
	switch msg.Payload().(type) {
	case Add:
		b.count++
		b.produced++
		return nil

	case Remove:
		if b.count == 0 {
			b.empty++
			return nil
		}
		b.count--
		b.consumed++
		return nil

	case Get:
		return ctx.Reply(b.count)

	case Snapshot:
		return ctx.Reply(Snapshot{
			Count:      b.count,
			Produced:   b.produced,
			Consumed:   b.consumed,
			EmptyReads: b.empty,
		})

	default:
		return &actor.UnknownMessage{Actor: ctx.Self.Name(), Payload: msg.Payload()}
	}
}

// Snapshot 计数器的完整状态；作为 payload 发送时返回当前快照
type Snapshot struct {
	Count      int
	Produced   int
	Consumed   int
	EmptyReads int // 计数为 0 时收到的 Remove 数
}

// Kind 实现 actor.Kinded 接口
func (Snapshot) Kind() string { return "buffer.snapshot" }

// ═══════════════════════════════════════════════════════════════════════════
// 便捷函数
// ═══════════════════════════════════════════════════════════════════════════

// DoAdd 发送 Add
func DoAdd(ref *actor.Ref) {
	ref.Tell(Add{}, nil)
}

// DoRemove 发送 Remove
func DoRemove(ref *actor.Ref) {
	ref.Tell(Remove{}, nil)
}

// DoGet 读取当前计数
func DoGet(ref *actor.Ref, timeout time.Duration) (int, error) {
	return actor.AskAs[int](ref, Get{}, timeout)
}

// DoSnapshot 读取完整状态
func DoSnapshot(ref *actor.Ref, timeout time.Duration) (Snapshot, error) {
	return actor.AskAs[Snapshot](ref, Snapshot{}, timeout)
}
