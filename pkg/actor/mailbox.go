package actor

import "sync"

// compactThreshold 已出队的槽位超过该值且超过一半时压缩底层数组
const compactThreshold = 256

// Mailbox 无界 FIFO 邮箱
//
// Enqueue 可被任意 goroutine 并发调用；Dequeue 只由正在运行的处理轮次调用，
// 同一邮箱不会被两个轮次同时 Dequeue（由 Actor 的 scheduled 标记保证）。
type Mailbox struct {
	mu    sync.Mutex
	items []*Message
	head  int
}

// NewMailbox 创建空邮箱
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Enqueue 追加到队尾，永不阻塞
// 返回邮箱是否由空变为非空
func (m *Mailbox) Enqueue(msg *Message) bool {
	m.mu.Lock()
	wasEmpty := m.head == len(m.items)
	m.items = append(m.items, msg)
	m.mu.Unlock()
	return wasEmpty
}

// Dequeue 取出队首；邮箱为空时 ok 为 false
func (m *Mailbox) Dequeue() (msg *Message, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.head == len(m.items) {
		return nil, false
	}

	msg = m.items[m.head]
	m.items[m.head] = nil
	m.head++

	switch {
	case m.head == len(m.items):
		m.items = m.items[:0]
		m.head = 0
	case m.head >= compactThreshold && m.head*2 >= len(m.items):
		n := copy(m.items, m.items[m.head:])
		clear(m.items[n:])
		m.items = m.items[:n]
		m.head = 0
	}
	return msg, true
}

// Len 当前消息数
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) - m.head
}

// IsEmpty 邮箱是否为空
func (m *Mailbox) IsEmpty() bool {
	return m.Len() == 0
}
