package actor

import (
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// cell Actor 单元，绑定邮箱与行为，保证行为串行执行
type cell struct {
	name    string
	actor   Actor
	mailbox *Mailbox
	ref     *Ref
	system  *System
	stats   *StatsCollector
	logger  *slog.Logger

	// scheduled 为 true 表示已提交调度或正在处理，同一时刻至多一个处理轮次
	scheduled atomic.Bool
}

func newCell(s *System, name string, a Actor) *cell {
	c := &cell{
		name:    name,
		actor:   a,
		mailbox: NewMailbox(),
		system:  s,
		stats:   NewStatsCollector(),
		logger:  s.logger.With("actor", name),
	}
	c.ref = &Ref{cell: c}
	return c
}

// start 执行 PreStart 钩子
func (c *cell) start() (err error) {
	starter, ok := c.actor.(Starter)
	if !ok {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &BehaviorFault{Actor: c.name, Kind: "prestart", Panic: r, Stack: debug.Stack()}
		}
	}()

	return starter.PreStart(&Context{Self: c.ref, system: c.system})
}

// enqueue 入队，必要时请求调度
func (c *cell) enqueue(msg *Message) {
	c.stats.RecordReceived()
	if c.mailbox.Enqueue(msg) {
		c.schedule()
	}
}

// schedule 占用 scheduled 标记并提交处理轮次
// 调度器已停止时，邮箱中的消息转为死信
func (c *cell) schedule() {
	for c.scheduled.CompareAndSwap(false, true) {
		if err := c.system.dispatcher.Dispatch(c.run); err == nil {
			return
		}

		c.discard()
		c.scheduled.Store(false)
		if c.mailbox.IsEmpty() {
			return
		}
	}
}

// run 一个处理轮次：排空邮箱后释放标记
func (c *cell) run() {
	throughput := c.system.config.Throughput

	for {
		for n := 0; ; n++ {
			if throughput > 0 && n >= throughput {
				// 让出 worker，保持 scheduled 标记由新的轮次继承
				if c.system.dispatcher.Dispatch(c.run) == nil {
					return
				}
				throughput = 0
			}

			msg, ok := c.mailbox.Dequeue()
			if !ok {
				break
			}
			c.invoke(msg)
		}

		c.scheduled.Store(false)

		// 清除标记与新消息入队之间存在竞争，需要再次检查
		if c.mailbox.IsEmpty() || !c.scheduled.CompareAndSwap(false, true) {
			return
		}
	}
}

// invoke 处理单条消息
func (c *cell) invoke(msg *Message) {
	defer c.system.pending.done()

	start := time.Now()
	ctx := &Context{
		Self:    c.ref,
		Sender:  msg.Sender(),
		system:  c.system,
		message: msg,
	}

	if err := c.receive(ctx, msg); err != nil {
		c.stats.RecordError(err)
		c.fail(ctx, msg, err)
		return
	}

	c.stats.RecordHandled(time.Since(start))
	c.system.stats.processed.Add(1)
}

// receive 调用行为，panic 恢复为 BehaviorFault
func (c *cell) receive(ctx *Context, msg *Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BehaviorFault{
				Actor: c.name,
				Kind:  msg.Kind(),
				Panic: r,
				Stack: debug.Stack(),
			}
		}
	}()

	if err := c.actor.Receive(ctx, msg); err != nil {
		return &BehaviorFault{Actor: c.name, Kind: msg.Kind(), Err: err}
	}
	return nil
}

// fail 本地钩子 -> 回复槽 -> 系统上报
func (c *cell) fail(ctx *Context, msg *Message, fault error) {
	c.onError(ctx, msg, fault)

	if msg.HasReply() {
		_ = msg.Fail(fault)
	}

	c.system.ReportFailure(c.ref, msg, fault)
}

func (c *cell) onError(ctx *Context, msg *Message, fault error) {
	handler, ok := c.actor.(ErrorHandler)
	if !ok {
		c.logger.Warn("actor error, continuing", "kind", msg.Kind(), "error", fault)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic in actor error handler", "error", r)
		}
	}()
	handler.OnError(ctx, msg, fault)
}

// discard 调度器不可用时把邮箱中的消息全部转为死信
func (c *cell) discard() {
	for {
		msg, ok := c.mailbox.Dequeue()
		if !ok {
			return
		}
		c.system.deadLetter(c.name, msg, ErrSystemStopped)
		c.system.pending.done()
	}
}

// idle 没有待处理消息且没有运行中的轮次
func (c *cell) idle() bool {
	return !c.scheduled.Load() && c.mailbox.IsEmpty()
}
