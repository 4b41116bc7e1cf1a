package actor

import (
	"sync"
	"sync/atomic"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// Actor 统计信息
// ═══════════════════════════════════════════════════════════════════════════

// ActorStats Actor 运行时统计信息
type ActorStats struct {
	// 消息计数
	MessagesReceived int64 // 入队的消息总数
	MessagesHandled  int64 // 成功处理的消息数
	Errors           int64 // 错误数

	// 延迟统计
	TotalLatency   time.Duration // 总处理耗时
	AverageLatency time.Duration // 平均处理耗时
	MaxLatency     time.Duration // 最大处理耗时

	// 时间戳
	StartedAt     time.Time // 注册时间
	LastMessageAt time.Time // 最后入队时间
	LastErrorAt   time.Time // 最后错误时间

	// 错误信息
	LastError error // 最后一个错误
}

// ═══════════════════════════════════════════════════════════════════════════
// StatsCollector 统计收集器
// ═══════════════════════════════════════════════════════════════════════════

// StatsCollector 使用原子操作的统计收集器
// 计数走原子操作，时间戳与最后错误用锁保护
type StatsCollector struct {
	messagesReceived atomic.Int64
	messagesHandled  atomic.Int64
	errors           atomic.Int64
	totalLatencyNs   atomic.Int64
	maxLatencyNs     atomic.Int64

	mu            sync.RWMutex
	startedAt     time.Time
	lastMessageAt time.Time
	lastErrorAt   time.Time
	lastError     error
}

// NewStatsCollector 创建统计收集器
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		startedAt: time.Now(),
	}
}

// RecordReceived 记录入队
func (c *StatsCollector) RecordReceived() {
	c.messagesReceived.Add(1)
	c.mu.Lock()
	c.lastMessageAt = time.Now()
	c.mu.Unlock()
}

// RecordHandled 记录处理完成
func (c *StatsCollector) RecordHandled(latency time.Duration) {
	c.messagesHandled.Add(1)
	c.totalLatencyNs.Add(int64(latency))

	for {
		cur := c.maxLatencyNs.Load()
		if int64(latency) <= cur || c.maxLatencyNs.CompareAndSwap(cur, int64(latency)) {
			return
		}
	}
}

// RecordError 记录错误
func (c *StatsCollector) RecordError(err error) {
	c.errors.Add(1)
	c.mu.Lock()
	c.lastError = err
	c.lastErrorAt = time.Now()
	c.mu.Unlock()
}

// Stats 获取统计快照
func (c *StatsCollector) Stats() *ActorStats {
	received := c.messagesReceived.Load()
	handled := c.messagesHandled.Load()
	totalLatency := time.Duration(c.totalLatencyNs.Load())

	var avgLatency time.Duration
	if handled > 0 {
		avgLatency = totalLatency / time.Duration(handled)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return &ActorStats{
		MessagesReceived: received,
		MessagesHandled:  handled,
		Errors:           c.errors.Load(),
		TotalLatency:     totalLatency,
		AverageLatency:   avgLatency,
		MaxLatency:       time.Duration(c.maxLatencyNs.Load()),
		StartedAt:        c.startedAt,
		LastMessageAt:    c.lastMessageAt,
		LastErrorAt:      c.lastErrorAt,
		LastError:        c.lastError,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 系统统计
// ═══════════════════════════════════════════════════════════════════════════

// SystemStats 系统统计快照
type SystemStats struct {
	Name          string
	TotalActors   int64
	TotalMessages int64 // 成功入队的消息数
	ProcessedMsgs int64 // 成功处理的消息数
	Failures      int64 // 上报的 BehaviorFault 数
	DeadLetters   int64 // 无法投递的消息数
	Pending       int64 // 在途消息数
	Workers       int
	StartTime     time.Time
}

// systemCounters 系统内部计数器
type systemCounters struct {
	actors      atomic.Int64
	messages    atomic.Int64
	processed   atomic.Int64
	failures    atomic.Int64
	deadLetters atomic.Int64
	startTime   time.Time
}
