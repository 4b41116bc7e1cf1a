package buffer

import "sync"

// Synchronized 与 Buffer 语义相同的互斥锁实现
//
// Thread Safety: 所有方法都使用互斥锁保护。
type Synchronized struct {
	mu    sync.Mutex
	count int
}

// NewSynchronized 创建初始值为 initial 的 Synchronized
func NewSynchronized(initial int) *Synchronized {
	if initial < 0 {
		initial = 0
	}
	return &Synchronized{count: initial}
}

// Add 计数加一
func (s *Synchronized) Add() {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
}

// Remove 计数减一，为 0 时不变
func (s *Synchronized) Remove() {
	s.mu.Lock()
	if s.count > 0 {
		s.count--
	}
	s.mu.Unlock()
}

// Get 当前计数
func (s *Synchronized) Get() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
