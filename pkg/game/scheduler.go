package game

import (
	"container/heap"
	"time"
)

// TimerHandle 标识一个待执行的延迟回调
// 0 保留为无效句柄
type TimerHandle uint64

// Scheduler 单线程的延迟回调注册表
//
// 时间由调用方通过 Advance 手动推进（游戏循环每帧推进 dt），
// 因此所有回调都在推进时钟的同一个 goroutine 上执行。
// 到期回调按截止时间升序执行，截止时间相同则按注册顺序执行。
//
// 一局游戏持有一个 Scheduler；重开时 CancelAll 一次性作废上一局的全部回调。
type Scheduler struct {
	now     time.Duration
	nextID  TimerHandle
	queue   timerQueue
	pending map[TimerHandle]*timer
}

type timer struct {
	handle   TimerHandle
	deadline time.Duration
	fn       func()
	index    int
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		nextID:  1,
		pending: make(map[TimerHandle]*timer),
	}
}

// Now 返回调度器当前时刻
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 注册一个 d 之后执行的回调，返回可用于取消的句柄
// d <= 0 的回调在下一次 Advance（包括 Advance(0)）时执行
func (s *Scheduler) After(d time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	t := &timer{
		handle:   s.nextID,
		deadline: s.now + d,
		fn:       fn,
	}
	s.nextID++
	heap.Push(&s.queue, t)
	s.pending[t.handle] = t
	return t.handle
}

// Cancel 取消一个尚未执行的回调
// 返回 false 表示句柄无效、已执行或已取消
func (s *Scheduler) Cancel(h TimerHandle) bool {
	t, ok := s.pending[h]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.pending, h)
	return true
}

// CancelAll 取消全部待执行回调
func (s *Scheduler) CancelAll() {
	s.queue = s.queue[:0]
	s.pending = make(map[TimerHandle]*timer)
}

// Pending 返回待执行回调数量
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// IsPending 判断句柄对应的回调是否仍在等待执行
func (s *Scheduler) IsPending(h TimerHandle) bool {
	_, ok := s.pending[h]
	return ok
}

// Advance 将时钟推进 d，并依次执行所有截止时间 <= 新时刻的回调
//
// 执行每个回调前时钟先设为该回调的截止时间，回调内读取 Now() 得到的是精确的到期时刻。
// 回调内新注册且在本次推进范围内到期的回调也会在本次执行。
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := s.now + d

	for len(s.queue) > 0 && s.queue[0].deadline <= target {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.pending, t.handle)
		if t.deadline > s.now {
			s.now = t.deadline
		}
		t.fn()
	}

	s.now = target
}

// timerQueue 实现 heap.Interface
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].handle < q[j].handle
	}
	return q[i].deadline < q[j].deadline
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x interface{}) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
