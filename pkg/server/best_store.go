package server

import (
	"sync"

	"github.com/decker502/clicktarget/pkg/game"
)

// sharedBestScore 让所有连接共用一个最高分存储
// 每个连接的 Session 运行在各自的 goroutine 上，因此需要加锁
type sharedBestScore struct {
	mu    sync.Mutex
	inner game.BestScoreStore
}

func newSharedBestScore(inner game.BestScoreStore) *sharedBestScore {
	if inner == nil {
		inner = &game.MemoryBestScore{}
	}
	return &sharedBestScore{inner: inner}
}

func (s *sharedBestScore) GetBestScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetBestScore()
}

// SetBestScore 只允许提高，避免并发的两局互相覆盖
func (s *sharedBestScore) SetBestScore(n int) {
	s.RecordScore(n)
}

// RecordScore 在同一把锁内比较并更新
// 同时结束的两局中只有一局会得到 isNew == true
func (s *sharedBestScore) RecordScore(score int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := s.inner.GetBestScore()
	if score <= best {
		return best, false
	}
	s.inner.SetBestScore(score)
	return score, true
}
