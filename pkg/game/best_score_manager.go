package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// BestScoreRecord 持久化的最高分记录
type BestScoreRecord struct {
	Score      int       `yaml:"score"`
	AchievedAt time.Time `yaml:"achievedAt"`
}

// BestScoreManager 最高分管理器
// 负责最高分的加载、保存和内存缓存
type BestScoreManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	record       BestScoreRecord
}

// 存储路径常量
const (
	bestScoreObject   = "scores"
	bestScoreProperty = "best"
)

// NewBestScoreManager 创建最高分管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//
// 读取失败不是致命错误：最高分按 0 处理。
func NewBestScoreManager(gdataManager *gdata.Manager) *BestScoreManager {
	bm := &BestScoreManager{gdataManager: gdataManager}
	if err := bm.Load(); err != nil {
		log.Printf("[BestScoreManager] Warning: Failed to load best score: %v (using 0)", err)
	}
	return bm
}

// Load 从 gdata 加载最高分
// 任何失败都会把内存中的最高分置为 0
func (bm *BestScoreManager) Load() error {
	bm.record = BestScoreRecord{}

	var loaded BestScoreRecord
	found, err := loadYAMLProp(bm.gdataManager, bestScoreObject, bestScoreProperty, &loaded)
	if err != nil || !found {
		return err
	}
	if loaded.Score < 0 {
		return fmt.Errorf("invalid best score %d", loaded.Score)
	}

	bm.record = loaded
	log.Printf("[BestScoreManager] Loaded best score %d", loaded.Score)
	return nil
}

// GetBestScore 返回当前最高分
func (bm *BestScoreManager) GetBestScore() int {
	return bm.record.Score
}

// SetBestScore 更新最高分并立即持久化
// 持久化失败只记录日志，内存值仍然更新
func (bm *BestScoreManager) SetBestScore(n int) {
	bm.record = BestScoreRecord{Score: n, AchievedAt: time.Now()}
	if err := bm.save(); err != nil {
		log.Printf("[BestScoreManager] Warning: %v", err)
	}
}

func (bm *BestScoreManager) save() error {
	if err := saveYAMLProp(bm.gdataManager, bestScoreObject, bestScoreProperty, &bm.record); err != nil {
		return err
	}
	if bm.gdataManager != nil {
		log.Printf("[BestScoreManager] Best score %d saved", bm.record.Score)
	}
	return nil
}
