// pkg/database/history.go
package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"ScoreRadar/pkg/model"
)

// HistoryDB 评分与红旗历史存储，只追加
type HistoryDB struct {
	db *gorm.DB
}

func (p *PostgresDB) History() *HistoryDB {
	return &HistoryDB{db: p.db}
}

// AppendScoreSnapshot 追加一条评分历史
func (h *HistoryDB) AppendScoreSnapshot(entityKey string, result *model.ScoreResult) error {
	snapshot := &model.ScoreSnapshot{
		EntityKey:   entityKey,
		Overall:     result.Overall,
		Pillars:     result.Pillars,
		NullPillars: result.NullPillars,
		ComputedAt:  result.ComputedAt,
	}
	if err := h.db.Create(snapshot).Error; err != nil {
		return fmt.Errorf("写入评分历史失败: %w", err)
	}
	return nil
}

// AppendAnomalySnapshots 追加红旗历史，每个检测器单独一行
func (h *HistoryDB) AppendAnomalySnapshots(entityKey string, result *model.AnomalyResult) error {
	rows := make([]*model.AnomalySnapshot, 0, len(result.Detectors))
	for _, d := range result.Detectors {
		rows = append(rows, &model.AnomalySnapshot{
			EntityKey:   entityKey,
			Type:        d.Type,
			Score:       d.Score,
			Weight:      d.Weight,
			Weighted:    d.Weighted,
			Description: d.Description,
			Composite:   result.Composite,
			Severity:    result.Severity,
			ComputedAt:  result.ComputedAt,
		})
	}
	if err := h.db.CreateInBatches(rows, 50).Error; err != nil {
		return fmt.Errorf("写入红旗历史失败: %w", err)
	}
	return nil
}

// GetScoreHistory 查询主体评分历史，最新在前
func (h *HistoryDB) GetScoreHistory(entityKey string, limit int) ([]*model.ScoreSnapshot, error) {
	var snapshots []*model.ScoreSnapshot
	err := h.db.Where("entity_key = ?", entityKey).
		Order("computed_at DESC").
		Limit(limit).
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("查询评分历史失败: %w", err)
	}
	return snapshots, nil
}

// GetAnomalyHistory 查询主体红旗历史，最新在前
func (h *HistoryDB) GetAnomalyHistory(entityKey string, since time.Time, limit int) ([]*model.AnomalySnapshot, error) {
	var snapshots []*model.AnomalySnapshot
	err := h.db.Where("entity_key = ? AND computed_at >= ?", entityKey, since).
		Order("computed_at DESC").
		Limit(limit).
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("查询红旗历史失败: %w", err)
	}
	return snapshots, nil
}
