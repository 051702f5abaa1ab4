package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 四大支柱名称
const (
	PillarSurvival   = "financial_survival"
	PillarEfficiency = "operational_efficiency"
	PillarStructure  = "shareholder_structure"
	PillarSentiment  = "market_sentiment"
)

// PillarScore 单一支柱的评分结果
type PillarScore struct {
	Name           string             `json:"name"`
	Score          float64            `json:"score"`           // 0-100，Available为false时无意义
	SubScores      map[string]float64 `json:"sub_scores"`      // 子指标得分
	BaseWeight     float64            `json:"base_weight"`     // 基础权重
	AdjustedWeight float64            `json:"adjusted_weight"` // 重分配后的权重
	Available      bool               `json:"available"`       // 输入是否足以评分
}

// ScoreResult 一次完整重算产出的健康评分结果
type ScoreResult struct {
	EntityKey   string        `json:"entity_key"`
	Pillars     []PillarScore `json:"pillars"`
	NullPillars []string      `json:"null_pillars"` // 输入完全缺失的支柱
	Overall     int           `json:"overall"`      // 0-100，四舍五入取整
	ComputedAt  time.Time     `json:"computed_at"`
}

// ScoreSnapshot 评分历史行，只追加不修改
type ScoreSnapshot struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKey   string        `gorm:"type:varchar(20);index:idx_score_entity_time;not null" json:"entity_key"`
	Overall     int           `gorm:"not null" json:"overall"`
	Pillars     []PillarScore `gorm:"type:jsonb;serializer:json" json:"pillars"`
	NullPillars []string      `gorm:"type:jsonb;serializer:json" json:"null_pillars"`
	ComputedAt  time.Time     `gorm:"index:idx_score_entity_time;not null" json:"computed_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (s *ScoreSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (ScoreSnapshot) TableName() string {
	return "score_snapshots"
}
