package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DetectorType 红旗检测器类型
type DetectorType string

const (
	DetectorConsolidation DetectorType = "consolidation_velocity" // 并购整合频率
	DetectorFinancing     DetectorType = "financing_velocity"     // 融资频率
	DetectorChurn         DetectorType = "executive_churn"        // 高管更替
	DetectorGaps          DetectorType = "disclosure_gaps"        // 披露空窗
	DetectorDebtTrend     DetectorType = "debt_trend"             // 债务趋势
)

// Severity 红旗综合严重程度
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DetectorScore 单一检测器的输出
type DetectorScore struct {
	Type        DetectorType `json:"type"`
	Score       float64      `json:"score"`    // 0-100 原始得分
	Weight      float64      `json:"weight"`   // 固定权重
	Weighted    float64      `json:"weighted"` // score × weight
	Description string       `json:"description"`
}

// AnomalyResult 一次完整重算产出的红旗画像
type AnomalyResult struct {
	EntityKey  string          `json:"entity_key"`
	Detectors  []DetectorScore `json:"detectors"`
	Composite  int             `json:"composite"` // 加权综合分，0-100
	Severity   Severity        `json:"severity"`
	ComputedAt time.Time       `json:"computed_at"`
}

// AnomalySnapshot 红旗历史行，每个检测器单独一行，便于趋势与审计查询
type AnomalySnapshot struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKey   string       `gorm:"type:varchar(20);index:idx_anomaly_entity_time;not null" json:"entity_key"`
	Type        DetectorType `gorm:"type:varchar(30);index;not null" json:"type"`
	Score       float64      `gorm:"type:decimal(6,2);not null" json:"score"`
	Weight      float64      `gorm:"type:decimal(4,2);not null" json:"weight"`
	Weighted    float64      `gorm:"type:decimal(6,2);not null" json:"weighted"`
	Description string       `gorm:"type:text" json:"description"`
	Composite   int          `gorm:"not null" json:"composite"` // 当次综合分，冗余存储方便查询
	Severity    Severity     `gorm:"type:varchar(20);index;not null" json:"severity"`
	ComputedAt  time.Time    `gorm:"index:idx_anomaly_entity_time;not null" json:"computed_at"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (a *AnomalySnapshot) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (AnomalySnapshot) TableName() string {
	return "anomaly_snapshots"
}
