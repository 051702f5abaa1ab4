package model

import (
	"time"
)

// Entity 被跟踪的上市主体
type Entity struct {
	Key           string  `gorm:"type:varchar(20);primaryKey" json:"key"`        // 唯一标识（代码）
	Name          string  `gorm:"not null" json:"name"`
	Sector        string  `gorm:"type:varchar(50);index" json:"sector"`          // 行业分类
	Price         float64 `gorm:"type:decimal(12,4)" json:"price"`
	MarketCap     float64 `gorm:"type:decimal(18,2)" json:"market_cap"`
	ChangePercent float64 `gorm:"type:decimal(8,4)" json:"change_percent"`
	CurrentScore  int     `gorm:"default:0" json:"current_score"`                // 缓存的最新健康评分
	IsActive      bool    `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Entity) TableName() string {
	return "entities"
}
