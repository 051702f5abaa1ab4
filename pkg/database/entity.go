// pkg/database/entity.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"ScoreRadar/pkg/model"
)

type EntityDB struct {
	db *gorm.DB
}

func (p *PostgresDB) Entity() *EntityDB {
	return &EntityDB{db: p.db}
}

func (e *EntityDB) Save(entity *model.Entity) error {
	return e.db.Save(entity).Error
}

func (e *EntityDB) GetByKey(key string) (*model.Entity, error) {
	var entity model.Entity
	err := e.db.First(&entity, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("获取主体信息失败: %w", err)
	}
	return &entity, nil
}

// ListActiveKeys 返回所有活跃主体的key，按key排序保证游标切片稳定
func (e *EntityDB) ListActiveKeys() ([]string, error) {
	var keys []string
	err := e.db.Model(&model.Entity{}).
		Where("is_active = ?", true).
		Order("key ASC").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("查询主体列表失败: %w", err)
	}
	return keys, nil
}

// UpdateCurrentScore 覆盖主体缓存的最新评分，后写者胜出
func (e *EntityDB) UpdateCurrentScore(key string, score int) error {
	err := e.db.Model(&model.Entity{}).
		Where("key = ?", key).
		Update("current_score", score).Error
	if err != nil {
		return fmt.Errorf("更新主体评分失败: %w", err)
	}
	return nil
}
