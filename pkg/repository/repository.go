package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ScoreRadar/pkg/database"
	"ScoreRadar/pkg/model"
)

// ErrEntityNotFound 主体不存在
var ErrEntityNotFound = errors.New("主体不存在")

// ErrRepositoryUnavailable 数据仓库不可用
// 在计算开始前由Ping统一探测，计算器内部不再做可用性判断
var ErrRepositoryUnavailable = errors.New("数据仓库不可用")

// Reader 重算引擎消费的只读数据接口
type Reader interface {
	Ping() error
	GetEntity(key string) (*model.Entity, error)
	GetSnapshot(entityKey string) (*model.FinancialSnapshot, error)
	GetPersonnel(entityKey string) ([]*model.PersonnelRecord, error)
	GetDisclosures(entityKey string) ([]*model.DisclosureRecord, error)
	ListEntityKeys() ([]string, error)
	UpdateCurrentScore(entityKey string, score int) error
}

// Repository 只读数据仓库，封装各存储的读取入口
type Repository struct {
	db *database.PostgresDB
}

// NewRepository 创建数据仓库
func NewRepository(db *database.PostgresDB) *Repository {
	return &Repository{db: db}
}

// Ping 探测数据仓库可用性
func (r *Repository) Ping() error {
	if err := r.db.Ping(); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return nil
}

// GetEntity 按key获取主体
func (r *Repository) GetEntity(key string) (*model.Entity, error) {
	entity, err := r.db.Entity().GetByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
		}
		return nil, err
	}
	return entity, nil
}

// GetSnapshot 获取财务快照，缺失时返回nil
func (r *Repository) GetSnapshot(entityKey string) (*model.FinancialSnapshot, error) {
	return r.db.Snapshot().GetByEntityKey(entityKey)
}

// GetPersonnel 获取人员记录
func (r *Repository) GetPersonnel(entityKey string) ([]*model.PersonnelRecord, error) {
	return r.db.Personnel().GetByEntityKey(entityKey)
}

// GetDisclosures 获取披露记录，最新在前
func (r *Repository) GetDisclosures(entityKey string) ([]*model.DisclosureRecord, error) {
	return r.db.Disclosure().GetByEntityKey(entityKey)
}

// ListEntityKeys 获取按key排序的活跃主体列表
func (r *Repository) ListEntityKeys() ([]string, error) {
	return r.db.Entity().ListActiveKeys()
}

// UpdateCurrentScore 覆盖主体缓存的最新评分
func (r *Repository) UpdateCurrentScore(entityKey string, score int) error {
	return r.db.Entity().UpdateCurrentScore(entityKey, score)
}
