// pkg/database/snapshot.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"ScoreRadar/pkg/model"
)

type SnapshotDB struct {
	db *gorm.DB
}

func (p *PostgresDB) Snapshot() *SnapshotDB {
	return &SnapshotDB{db: p.db}
}

func (s *SnapshotDB) Save(snapshot *model.FinancialSnapshot) error {
	return s.db.Save(snapshot).Error
}

// GetByEntityKey 获取主体财务快照，不存在时返回nil而非错误
// 快照缺失等价于所有字段缺失，由评分层按“不可用”处理
func (s *SnapshotDB) GetByEntityKey(entityKey string) (*model.FinancialSnapshot, error) {
	var snapshot model.FinancialSnapshot
	err := s.db.First(&snapshot, "entity_key = ?", entityKey).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("获取财务快照失败: %w", err)
	}
	return &snapshot, nil
}

type PersonnelDB struct {
	db *gorm.DB
}

func (p *PostgresDB) Personnel() *PersonnelDB {
	return &PersonnelDB{db: p.db}
}

func (p *PersonnelDB) Save(record *model.PersonnelRecord) error {
	return p.db.Save(record).Error
}

func (p *PersonnelDB) GetByEntityKey(entityKey string) ([]*model.PersonnelRecord, error) {
	var records []*model.PersonnelRecord
	err := p.db.Where("entity_key = ?", entityKey).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("获取人员记录失败: %w", err)
	}
	return records, nil
}

type DisclosureDB struct {
	db *gorm.DB
}

func (p *PostgresDB) Disclosure() *DisclosureDB {
	return &DisclosureDB{db: p.db}
}

func (d *DisclosureDB) Save(record *model.DisclosureRecord) error {
	return d.db.Save(record).Error
}

// GetByEntityKey 获取主体披露记录，按日期倒序（最新在前）
func (d *DisclosureDB) GetByEntityKey(entityKey string) ([]*model.DisclosureRecord, error) {
	var records []*model.DisclosureRecord
	err := d.db.Where("entity_key = ?", entityKey).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("获取披露记录失败: %w", err)
	}
	return records, nil
}
