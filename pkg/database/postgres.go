package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ScoreRadar/pkg/config"
	"ScoreRadar/pkg/model"
)

// PostgresDB Postgres数据库连接
type PostgresDB struct {
	db *gorm.DB
}

// NewPostgresDB 创建新的Postgres连接
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	dbCfg := cfg.Database.Postgres

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode,
	)

	// 连接数据库
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &PostgresDB{db: db}, nil
}

// AutoMigrate 自动迁移表结构
func (p *PostgresDB) AutoMigrate() error {
	return p.db.AutoMigrate(
		&model.Entity{},
		&model.FinancialSnapshot{},
		&model.PersonnelRecord{},
		&model.DisclosureRecord{},
		&model.ScoreSnapshot{},
		&model.AnomalySnapshot{},
		&model.JobRun{},
	)
}

// Close 关闭数据库连接
func (p *PostgresDB) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping 检查数据库连通性
func (p *PostgresDB) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层连接失败: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("数据库不可用: %w", err)
	}
	return nil
}
