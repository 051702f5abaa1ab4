// pkg/database/jobrun.go
package database

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ScoreRadar/pkg/model"
)

type JobRunDB struct {
	db *gorm.DB
}

func (p *PostgresDB) JobRun() *JobRunDB {
	return &JobRunDB{db: p.db}
}

// Insert 创建一条运行中的任务记录，返回其ID
func (j *JobRunDB) Insert(run *model.JobRun) (string, error) {
	if err := j.db.Create(run).Error; err != nil {
		return "", fmt.Errorf("创建任务记录失败: %w", err)
	}
	return run.ID, nil
}

// MarkCompleted 将任务记录标记为已完成
// 条件限定status=running，保证终态只写一次
func (j *JobRunDB) MarkCompleted(id string, succeeded, failed int, failures []model.JobFailure, duration time.Duration) error {
	failureJSON, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("序列化失败列表失败: %w", err)
	}

	now := time.Now()
	err = j.db.Model(&model.JobRun{}).
		Where("id = ? AND status = ?", id, model.JobStatusRunning).
		Updates(map[string]interface{}{
			"status":      model.JobStatusCompleted,
			"succeeded":   succeeded,
			"failed":      failed,
			"failures":    string(failureJSON),
			"finished_at": &now,
			"duration_ms": duration.Milliseconds(),
		}).Error
	if err != nil {
		return fmt.Errorf("更新任务记录失败: %w", err)
	}
	return nil
}

// MarkFailed 将任务记录标记为失败
func (j *JobRunDB) MarkFailed(id string, message string, duration time.Duration) error {
	now := time.Now()
	err := j.db.Model(&model.JobRun{}).
		Where("id = ? AND status = ?", id, model.JobStatusRunning).
		Updates(map[string]interface{}{
			"status":        model.JobStatusFailed,
			"error_message": message,
			"finished_at":   &now,
			"duration_ms":   duration.Milliseconds(),
		}).Error
	if err != nil {
		return fmt.Errorf("更新任务记录失败: %w", err)
	}
	return nil
}

// GetRecent 查询指定任务的最近运行记录
func (j *JobRunDB) GetRecent(jobName string, limit int) ([]*model.JobRun, error) {
	var runs []*model.JobRun
	err := j.db.Where("job_name = ?", jobName).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("查询任务记录失败: %w", err)
	}
	return runs, nil
}
