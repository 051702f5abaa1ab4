package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus 批次任务状态
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// JobFailure 批次内单个主体的失败记录
type JobFailure struct {
	EntityKey string `json:"entity_key"`
	Error     string `json:"error"`
}

// JobRun 一次批次调用的执行记录
// 状态只会从running转换一次到completed或failed
type JobRun struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	JobName       string       `gorm:"type:varchar(50);index;not null" json:"job_name"`
	Status        JobStatus    `gorm:"type:varchar(20);index;not null" json:"status"`
	CursorStart   int          `gorm:"not null" json:"cursor_start"` // 本批次起始游标
	ChunkSize     int          `gorm:"not null" json:"chunk_size"`
	TotalEntities int          `gorm:"not null" json:"total_entities"`
	Succeeded     int          `gorm:"default:0" json:"succeeded"`
	Failed        int          `gorm:"default:0" json:"failed"`
	Failures      []JobFailure `gorm:"type:jsonb;serializer:json" json:"failures"`
	ErrorMessage  string       `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt     time.Time    `gorm:"index;not null" json:"started_at"`
	FinishedAt    *time.Time   `json:"finished_at,omitempty"`
	DurationMS    int64        `gorm:"default:0" json:"duration_ms"`
}

func (j *JobRun) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}

func (JobRun) TableName() string {
	return "job_runs"
}

// JobRunSummary 触发接口返回给调用方的结构化摘要
type JobRunSummary struct {
	JobRunID    string        `json:"job_run_id"`
	JobName     string        `json:"job_name"`
	CursorStart int           `json:"cursor_start"`
	ChunkLength int           `json:"chunk_length"`
	Total       int           `json:"total"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Failures    []JobFailure  `json:"failures"`
	IsComplete  bool          `json:"is_complete"` // 本批次是否完成整轮遍历
	Duration    time.Duration `json:"duration"`
}
