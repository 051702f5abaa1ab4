package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"ScoreRadar/pkg/batch"
	"ScoreRadar/pkg/cache"
	"ScoreRadar/pkg/model"
	"ScoreRadar/pkg/repository"
)

// JobRecompute 默认的全量重算任务名
const JobRecompute = "entity_recompute"

// JobRunStore 任务记录的写入接口
type JobRunStore interface {
	Insert(run *model.JobRun) (string, error)
	MarkCompleted(id string, succeeded, failed int, failures []model.JobFailure, duration time.Duration) error
	MarkFailed(id string, message string, duration time.Duration) error
}

// SummaryPublisher 任务摘要发布接口
type SummaryPublisher interface {
	PublishJobSummary(summary *model.JobRunSummary) error
}

// EntityRecomputer 单主体重算操作
type EntityRecomputer interface {
	RecomputeEntity(ctx context.Context, entityKey string) error
}

// Options 批次运行器可调参数
type Options struct {
	ComputeConcurrency int
	CursorTTL          time.Duration
}

// Runner 游标分块的批次运行器
// 每次调用只处理一个分块，游标持久化在外部存储里跨调用推进
type Runner struct {
	repo        repository.Reader
	cursors     cache.Store
	jobRuns     JobRunStore
	recomputer  EntityRecomputer
	publisher   SummaryPublisher // 可为nil
	concurrency int
	cursorTTL   time.Duration
	now         func() time.Time
}

// NewRunner 创建批次运行器
func NewRunner(repo repository.Reader, cursors cache.Store, jobRuns JobRunStore, recomputer EntityRecomputer, publisher SummaryPublisher, opts Options) *Runner {
	if opts.ComputeConcurrency <= 0 {
		opts.ComputeConcurrency = 10
	}
	if opts.CursorTTL <= 0 {
		opts.CursorTTL = 7 * 24 * time.Hour
	}
	return &Runner{
		repo:        repo,
		cursors:     cursors,
		jobRuns:     jobRuns,
		recomputer:  recomputer,
		publisher:   publisher,
		concurrency: opts.ComputeConcurrency,
		cursorTTL:   opts.CursorTTL,
		now:         time.Now,
	}
}

// WithClock 覆盖时钟，仅测试使用
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// RunChunk 处理任务的下一个分块
// 单项失败只计入失败列表；分块级错误会把任务记录标记为failed且不推进游标，
// 下次调用将重试同一分块
func (r *Runner) RunChunk(ctx context.Context, jobName string, chunkSize int) (*model.JobRunSummary, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("分块大小必须为正数: %d", chunkSize)
	}

	startedAt := r.now()

	// 计算开始前统一探测仓库可用性
	if err := r.repo.Ping(); err != nil {
		return nil, err
	}

	cursor, err := r.cursors.GetCursor(ctx, jobName)
	if err != nil {
		return nil, err
	}

	keys, err := r.repo.ListEntityKeys()
	if err != nil {
		return nil, err
	}
	total := len(keys)

	chunk := sliceChunk(keys, cursor, chunkSize)

	runID, err := r.jobRuns.Insert(&model.JobRun{
		JobName:       jobName,
		Status:        model.JobStatusRunning,
		CursorStart:   cursor,
		ChunkSize:     chunkSize,
		TotalEntities: total,
		StartedAt:     startedAt,
	})
	if err != nil {
		return nil, err
	}

	result := batch.Run(ctx, chunk, r.concurrency, r.recomputer.RecomputeEntity)

	failures := make([]model.JobFailure, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, model.JobFailure{EntityKey: f.Item, Error: f.Err.Error()})
	}

	// 推进或回绕游标；失败时游标保持原值，下次重试同一分块
	nextOffset := cursor + len(chunk)
	isComplete := nextOffset >= total
	if isComplete {
		err = r.cursors.SetCursor(ctx, jobName, 0, r.cursorTTL)
	} else {
		err = r.cursors.SetCursor(ctx, jobName, nextOffset, r.cursorTTL)
	}
	if err != nil {
		return nil, r.failRun(runID, jobName, startedAt, err)
	}

	duration := r.now().Sub(startedAt)
	if err := r.jobRuns.MarkCompleted(runID, result.Succeeded, result.Failed, failures, duration); err != nil {
		return nil, r.failRun(runID, jobName, startedAt, err)
	}

	summary := &model.JobRunSummary{
		JobRunID:    runID,
		JobName:     jobName,
		CursorStart: cursor,
		ChunkLength: len(chunk),
		Total:       total,
		Succeeded:   result.Succeeded,
		Failed:      result.Failed,
		Failures:    failures,
		IsComplete:  isComplete,
		Duration:    duration,
	}

	if r.publisher != nil {
		if err := r.publisher.PublishJobSummary(summary); err != nil {
			log.Printf("发布任务摘要失败: %v", err)
		}
	}

	return summary, nil
}

// failRun 将任务记录标记为失败并返回原始错误
func (r *Runner) failRun(runID, jobName string, startedAt time.Time, cause error) error {
	duration := r.now().Sub(startedAt)
	if err := r.jobRuns.MarkFailed(runID, cause.Error(), duration); err != nil {
		log.Printf("标记任务失败状态失败: %v", err)
	}
	log.Printf("任务 %s 分块执行失败: %v", jobName, cause)
	return cause
}

// sliceChunk 从完整列表切出当前分块，越界时返回空分块
func sliceChunk(keys []string, cursor, chunkSize int) []string {
	if cursor >= len(keys) {
		return nil
	}
	end := cursor + chunkSize
	if end > len(keys) {
		end = len(keys)
	}
	return keys[cursor:end]
}
