package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/semaphore"

	"ScoreRadar/pkg/anomaly"
	"ScoreRadar/pkg/cache"
	"ScoreRadar/pkg/model"
	"ScoreRadar/pkg/repository"
	"ScoreRadar/pkg/scoring"
)

// HistoryWriter 历史存储的写入接口
type HistoryWriter interface {
	AppendScoreSnapshot(entityKey string, result *model.ScoreResult) error
	AppendAnomalySnapshots(entityKey string, result *model.AnomalyResult) error
}

// AlertPublisher 红旗事件发布接口
type AlertPublisher interface {
	PublishCriticalAnomaly(result *model.AnomalyResult) error
}

// Options 重算引擎可调参数
type Options struct {
	CacheTTL         time.Duration
	FetchConcurrency int // 仓库读取的并发上限，低于重算并发
}

// Engine 主体健康评分与红旗画像的重算引擎
type Engine struct {
	repo      repository.Reader
	cache     cache.Store
	history   HistoryWriter
	publisher AlertPublisher // 可为nil
	cacheTTL  time.Duration
	fetchSem  *semaphore.Weighted
	now       func() time.Time
}

// New 创建重算引擎
func New(repo repository.Reader, store cache.Store, history HistoryWriter, publisher AlertPublisher, opts Options) *Engine {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = 3
	}
	return &Engine{
		repo:      repo,
		cache:     store,
		history:   history,
		publisher: publisher,
		cacheTTL:  opts.CacheTTL,
		fetchSem:  semaphore.NewWeighted(int64(opts.FetchConcurrency)),
		now:       time.Now,
	}
}

// WithClock 覆盖时钟，仅测试使用
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// entityData 一次重算所需的全部只读数据
type entityData struct {
	entity      *model.Entity
	snapshot    *model.FinancialSnapshot
	personnel   []*model.PersonnelRecord
	disclosures []*model.DisclosureRecord
}

// fetch 从仓库读取主体数据，受fetch并发额度限制
func (e *Engine) fetch(ctx context.Context, entityKey string) (*entityData, error) {
	if err := e.fetchSem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("获取读取额度失败: %w", err)
	}
	defer e.fetchSem.Release(1)

	entity, err := e.repo.GetEntity(entityKey)
	if err != nil {
		return nil, err
	}
	snapshot, err := e.repo.GetSnapshot(entityKey)
	if err != nil {
		return nil, err
	}
	personnel, err := e.repo.GetPersonnel(entityKey)
	if err != nil {
		return nil, err
	}
	disclosures, err := e.repo.GetDisclosures(entityKey)
	if err != nil {
		return nil, err
	}

	return &entityData{
		entity:      entity,
		snapshot:    snapshot,
		personnel:   personnel,
		disclosures: disclosures,
	}, nil
}

// RecomputeScore 重算主体健康评分
// 缓存命中时直接返回缓存结果，跳过整条计算管线
func (e *Engine) RecomputeScore(ctx context.Context, entityKey string) (*model.ScoreResult, error) {
	var cached model.ScoreResult
	if err := e.cache.Get(ctx, cache.ScoreKey(entityKey), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("读取评分缓存失败，回退到重算: %v", err)
	}

	data, err := e.fetch(ctx, entityKey)
	if err != nil {
		return nil, err
	}

	result := scoring.Compute(scoring.Inputs{
		Entity:      data.entity,
		Snapshot:    data.snapshot,
		Personnel:   data.personnel,
		Disclosures: data.disclosures,
		Now:         e.now(),
	})

	// 副作用顺序：历史追加 → 覆盖缓存评分字段 → 写结果缓存
	if err := e.history.AppendScoreSnapshot(entityKey, result); err != nil {
		return nil, err
	}
	if err := e.repo.UpdateCurrentScore(entityKey, result.Overall); err != nil {
		return nil, err
	}
	if err := e.cache.Set(ctx, cache.ScoreKey(entityKey), result, e.cacheTTL); err != nil {
		// 缓存写失败不影响已落库的结果
		log.Printf("写入评分缓存失败: %v", err)
	}

	return result, nil
}

// RecomputeAnomalies 重算主体红旗画像
func (e *Engine) RecomputeAnomalies(ctx context.Context, entityKey string) (*model.AnomalyResult, error) {
	var cached model.AnomalyResult
	if err := e.cache.Get(ctx, cache.AnomalyKey(entityKey), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("读取红旗缓存失败，回退到重算: %v", err)
	}

	data, err := e.fetch(ctx, entityKey)
	if err != nil {
		return nil, err
	}

	result := anomaly.Analyze(anomaly.Inputs{
		Entity:      data.entity,
		Personnel:   data.personnel,
		Disclosures: data.disclosures,
		Now:         e.now(),
	})

	if err := e.history.AppendAnomalySnapshots(entityKey, result); err != nil {
		return nil, err
	}
	if err := e.cache.Set(ctx, cache.AnomalyKey(entityKey), result, e.cacheTTL); err != nil {
		log.Printf("写入红旗缓存失败: %v", err)
	}

	if result.Severity == model.SeverityCritical && e.publisher != nil {
		if err := e.publisher.PublishCriticalAnomaly(result); err != nil {
			log.Printf("发布红旗事件失败: %v", err)
		}
	}

	return result, nil
}

// RecomputeEntity 重算单个主体的评分与红旗画像
// 批次内的单项操作，仓库可用性由批次边界统一探测
func (e *Engine) RecomputeEntity(ctx context.Context, entityKey string) error {
	if _, err := e.RecomputeScore(ctx, entityKey); err != nil {
		return fmt.Errorf("重算评分失败: %w", err)
	}
	if _, err := e.RecomputeAnomalies(ctx, entityKey); err != nil {
		return fmt.Errorf("重算红旗失败: %w", err)
	}
	return nil
}

// ForceRecompute 按需强制重算单个主体，绕过游标并先作废缓存
// 主体不存在时立即返回ErrEntityNotFound，不做重试
func (e *Engine) ForceRecompute(ctx context.Context, entityKey string) (*model.ScoreResult, *model.AnomalyResult, error) {
	if err := e.repo.Ping(); err != nil {
		return nil, nil, err
	}

	if err := e.cache.Delete(ctx, cache.ScoreKey(entityKey)); err != nil {
		log.Printf("作废评分缓存失败: %v", err)
	}
	if err := e.cache.Delete(ctx, cache.AnomalyKey(entityKey)); err != nil {
		log.Printf("作废红旗缓存失败: %v", err)
	}

	score, err := e.RecomputeScore(ctx, entityKey)
	if err != nil {
		return nil, nil, err
	}
	anomalies, err := e.RecomputeAnomalies(ctx, entityKey)
	if err != nil {
		return nil, nil, err
	}
	return score, anomalies, nil
}
