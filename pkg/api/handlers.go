package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ScoreRadar/pkg/database"
	"ScoreRadar/pkg/engine"
	"ScoreRadar/pkg/repository"
	"ScoreRadar/pkg/scheduler"
)

// Handlers API处理程序
type Handlers struct {
	runner           *scheduler.Runner
	engine           *engine.Engine
	repo             *repository.Repository
	history          *database.HistoryDB
	jobRuns          *database.JobRunDB
	defaultChunkSize int
}

// NewHandlers 创建新的API处理程序
func NewHandlers(
	runner *scheduler.Runner,
	recomputeEngine *engine.Engine,
	repo *repository.Repository,
	history *database.HistoryDB,
	jobRuns *database.JobRunDB,
	defaultChunkSize int,
) *Handlers {
	return &Handlers{
		runner:           runner,
		engine:           recomputeEngine,
		repo:             repo,
		history:          history,
		jobRuns:          jobRuns,
		defaultChunkSize: defaultChunkSize,
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	if err := h.repo.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// RunJobChunk 触发一个分块的批次重算
// 单项失败不影响返回200，只有分块整体中止才返回500
func (h *Handlers) RunJobChunk(c *gin.Context) {
	jobName := c.Param("name")

	chunkSize := h.defaultChunkSize
	if param := c.Query("chunk_size"); param != "" {
		size, err := strconv.Atoi(param)
		if err != nil || size <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "chunk_size参数无效: " + param,
			})
			return
		}
		chunkSize = size
	}

	summary, err := h.runner.RunChunk(c.Request.Context(), jobName, chunkSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "执行批次任务失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// GetJobRuns 查询任务最近的运行记录
func (h *Handlers) GetJobRuns(c *gin.Context) {
	jobName := c.Param("name")
	limit := parseLimit(c, 10)

	runs, err := h.jobRuns.GetRecent(jobName, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询任务记录失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
	})
}

// RecomputeEntity 强制重算单个主体，绕过游标并先作废缓存
func (h *Handlers) RecomputeEntity(c *gin.Context) {
	key := c.Param("key")

	score, anomalies, err := h.engine.ForceRecompute(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "主体不存在: " + key,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "重算失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"score":     score,
			"anomalies": anomalies,
		},
	})
}

// GetCurrentScore 获取主体当前评分
func (h *Handlers) GetCurrentScore(c *gin.Context) {
	key := c.Param("key")

	entity, err := h.repo.GetEntity(key)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "主体不存在: " + key,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取主体信息失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"entity_key":    entity.Key,
			"current_score": entity.CurrentScore,
		},
	})
}

// GetScoreHistory 查询主体评分历史
func (h *Handlers) GetScoreHistory(c *gin.Context) {
	key := c.Param("key")
	limit := parseLimit(c, 30)

	snapshots, err := h.history.GetScoreHistory(key, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询评分历史失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshots,
	})
}

// GetAnomalies 获取主体最新红旗画像（缓存有效期内直接返回缓存结果）
func (h *Handlers) GetAnomalies(c *gin.Context) {
	key := c.Param("key")

	result, err := h.engine.RecomputeAnomalies(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "主体不存在: " + key,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取红旗画像失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}

// GetAnomalyHistory 查询主体红旗历史
func (h *Handlers) GetAnomalyHistory(c *gin.Context) {
	key := c.Param("key")
	limit := parseLimit(c, 50)

	// 默认回看一年
	since := time.Now().AddDate(-1, 0, 0)
	if param := c.Query("since"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "since参数无效: " + param,
			})
			return
		}
		since = parsed
	}

	snapshots, err := h.history.GetAnomalyHistory(key, since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询红旗历史失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshots,
	})
}

// parseLimit 解析limit查询参数
func parseLimit(c *gin.Context, fallback int) int {
	param := c.Query("limit")
	if param == "" {
		return fallback
	}
	limit, err := strconv.Atoi(param)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
