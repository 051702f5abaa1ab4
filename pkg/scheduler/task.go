package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler 定时触发器，按配置的cron表达式驱动批次运行器
type Scheduler struct {
	cron      *cron.Cron
	runner    *Runner
	jobName   string
	chunkSize int
	cronSpec  string
}

// NewScheduler 创建定时触发器
func NewScheduler(runner *Runner, jobName string, chunkSize int, cronSpec string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		runner:    runner,
		jobName:   jobName,
		chunkSize: chunkSize,
		cronSpec:  cronSpec,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		log.Printf("触发任务 %s，分块大小 %d...", s.jobName, s.chunkSize)

		summary, err := s.runner.RunChunk(context.Background(), s.jobName, s.chunkSize)
		if err != nil {
			log.Printf("任务 %s 执行失败: %v", s.jobName, err)
			return
		}

		log.Printf("任务 %s 完成: 成功 %d，失败 %d，游标起点 %d，整轮完成 %v",
			summary.JobName, summary.Succeeded, summary.Failed, summary.CursorStart, summary.IsComplete)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
