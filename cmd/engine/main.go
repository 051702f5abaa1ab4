package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ScoreRadar/pkg/cache"
	"ScoreRadar/pkg/config"
	"ScoreRadar/pkg/database"
	"ScoreRadar/pkg/engine"
	"ScoreRadar/pkg/messaging"
	"ScoreRadar/pkg/repository"
	"ScoreRadar/pkg/scheduler"
)

func main() {
	log.Println("启动评分重算引擎...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	// 连接数据库
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v\n", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("迁移表结构失败: %v\n", err)
	}

	// 连接Redis
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("连接Redis失败: %v\n", err)
	}
	defer redisCache.Close()

	// 连接NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("连接NATS失败: %v\n", err)
	}
	defer natsClient.Close()

	// 组装重算引擎
	repo := repository.NewRepository(db)
	recomputeEngine := engine.New(repo, redisCache, db.History(), natsClient, engine.Options{
		CacheTTL:         cfg.Jobs.CacheTTL,
		FetchConcurrency: cfg.Jobs.FetchConcurrency,
	})

	runner := scheduler.NewRunner(repo, redisCache, db.JobRun(), recomputeEngine, natsClient, scheduler.Options{
		ComputeConcurrency: cfg.Jobs.ComputeConcurrency,
		CursorTTL:          cfg.Jobs.CursorTTL,
	})

	// 启动定时调度
	sched := scheduler.NewScheduler(runner, scheduler.JobRecompute, cfg.Jobs.ChunkSize, cfg.Jobs.CronSpec)
	if err := sched.Start(); err != nil {
		log.Fatalf("启动调度器失败: %v\n", err)
	}
	defer sched.Stop()

	log.Printf("调度器已启动，任务 %s，cron表达式 %s", scheduler.JobRecompute, cfg.Jobs.CronSpec)

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("正在关闭评分重算引擎...")
}
