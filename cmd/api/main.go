package main

import (
	"log"
	"os"

	"ScoreRadar/pkg/api"
	"ScoreRadar/pkg/cache"
	"ScoreRadar/pkg/config"
	"ScoreRadar/pkg/database"
	"ScoreRadar/pkg/engine"
	"ScoreRadar/pkg/messaging"
	"ScoreRadar/pkg/repository"
	"ScoreRadar/pkg/scheduler"
)

func main() {
	log.Println("启动API服务...")

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

	// 组装重算引擎与批次运行器
	repo := repository.NewRepository(db)
	recomputeEngine := engine.New(repo, redisCache, db.History(), natsClient, engine.Options{
		CacheTTL:         cfg.Jobs.CacheTTL,
		FetchConcurrency: cfg.Jobs.FetchConcurrency,
	})

	runner := scheduler.NewRunner(repo, redisCache, db.JobRun(), recomputeEngine, natsClient, scheduler.Options{
		ComputeConcurrency: cfg.Jobs.ComputeConcurrency,
		CursorTTL:          cfg.Jobs.CursorTTL,
	})

	// 启动API服务器
	server := api.NewServer(cfg.API.Port)
	handlers := api.NewHandlers(runner, recomputeEngine, repo, db.History(), db.JobRun(), cfg.Jobs.ChunkSize)
	server.SetupRoutes(handlers)
	server.Start()
}
