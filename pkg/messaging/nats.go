// pkg/messaging/nats.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"ScoreRadar/pkg/model"
)

// 发布主题
const (
	SubjectJobCompleted    = "jobs.completed"
	SubjectJobFailed       = "jobs.failed"
	SubjectRedFlagCritical = "redflags.critical"
)

// NATSClient NATS JetStream客户端 - 纯基础能力封装
type NATSClient struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	natsURL   string
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewNATSClient 创建新的NATS客户端
func NewNATSClient(natsURL string) (*NATSClient, error) {
	// 连接NATS
	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // 无限重连
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	// 创建JetStream上下文
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &NATSClient{
		conn:      nc,
		jetStream: js,
		natsURL:   natsURL,
		ctx:       ctx,
		cancel:    cancel,
	}

	// 初始化基础Streams
	if err := client.setupStreams(); err != nil {
		log.Printf("警告: 设置Streams失败: %v", err)
	}

	return client, nil
}

// setupStreams 设置基础的Streams
func (c *NATSClient) setupStreams() error {
	streams := []jetstream.StreamConfig{
		{
			Name:        "JOBS_STREAM",
			Subjects:    []string{"jobs.*"},
			Description: "批次任务摘要流",
			Retention:   jetstream.LimitsPolicy,
			MaxMsgs:     10000,
		},
		{
			Name:        "REDFLAGS_STREAM",
			Subjects:    []string{"redflags.*"},
			Description: "红旗事件流",
			Retention:   jetstream.LimitsPolicy,
			MaxMsgs:     10000,
		},
	}

	for _, cfg := range streams {
		ctx, cancel := context.WithTimeout(c.ctx, 5*time.Second)
		if _, err := c.jetStream.CreateOrUpdateStream(ctx, cfg); err != nil {
			cancel()
			return fmt.Errorf("创建Stream %s 失败: %w", cfg.Name, err)
		}
		cancel()
	}

	return nil
}

// publish 序列化并发布消息
func (c *NATSClient) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.ctx, 5*time.Second)
	defer cancel()

	if _, err := c.jetStream.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("发布消息到 %s 失败: %w", subject, err)
	}
	return nil
}

// PublishJobSummary 发布批次任务摘要
func (c *NATSClient) PublishJobSummary(summary *model.JobRunSummary) error {
	subject := SubjectJobCompleted
	if summary.Failed > 0 && summary.Succeeded == 0 && summary.ChunkLength > 0 {
		subject = SubjectJobFailed
	}
	return c.publish(subject, summary)
}

// PublishCriticalAnomaly 发布Critical级红旗事件
func (c *NATSClient) PublishCriticalAnomaly(result *model.AnomalyResult) error {
	return c.publish(SubjectRedFlagCritical, result)
}

// Close 关闭NATS连接
func (c *NATSClient) Close() {
	c.cancel()
	c.conn.Close()
}
