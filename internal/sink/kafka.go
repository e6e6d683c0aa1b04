package sink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/example/kpi-dashboard/internal/models"
)

// snapshotMessage is the wire shape published per refresh tick.
type snapshotMessage struct {
	BatchID   string    `json:"batch_id"`
	Timestamp time.Time `json:"timestamp"`
	models.KpiSnapshot
}

// Publisher streams KPI snapshots to a Kafka topic for downstream
// consumers. Optional: the dashboard works without it.
type Publisher struct {
	w      *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           200 * time.Millisecond,
	}
	return &Publisher{w: w, logger: logger}
}

// EnsureTopic attempts to create the topic (best-effort).
func EnsureTopic(ctx context.Context, broker, topic string, logger *zap.Logger) {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		logger.Warn("ensure topic: dial failed", zap.Error(err))
		return
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug("ensure topic: create (ok if exists)", zap.String("topic", topic), zap.Error(err))
	}
}

func (p *Publisher) PublishSnapshot(ctx context.Context, snap models.KpiSnapshot) error {
	msg := snapshotMessage{
		BatchID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		KpiSnapshot: snap,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.BatchID),
		Value: b,
		Time:  msg.Timestamp,
	})
}

func (p *Publisher) Close() error { return p.w.Close() }
