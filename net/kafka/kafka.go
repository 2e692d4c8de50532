package kafka

import (
	"context"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Config structure
type Config struct {
	Enabled    bool     `mapstructure:"enabled"`
	Brokers    []string `mapstructure:"brokers"`
	AuditTopic string   `mapstructure:"audit_topic"`
	Writer     WriterConfig
}

// WriterConfig structure
type WriterConfig struct {
	BatchSize    int  `mapstructure:"batch_size"`
	BatchTimeout int  `mapstructure:"batch_timeout"`
	Async        bool `mapstructure:"async"`
}

// Writer publishes audit events to the configured topic. A disabled
// configuration yields a writer that drops messages, so callers never
// branch on the integration being present.
type Writer struct {
	w *kafkaGo.Writer
}

// NewWriter builds the audit topic writer.
func NewWriter(cfg Config) *Writer {
	if !cfg.Enabled {
		return &Writer{}
	}
	batchTimeout := time.Duration(cfg.Writer.BatchTimeout) * time.Millisecond
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}
	return &Writer{
		w: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(cfg.Brokers...),
			Topic:        cfg.AuditTopic,
			Balancer:     &kafkaGo.LeastBytes{},
			BatchSize:    cfg.Writer.BatchSize,
			BatchTimeout: batchTimeout,
			Async:        cfg.Writer.Async,
		},
	}
}

// Publish sends one keyed message.
func (p *Writer) Publish(ctx context.Context, key, value []byte) error {
	if p.w == nil {
		return nil
	}
	return p.w.WriteMessages(ctx, kafkaGo.Message{Key: key, Value: value})
}

// Close flushes and releases the underlying writer.
func (p *Writer) Close() error {
	if p.w == nil {
		return nil
	}
	return p.w.Close()
}
