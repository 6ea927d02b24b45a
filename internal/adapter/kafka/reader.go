package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clearbrook/stream-temp-sim/internal/config"
	"github.com/clearbrook/stream-temp-sim/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes step-input messages from the source topic.
// It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	flushInterval time.Duration
	logger        *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaSourceTopic,
		GroupID:     cfg.KafkaGroupID,
		StartOffset: kafkago.FirstOffset,
	})
	return &Reader{reader: r, flushInterval: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch reads up to batchSize messages. It blocks for the first
// message, then collects more until the flush interval elapses, so a slow
// host still produces timely single-step batches.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawStep, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]domain.RawStep, 0, batchSize)
	batch = append(batch, r.mapMessage(first))

	flushCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(flushCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			return batch, err
		}
		batch = append(batch, r.mapMessage(msg))
	}

	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessage converts a Kafka message into a RawStep with a commit callback
// bound to this reader's consumer group.
func (r *Reader) mapMessage(msg kafkago.Message) domain.RawStep {
	raw := mapMessageToRawStep(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

func mapMessageToRawStep(msg kafkago.Message) domain.RawStep {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawStep{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
