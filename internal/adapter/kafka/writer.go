package kafka

import (
	"context"
	"log/slog"

	"github.com/clearbrook/stream-temp-sim/internal/config"
	"github.com/clearbrook/stream-temp-sim/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces step-output messages to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes multiple output messages in a single WriteMessages
// call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, msgs []domain.OutputMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	kafkaMsgs := make([]kafkago.Message, len(msgs))
	for i := range msgs {
		kafkaMsgs[i] = mapOutputToMessage(msgs[i])
	}
	return w.writer.WriteMessages(ctx, kafkaMsgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// mapOutputToMessage converts an OutputMessage into a Kafka message with
// headers in a stable order.
func mapOutputToMessage(out domain.OutputMessage) kafkago.Message {
	msg := kafkago.Message{
		Key:   out.Key,
		Value: out.Value,
	}
	for _, key := range []string{"step_time", "processed_at"} {
		if v, ok := out.Headers[key]; ok {
			msg.Headers = append(msg.Headers, kafkago.Header{Key: key, Value: []byte(v)})
		}
	}
	return msg
}
