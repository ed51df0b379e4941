package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/taf-validation-service/internal/config"
	"github.com/couchcryptid/taf-validation-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes validation reports to the sink topic.
// It implements pipeline.Loader.
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

// Load publishes one validation report to the sink topic.
func (w *Writer) Load(ctx context.Context, report pipeline.OutputReport) error {
	return w.writer.WriteMessages(ctx, serializeToMessage(report))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage maps an output report onto a Kafka message.
func serializeToMessage(report pipeline.OutputReport) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(report.Headers))
	for _, key := range []string{"succeeded", "validated_at"} {
		if v, ok := report.Headers[key]; ok {
			headers = append(headers, kafkago.Header{Key: key, Value: []byte(v)})
		}
	}
	return kafkago.Message{
		Key:     report.Key,
		Value:   report.Value,
		Headers: headers,
	}
}
