// Package kafka adapts segmentio/kafka-go readers and writers to the
// pipeline's Extractor and Loader interfaces.
package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/taf-validation-service/internal/config"
	"github.com/couchcryptid/taf-validation-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes raw TAF documents from the source topic.
// It implements pipeline.Extractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a consumer-group reader for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaSourceTopic,
		MaxWait:  cfg.BatchFlushInterval,
		MinBytes: 1,
		MaxBytes: 10 << 20,
	})
	return &Reader{reader: r, logger: logger}
}

// Extract fetches the next message without committing it. The returned
// document carries a commit callback the pipeline invokes once the report
// has been published.
func (r *Reader) Extract(ctx context.Context) (pipeline.RawDocument, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return pipeline.RawDocument{}, err
	}
	return mapMessageToRawDocument(r.reader, msg), nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawDocument converts a Kafka message to the pipeline's raw
// document form.
func mapMessageToRawDocument(reader *kafkago.Reader, msg kafkago.Message) pipeline.RawDocument {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	doc := pipeline.RawDocument{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
	if reader != nil {
		doc.Commit = func(ctx context.Context) error {
			return reader.CommitMessages(ctx, msg)
		}
	}
	return doc
}
