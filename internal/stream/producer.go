// Package stream publishes table-status events to Kafka so front-of-house
// displays and downstream consumers can follow seating changes without
// polling the occupancy endpoint.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/shared/config"
	"seatly/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer implements the allocation layer's EventPublisher on top of
// a sarama SyncProducer.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash by date so one day's events stay ordered within a partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{producer: producer, topic: cfg.TableStatusTopic}, nil
}

func (p *Producer) PublishTableStatus(ctx context.Context, event allocations.TableStatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal table-status event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Date),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("occupant_type"), Value: []byte(event.OccupantType)},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send table-status event: %w", err)
	}

	logger.GetDefault().Debug("table-status event published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"event_type", event.EventType,
		"date", event.Date)

	return nil
}

func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
