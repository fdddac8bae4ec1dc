package notifications

import (
	"context"
	"fmt"
	"time"

	"cinebook/pkg/logger"

	"github.com/IBM/sarama"
)

// NotificationProducer publishes ticket notifications to Kafka
type NotificationProducer interface {
	PublishNotification(ctx context.Context, notification *TicketNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type KafkaProducerConfig struct {
	Brokers           []string
	NotificationTopic string
	RetryMax          int
	TimeoutMs         int
	RequiredAcks      sarama.RequiredAcks
	CompressionType   sarama.CompressionCodec
	IdempotentWrites  bool
	MaxMessageBytes   int
}

func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:           []string{"localhost:9092"},
		NotificationTopic: "ticket-notifications",
		RetryMax:          3,
		TimeoutMs:         10000,
		RequiredAcks:      sarama.WaitForAll,
		CompressionType:   sarama.CompressionSnappy,
		IdempotentWrites:  true,
		MaxMessageBytes:   1000000,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

func NewKafkaNotificationProducer(config *KafkaProducerConfig) (NotificationProducer, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = config.RequiredAcks
	sc.Producer.Compression = config.CompressionType
	sc.Producer.Retry.Max = config.RetryMax
	sc.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	sc.Producer.Idempotent = config.IdempotentWrites
	sc.Producer.MaxMessageBytes = config.MaxMessageBytes
	if config.IdempotentWrites {
		// Idempotent production requires a single in-flight request
		sc.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one recipient's emails ordered
	sc.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log := logger.GetDefault()
	log.Info("📤 Kafka notification producer created")

	return &kafkaProducer{
		producer: producer,
		config:   config,
		log:      log,
	}, nil
}

func (p *kafkaProducer) PublishNotification(ctx context.Context, notification *TicketNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	payload, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     p.config.NotificationTopic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   p.buildHeaders(notification),
		Timestamp: notification.CreatedAt,
	})
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	p.log.Info("📤 Notification published",
		"topic", p.config.NotificationTopic, "partition", partition, "offset", offset,
		"type", notification.Type, "recipient", notification.RecipientEmail)

	return nil
}

// buildHeaders exposes routing metadata to consumers without forcing them
// to decode the payload
func (p *kafkaProducer) buildHeaders(notification *TicketNotification) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		{Key: []byte("priority"), Value: []byte(notification.Priority)},
		{Key: []byte("recipient_email"), Value: []byte(notification.RecipientEmail)},
		{Key: []byte("producer"), Value: []byte("cinebook-notifications")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}

	if notification.BookingID != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("booking_id"),
			Value: []byte(notification.BookingID.String()),
		})
	}
	if notification.BookingRef != "" {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("booking_ref"),
			Value: []byte(notification.BookingRef),
		})
	}

	return headers
}

func (p *kafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	p.log.Info("📤 Kafka notification producer closed")
	return nil
}

func (p *kafkaProducer) HealthCheck(ctx context.Context) error {
	if p.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if p.config.NotificationTopic == "" {
		return fmt.Errorf("health check failed - notification topic not configured")
	}
	return nil
}
