package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cinebook/pkg/logger"

	"github.com/IBM/sarama"
)

type NotificationConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	HeartbeatInterval    time.Duration
	MaxProcessingTime    time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "cinebook-notification-workers",
		Topics:               []string{"ticket-notifications"},
		SessionTimeout:       30 * time.Second,
		HeartbeatInterval:    3 * time.Second,
		MaxProcessingTime:    5 * time.Minute,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type kafkaConsumer struct {
	group        sarama.ConsumerGroup
	config       *ConsumerConfig
	emailService EmailService
	log          *logger.Logger

	stopCtx context.Context
	stop    context.CancelFunc
	workers sync.WaitGroup
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (NotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.HeartbeatInterval
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	stopCtx, stop := context.WithCancel(context.Background())

	return &kafkaConsumer{
		group:        group,
		config:       config,
		emailService: emailService,
		log:          logger.GetDefault(),
		stopCtx:      stopCtx,
		stop:         stop,
	}, nil
}

func (c *kafkaConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	c.log.Info("📥 Starting notification workers",
		"workers", numWorkers, "topics", c.config.Topics, "group", c.config.GroupID)

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("📥 Consumer group error", "error", err.Error())
		}
	}()

	for i := 0; i < numWorkers; i++ {
		c.workers.Add(1)
		go func(workerID int) {
			defer c.workers.Done()
			c.run(ctx, workerID)
		}(i)
	}

	return nil
}

// run rejoins the consumer group after every rebalance until the context ends
func (c *kafkaConsumer) run(ctx context.Context, workerID int) {
	handler := &ticketHandler{
		workerID:     workerID,
		emailService: c.emailService,
		maxRetries:   c.config.MaxRetries,
		backoff:      c.config.RetryBackoffDuration,
		log:          c.log,
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCtx.Done():
			return
		default:
			if err := c.group.Consume(ctx, c.config.Topics, handler); err != nil {
				c.log.Error("📥 Worker consume error", "worker", workerID, "error", err.Error())
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaConsumer) Stop() error {
	c.stop()
	c.workers.Wait()

	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.log.Info("📥 Notification consumer stopped")
	return nil
}

func (c *kafkaConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-c.stopCtx.Done():
		return fmt.Errorf("consumer stopped")
	default:
	}
	if c.emailService == nil {
		return fmt.Errorf("email service not configured")
	}
	return nil
}

// ticketHandler delivers one notification per message, retrying delivery
// with exponential backoff before giving up on the message.
type ticketHandler struct {
	workerID     int
	emailService EmailService
	maxRetries   int
	backoff      time.Duration
	log          *logger.Logger
}

func (h *ticketHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *ticketHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *ticketHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.deliver(session.Context(), message); err != nil {
				h.log.Error("📥 Failed to process notification",
					"worker", h.workerID, "offset", message.Offset, "error", err.Error())
			}
			// Mark regardless: a message that exhausted its retries is not
			// coming back, and redelivering it would just fail again
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *ticketHandler) deliver(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification TicketNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	if notification.IsExpired() {
		h.log.Info("📥 Skipping expired notification",
			"worker", h.workerID, "notification_id", notification.ID)
		return nil
	}

	notification.Status = NotificationStatusSending

	var err error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if err = h.emailService.SendNotification(ctx, &notification); err == nil {
			notification.MarkSent()
			h.log.Info("📧 Notification delivered",
				"worker", h.workerID, "recipient", notification.RecipientEmail,
				"type", notification.Type, "attempts", attempt+1)
			return nil
		}

		if attempt == h.maxRetries {
			break
		}

		delay := h.backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	notification.MarkFailed(err)
	return err
}
