package notifications

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"cinebook/pkg/logger"
)

// NotificationService is the outer surface of the ticket email pipeline:
// publish on one side, lifecycle control on the other.
type NotificationService interface {
	SendNotification(ctx context.Context, notification *TicketNotification) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ServiceConfig struct {
	Environment        string
	KafkaBrokers       []string
	NotificationTopic  string
	ConsumerGroupID    string
	NumConsumerWorkers int
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPFromEmail      string
	SMTPFromName       string
}

func NewServiceConfigFromEnv() *ServiceConfig {
	return &ServiceConfig{
		Environment:        envOr("GIN_MODE", "development"),
		KafkaBrokers:       []string{envOr("KAFKA_BROKERS", "localhost:9092")},
		NotificationTopic:  envOr("NOTIFICATION_TOPIC", "ticket-notifications"),
		ConsumerGroupID:    envOr("CONSUMER_GROUP_ID", "cinebook-notification-workers"),
		NumConsumerWorkers: envOrInt("NUM_CONSUMER_WORKERS", 3),
		SMTPHost:           envOr("SMTP_HOST", ""),
		SMTPPort:           envOrInt("SMTP_PORT", 587),
		SMTPUsername:       envOr("SMTP_USERNAME", ""),
		SMTPPassword:       envOr("SMTP_PASSWORD", ""),
		SMTPFromEmail:      envOr("FROM_EMAIL", ""),
		SMTPFromName:       envOr("SMTP_FROM_NAME", "CineBook"),
	}
}

// EmailNotificationService wires the Kafka producer, the consumer workers,
// and an email sender into one start/stoppable unit
type EmailNotificationService struct {
	config       *ServiceConfig
	producer     NotificationProducer
	consumer     NotificationConsumer
	emailService EmailService
	log          *logger.Logger

	mu      sync.RWMutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewEmailNotificationService(config *ServiceConfig) (NotificationService, error) {
	if config == nil {
		config = NewServiceConfigFromEnv()
	}

	log := logger.GetDefault()

	// Without SMTP credentials, emails go to the mock sender so local
	// development still exercises the full pipeline
	var emailService EmailService
	if config.SMTPHost == "" || config.SMTPUsername == "" {
		log.Info("📧 SMTP not configured, using mock email sender")
		emailService = NewMockEmailService()
	} else {
		smtpService, err := NewSMTPEmailService(&SMTPConfig{
			Host:      config.SMTPHost,
			Port:      config.SMTPPort,
			Username:  config.SMTPUsername,
			Password:  config.SMTPPassword,
			FromEmail: config.SMTPFromEmail,
			FromName:  config.SMTPFromName,
			UseTLS:    true,
		})
		if err != nil {
			return nil, err
		}
		emailService = smtpService
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.NotificationTopic = config.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.NotificationTopic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Info("📧 Email notification service initialized", "smtp_host", config.SMTPHost, "smtp_port", config.SMTPPort)

	return &EmailNotificationService{
		config:       config,
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (s *EmailNotificationService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("notification service is already running")
	}

	if err := s.consumer.StartConsumers(s.ctx, s.config.NumConsumerWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.running = true
	s.log.Info("✅ Email notification service started", "workers", s.config.NumConsumerWorkers)
	return nil
}

func (s *EmailNotificationService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("notification service is not running")
	}

	s.cancel()

	if err := s.consumer.Stop(); err != nil {
		s.log.Error("Error stopping consumer", "error", err.Error())
	}
	if err := s.producer.Close(); err != nil {
		s.log.Error("Error closing producer", "error", err.Error())
	}

	s.running = false
	s.log.Info("✅ Email notification service stopped")
	return nil
}

func (s *EmailNotificationService) SendNotification(ctx context.Context, notification *TicketNotification) error {
	return s.producer.PublishNotification(ctx, notification)
}

func (s *EmailNotificationService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()

	if !running {
		return fmt.Errorf("notification service is not running")
	}

	if err := s.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}
	if err := s.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
