package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

// Only email is implemented
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusExpired  NotificationStatus = "EXPIRED"
)

// TicketNotification is the payload carried through Kafka for booking emails.
// Guest checkouts have no account, so the recipient comes from the customer
// details on the booking rather than a user record.
type TicketNotification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
	BookingRef  string     `json:"booking_ref,omitempty"`
	ShowtimeKey string     `json:"showtime_key,omitempty"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

type NotificationBuilder struct {
	notification *TicketNotification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &TicketNotification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			MaxRetries:   3,
			TemplateData: make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Priority = GetDefaultPriority(notType)
	return nb
}

func (nb *NotificationBuilder) WithRecipient(email, name string) *NotificationBuilder {
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(data map[string]interface{}) *NotificationBuilder {
	nb.notification.TemplateData = data
	return nb
}

func (nb *NotificationBuilder) WithBookingContext(bookingID uuid.UUID, bookingRef, showtimeKey string) *NotificationBuilder {
	nb.notification.BookingID = &bookingID
	nb.notification.BookingRef = bookingRef
	nb.notification.ShowtimeKey = showtimeKey
	return nb
}

func (nb *NotificationBuilder) WithMaxRetries(maxRetries int) *NotificationBuilder {
	nb.notification.MaxRetries = maxRetries
	return nb
}

func (nb *NotificationBuilder) Build() *TicketNotification {
	return nb.notification
}

func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeBookingConfirmed:
		return NotificationPriorityHigh
	case NotificationTypeBookingCancelled:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityMedium
	}
}

// GetPartitionKey keeps all of one customer's emails on one partition
func (tn *TicketNotification) GetPartitionKey() string {
	return tn.RecipientEmail
}

func (tn *TicketNotification) ToJSON() ([]byte, error) {
	return json.Marshal(tn)
}

func (tn *TicketNotification) IsExpired() bool {
	return tn.ExpiresAt != nil && time.Now().After(*tn.ExpiresAt)
}

func (tn *TicketNotification) ShouldRetry() bool {
	return tn.RetryCount < tn.MaxRetries &&
		tn.Status == NotificationStatusFailed &&
		!tn.IsExpired()
}

func (tn *TicketNotification) MarkSent() {
	now := time.Now()
	tn.Status = NotificationStatusSent
	tn.SentAt = &now
	tn.UpdatedAt = now
}

func (tn *TicketNotification) MarkFailed(err error) {
	now := time.Now()
	tn.Status = NotificationStatusFailed
	tn.UpdatedAt = now

	errorStr := err.Error()
	tn.LastError = &errorStr
}

func (tn *TicketNotification) IncrementRetry() {
	tn.RetryCount++
	tn.UpdatedAt = time.Now()
	if tn.ShouldRetry() {
		tn.Status = NotificationStatusRetrying
	} else {
		tn.Status = NotificationStatusExpired
	}
}
