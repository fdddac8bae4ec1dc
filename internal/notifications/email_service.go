package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"cinebook/pkg/logger"
)

// EmailService sends ticket emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *TicketNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	return &SMTPEmailService{config: config}, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *TicketNotification) error {
	logger.GetDefault().Info("📧 Sending notification",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"name", notification.RecipientName)

	htmlBody, textBody := generateContent(notification)
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.GetDefault().Info("📧 Email sent", "to", to)
	return nil
}

func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	if err = client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage assembles a multipart/alternative MIME message with the
// plain-text part first so clients prefer the HTML rendering
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	writePart := func(contentType, body string) {
		if body == "" {
			return
		}
		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		fmt.Fprintf(&msg, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
		msg.WriteString(body + "\r\n")
	}
	writePart("text/plain", textBody)
	writePart("text/html", htmlBody)

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return []byte(msg.String())
}

func generateContent(notification *TicketNotification) (string, string) {
	data := notification.TemplateData

	switch notification.Type {
	case NotificationTypeBookingConfirmed:
		htmlBody := fmt.Sprintf(`
			<h2>🎟️ Booking Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your tickets for <strong>%v</strong> at <strong>%v</strong> are confirmed!</p>
			<p>Date: %v at %v</p>
			<p>Seats: %v</p>
			<p>Booking Reference: <strong>%s</strong></p>
			<p>Total: Rs. %v</p>
			<p>See you at the movies,<br>CineBook Team</p>
		`,
			notification.RecipientName,
			data["movie_title"],
			data["theatre_name"],
			data["showtime_date"],
			data["showtime_time"],
			data["seats"],
			notification.BookingRef,
			data["total_price"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour tickets for %v at %v are confirmed!\nDate: %v at %v\nSeats: %v\nBooking Reference: %s\nTotal: Rs. %v\n\nSee you at the movies,\nCineBook Team",
			notification.RecipientName,
			data["movie_title"],
			data["theatre_name"],
			data["showtime_date"],
			data["showtime_time"],
			data["seats"],
			notification.BookingRef,
			data["total_price"],
		)

		return htmlBody, textBody

	case NotificationTypeBookingCancelled:
		htmlBody := fmt.Sprintf(`
			<h2>❌ Booking Cancelled</h2>
			<p>Hi %s,</p>
			<p>Your booking <strong>%s</strong> for <strong>%v</strong> has been cancelled.</p>
			<p>Best regards,<br>CineBook Team</p>
		`,
			notification.RecipientName,
			notification.BookingRef,
			data["movie_title"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour booking %s for %v has been cancelled.\n\nBest regards,\nCineBook Team",
			notification.RecipientName,
			notification.BookingRef,
			data["movie_title"],
		)

		return htmlBody, textBody

	default:
		htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>This is a notification from CineBook.</p>
			<p>Best regards,<br>CineBook Team</p>
		`,
			notification.Subject,
			notification.RecipientName,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThis is a notification from CineBook.\n\nBest regards,\nCineBook Team",
			notification.RecipientName,
		)

		return htmlBody, textBody
	}
}

type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *TicketNotification) error {
	logger.GetDefault().Info("📧 [MOCK] Sending notification",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"name", notification.RecipientName)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger.GetDefault().Info("📧 [MOCK] Email",
		"to", to, "subject", subject, "body", strings.TrimSpace(htmlBody))
	return nil
}
