// Package services доставляет уведомления из очереди на e-mail пользователя.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/lib/smtp"
	"github.com/magabrotheeeer/contentgen/internal/metrics"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

const subjectPrefix = "[ContentGen] "

// SenderService отправляет письма по сообщениям из очереди уведомлений.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendNotification обрабатывает одно сообщение очереди. Сообщения, которые невозможно
// разобрать, отбрасываются: повторная доставка их не исправит. Ошибка SMTP возвращается,
// и сообщение остаётся в очереди.
func (s *SenderService) SendNotification(_ context.Context, body []byte) error {
	var message models.NotificationMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body, dropping", sl.Err(err))
		metrics.EmailsSent.WithLabelValues(metrics.ResultRejected).Inc()
		return nil
	}
	if strings.TrimSpace(message.Email) == "" {
		s.log.Warn("notification message without recipient, dropping",
			slog.String("notification_id", message.NotificationID))
		metrics.EmailsSent.WithLabelValues(metrics.ResultRejected).Inc()
		return nil
	}

	name := message.Username
	if name == "" {
		name = message.Email
	}
	bodyText := fmt.Sprintf("Hello, %s!\n\n%s\n\nYou can find all your notifications in your ContentGen account.",
		name, message.Message)

	// Заголовок кодируется по RFC 2047: управляющие символы из title не попадут в заголовки письма.
	subject := mime.QEncoding.Encode("utf-8", subjectPrefix+message.Title)
	if err := s.sendEmail([]string{message.Email}, subject, bodyText); err != nil {
		metrics.EmailsSent.WithLabelValues(metrics.ResultFailed).Inc()
		return fmt.Errorf("services.sender.SendNotification: %w", err)
	}
	metrics.EmailsSent.WithLabelValues(metrics.ResultSent).Inc()
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.log.Debug("smtp client close", sl.Err(closeErr))
		}
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent", slog.Any("to", to))
	return nil
}
