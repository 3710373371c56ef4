package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/config"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
)

const (
	dialTimeout = 10 * time.Second
	// implicitTLSPort порт SMTPS: TLS поднимается сразу, без STARTTLS.
	implicitTLSPort = "465"
)

// ErrNoStartTLS сервер не объявил расширение STARTTLS.
var ErrNoStartTLS = errors.New("smtp server does not support STARTTLS")

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Transport открывает аутентифицированные TLS-сессии к почтовому серверу.
type Transport struct {
	cfg  config.SMTP
	log  *slog.Logger
	dial dialFunc
}

type clientWrapper struct {
	*smtp.Client
}

// NewTransport создает новый экземпляр Transport.
func NewTransport(cfg config.SMTP, log *slog.Logger) *Transport {
	d := &net.Dialer{Timeout: dialTimeout}
	return &Transport{cfg: cfg, log: log, dial: d.DialContext}
}

func (t *Transport) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
}

// Connect подключается к серверу. На порту 465 используется неявный TLS, на остальных
// обязателен STARTTLS. PLAIN-аутентификация выполняется, если задан пользователь.
func (t *Transport) Connect() (Client, error) {
	const op = "smtp.Connect"
	addr := net.JoinHostPort(t.cfg.SMTPHost, t.cfg.SMTPPort)
	log := t.log.With(slog.String("addr", addr))

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := t.dial(ctx, "tcp", addr)
	if err != nil {
		log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}
	if t.cfg.SMTPPort == implicitTLSPort {
		conn = tls.Client(conn, t.tlsConfig())
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		_ = conn.Close()
		log.Error("failed to create SMTP client", sl.Err(err))
		return nil, fmt.Errorf("%s: handshake: %w", op, err)
	}

	fail := func(stage string, err error) (Client, error) {
		if closeErr := client.Close(); closeErr != nil {
			log.Debug("smtp client close", sl.Err(closeErr))
		}
		log.Error("smtp session setup failed", slog.String("stage", stage), sl.Err(err))
		return nil, fmt.Errorf("%s: %s: %w", op, stage, err)
	}

	if t.cfg.SMTPPort != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return fail("starttls", ErrNoStartTLS)
		}
		if err := client.StartTLS(t.tlsConfig()); err != nil {
			return fail("starttls", err)
		}
	}

	if t.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPass, t.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fail("auth", err)
		}
	}

	return clientWrapper{client}, nil
}

// GetSMTPUser возвращает адрес отправителя.
func (t *Transport) GetSMTPUser() string {
	return t.cfg.SMTPUser
}
