package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/config"
	"github.com/oksasatya/jobboard/pkg/helpers"
	"github.com/oksasatya/jobboard/pkg/mailer"
	mailtpl "github.com/oksasatya/jobboard/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// outcome says what to do with a delivery.
type outcome int

const (
	ack outcome = iota
	drop
	retry
)

var errNoContent = errors.New("email job has neither a template nor a subject with a body")

// render resolves the final subject and bodies of job.
func render(job *mailer.EmailJob) (subject, text, html string, err error) {
	if job.Template != "" {
		return mailtpl.Render(job.Template, job.Data)
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return "", "", "", errNoContent
	}
	return job.Subject, job.Text, job.HTML, nil
}

// handle decodes, renders and sends one queued message. Malformed jobs are
// dropped; send failures are requeued.
func handle(ctx context.Context, sender Sender, logger *logrus.Logger, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("bad message")
		return drop
	}
	helpers.EnsureRecipientAndEmail(&job)
	helpers.NormalizeTemplate(&job)
	if job.To == "" {
		logger.WithField("template", job.Template).Warn("email job without recipient")
		return drop
	}

	subject, text, html, err := render(&job)
	if err != nil {
		logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := sender.Send(c, job.To, subject, text, html); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Error("send failed")
		return retry
	}
	logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return ack
}

func settle(msg amqp.Delivery, o outcome) error {
	switch o {
	case ack:
		return msg.Ack(false)
	case retry:
		return msg.Nack(false, !msg.Redelivered)
	default:
		return msg.Nack(false, false)
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		return errors.New("rabbitmq not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		return errors.New("mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch between workers
	if err := ch.Qos(16, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	if _, err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			if err := settle(msg, handle(ctx, mg, logger, msg.Body)); err != nil {
				logger.WithError(err).Warn("settle delivery failed")
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-ctx.Done()
	logger.Info("shutting down")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("email worker stopped")
		os.Exit(1)
	}
}
