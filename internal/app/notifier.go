// internal/app/notifier.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/delivery"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Telegram allows roughly one message per second to a single chat.
const defaultSendInterval = time.Second

// DeliveryOutcome is the result of one best-effort send.
type DeliveryOutcome struct {
	Delivered bool
	Err       error
}

type NotifierOption func(*Notifier)

// WithSendRate overrides the outbound pacing.
func WithSendRate(limit rate.Limit, burst int) NotifierOption {
	return func(n *Notifier) { n.limiter = rate.NewLimiter(limit, burst) }
}

// WithJournal records every delivery attempt in repo.
func WithJournal(repo delivery.Repository) NotifierOption {
	return func(n *Notifier) { n.journal = repo }
}

// Notifier delivers messages to the configured chat at most once.
// Failures are reported in the outcome and never returned as errors.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         string
	limiter        *rate.Limiter
	journal        delivery.Repository
	logger         *logrus.Logger
	now            func() time.Time
}

func NewNotifier(tc domainTelegram.Client, chatID string, logger *logrus.Logger, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		limiter:        rate.NewLimiter(rate.Every(defaultSendInterval), 1),
		logger:         logger,
		now:            time.Now,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Notify sends message to the chat. It never panics on transport failure and never retries.
func (n *Notifier) Notify(ctx context.Context, message string) DeliveryOutcome {
	n.logger.Debugf("Attempting to send message: %q", message)

	outcome := n.send(ctx, message)
	if outcome.Delivered {
		n.logger.Debugf("Message sent successfully: %q", message)
	}
	n.record(ctx, message, outcome)
	return outcome
}

func (n *Notifier) send(ctx context.Context, message string) (outcome DeliveryOutcome) {
	defer func() {
		// A panicking transport counts as a failed delivery.
		if r := recover(); r != nil {
			outcome = DeliveryOutcome{Err: fmt.Errorf("telegram client panic: %v", r)}
		}
	}()

	if err := n.limiter.Wait(ctx); err != nil {
		return DeliveryOutcome{Err: fmt.Errorf("waiting for send slot: %w", err)}
	}
	if err := n.telegramClient.SendMessage(n.chatID, message); err != nil {
		return DeliveryOutcome{Err: fmt.Errorf("failed to send message to chat %s: %w", n.chatID, err)}
	}
	return DeliveryOutcome{Delivered: true}
}

func (n *Notifier) record(ctx context.Context, message string, outcome DeliveryOutcome) {
	if n.journal == nil {
		return
	}
	rec := &delivery.Record{
		ChatID:    n.chatID,
		Message:   message,
		Delivered: outcome.Delivered,
		SentAt:    n.now(),
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}
	// Records are written even after the poll context is cancelled.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := n.journal.Save(saveCtx, rec); err != nil {
		n.logger.Warnf("Failed to record delivery attempt: %v", err)
	}
}
