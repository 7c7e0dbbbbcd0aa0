// internal/app/poller.go
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// RetryPeriod is the pause between two poll iterations.
const RetryPeriod = 600 * time.Second

const keyCurrentDate = "current_date"

// CursorPolicy decides what happens to the poll cursor after a successful iteration.
type CursorPolicy int

const (
	// CursorFixed keeps the cursor at the start time, so every request asks
	// for everything that changed since the process started.
	CursorFixed CursorPolicy = iota
	// CursorAdvance moves the cursor to the server's current_date (or the
	// iteration start time when the response has none).
	CursorAdvance
)

func (p CursorPolicy) String() string {
	if p == CursorAdvance {
		return "advance"
	}
	return "fixed"
}

// MessageSender is the best-effort delivery contract the poll loop relies on.
type MessageSender interface {
	Notify(ctx context.Context, message string) DeliveryOutcome
}

// IterationReport summarises one fetch-validate-translate-notify pass.
type IterationReport struct {
	Cursor    int64 // cursor used for the fetch
	Items     int
	Delivered int
	Dropped   int // messages the notifier could not deliver
	Err       error
	Kind      homework.Kind
}

// PollService runs single poll iterations. It is not safe for concurrent use;
// the scheduler is its only caller.
type PollService struct {
	apiClient homework.Client
	sender    MessageSender
	logger    *logrus.Logger
	policy    CursorPolicy
	cursor    int64
	now       func() time.Time
}

func NewPollService(
	apiClient homework.Client,
	sender MessageSender,
	logger *logrus.Logger,
	policy CursorPolicy,
	start time.Time, // initial cursor
) *PollService {
	return &PollService{
		apiClient: apiClient,
		sender:    sender,
		logger:    logger,
		policy:    policy,
		cursor:    start.Unix(),
		now:       time.Now,
	}
}

// Cursor returns the timestamp the next fetch will use.
func (s *PollService) Cursor() int64 {
	return s.cursor
}

// RunIteration performs one pass. Failures are reported to the chat and
// returned in the report, never as an error.
func (s *PollService) RunIteration(ctx context.Context) IterationReport {
	started := s.now()
	report := IterationReport{Cursor: s.cursor}

	payload, err := s.apiClient.Fetch(ctx, s.cursor)
	var items []any
	if err == nil {
		items, err = ValidateResponse(payload)
	}
	if err == nil {
		report.Items = len(items)
		err = s.dispatch(ctx, items, &report)
	}
	if err != nil {
		s.handleFailure(ctx, err, &report)
		return report
	}

	if len(items) == 0 {
		s.logger.Debug("No new statuses")
	}
	s.advance(payload, started)
	return report
}

// dispatch translates and sends items in order. The first bad item stops the pass.
func (s *PollService) dispatch(ctx context.Context, items []any, report *IterationReport) error {
	for i, item := range items {
		message, err := TranslateStatus(item)
		if err != nil {
			return fmt.Errorf("домашняя работа #%d: %w", i+1, err)
		}
		s.deliver(ctx, message, report)
	}
	return nil
}

func (s *PollService) deliver(ctx context.Context, message string, report *IterationReport) {
	outcome := s.sender.Notify(ctx, message)
	if outcome.Delivered {
		report.Delivered++
		return
	}
	report.Dropped++
	s.logger.Errorf("Сбой при отправке сообщения в Telegram: %v", outcome.Err)
}

func (s *PollService) handleFailure(ctx context.Context, err error, report *IterationReport) {
	report.Err = err
	report.Kind = homework.KindOf(err)

	if ctx.Err() != nil {
		s.logger.Infof("Iteration interrupted by shutdown: %v", err)
		return
	}

	message := fmt.Sprintf("Сбой в работе программы: %v", err)
	s.logger.WithField("kind", report.Kind).Error(message)
	s.deliver(ctx, message, report)
}

func (s *PollService) advance(payload any, started time.Time) {
	if s.policy != CursorAdvance {
		return
	}
	next := started.Unix()
	if ts, ok := currentDate(payload); ok {
		next = ts
	}
	if next > s.cursor {
		s.logger.Debugf("Advancing poll cursor from %d to %d", s.cursor, next)
		s.cursor = next
	}
}

func currentDate(payload any) (int64, bool) {
	root, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := root[keyCurrentDate].(type) {
	case json.Number:
		ts, err := v.Int64()
		return ts, err == nil
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
