package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// IterationRunner runs one poll pass. *app.PollService implements it.
type IterationRunner interface {
	RunIteration(ctx context.Context) app.IterationReport
}

// Heartbeat is pinged after every iteration, e.g. to feed the systemd watchdog.
type Heartbeat interface {
	Heartbeat() bool
}

// PollScheduler runs the poll loop forever: one iteration, then a wait until
// the schedule's next activation, then the next iteration.
type PollScheduler struct {
	runner    IterationRunner
	schedule  cron.Schedule
	heartbeat Heartbeat
	logger    *logrus.Logger
	chain     cron.Chain

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// DefaultSchedule waits app.RetryPeriod after each iteration.
func DefaultSchedule() cron.Schedule {
	return cron.Every(app.RetryPeriod)
}

func NewPollScheduler(
	runner IterationRunner,
	schedule cron.Schedule,
	logger *logrus.Logger,
	heartbeat Heartbeat, // may be nil
) *PollScheduler {
	return &PollScheduler{
		runner:    runner,
		schedule:  schedule,
		heartbeat: heartbeat,
		logger:    logger,
		chain:     cron.NewChain(cron.Recover(cronLogger{logger})),
		done:      make(chan struct{}),
	}
}

// Start launches the loop in its own goroutine. The first iteration runs immediately.
func (s *PollScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.logger.Info("Starting homework poll scheduler...")
	go s.run(ctx)
}

// Stop interrupts the wait between iterations and blocks until the loop exits.
func (s *PollScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	s.logger.Info("Stopping homework poll scheduler...")
	cancel()
	<-s.done
	s.logger.Info("Homework poll scheduler gracefully stopped.")
}

// Done is closed when the loop exits, either after Stop or after a fatal failure.
func (s *PollScheduler) Done() <-chan struct{} {
	return s.done
}

// Err returns the fatal error that ended the loop, if any.
func (s *PollScheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *PollScheduler) run(ctx context.Context) {
	defer close(s.done)

	for {
		report, ok := s.runOnce(ctx)
		if ok && report.Kind.Fatal() {
			s.mu.Lock()
			s.err = fmt.Errorf("poll loop stopped: %w", report.Err)
			s.mu.Unlock()
			s.logger.WithField("kind", report.Kind).Errorf("Fatal failure, poll loop stops: %v", report.Err)
			return
		}
		if s.heartbeat != nil {
			s.heartbeat.Heartbeat()
		}

		now := time.Now()
		next := s.schedule.Next(now)
		s.logger.Debugf("Next poll at %s", next.Format(time.DateTime))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runOnce runs one iteration; ok is false when the iteration panicked.
func (s *PollScheduler) runOnce(ctx context.Context) (report app.IterationReport, ok bool) {
	job := s.chain.Then(cron.FuncJob(func() {
		report = s.runner.RunIteration(ctx)
		ok = true
	}))
	job.Run()

	if ok {
		s.logger.WithFields(logrus.Fields{
			"cursor":    report.Cursor,
			"items":     report.Items,
			"delivered": report.Delivered,
			"dropped":   report.Dropped,
		}).Info("Poll iteration finished")
	}
	return report, ok
}

// cronLogger adapts logrus to cron.Logger so cron.Recover reports panics in our log stream.
type cronLogger struct {
	logger *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Info(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
