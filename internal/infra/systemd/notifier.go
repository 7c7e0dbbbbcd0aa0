// internal/infra/systemd/notifier.go
package systemd

import (
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"
)

// Notifier reports service state to systemd through sd_notify.
// Outside of a systemd unit (no NOTIFY_SOCKET) every call is a no-op.
type Notifier struct {
	logger *logrus.Logger
}

func NewNotifier(logger *logrus.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Ready tells systemd that startup finished.
func (n *Notifier) Ready() bool {
	return n.notify(daemon.SdNotifyReady)
}

// Heartbeat resets the systemd watchdog timer.
func (n *Notifier) Heartbeat() bool {
	return n.notify(daemon.SdNotifyWatchdog)
}

// Stopping tells systemd that shutdown began.
func (n *Notifier) Stopping() bool {
	return n.notify(daemon.SdNotifyStopping)
}

// WatchdogInterval returns the configured WatchdogSec, or zero when the watchdog is off.
func (n *Notifier) WatchdogInterval() time.Duration {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		n.logger.Warnf("Could not read systemd watchdog settings: %v", err)
		return 0
	}
	return interval
}

func (n *Notifier) notify(state string) bool {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		n.logger.Warnf("sd_notify %q failed: %v", state, err)
		return false
	}
	return sent
}
