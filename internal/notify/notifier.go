package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/martinlindhe/notify"

	"github.com/juststeveking/uptimed/internal/config"
)

// AppName is shown as the sender of desktop notifications
const AppName = "uptimed"

// Sink delivers one alert for a target that is down
type Sink interface {
	Notify(ctx context.Context, target, reason string) error
}

// Title returns the alert headline for a target
func Title(target string) string {
	return fmt.Sprintf("%s is down!", target)
}

// Body returns the alert text for a failure reason
func Body(reason string) string {
	return fmt.Sprintf("Responded with status code: %s", reason)
}

// Desktop sends desktop notifications for failed targets
type Desktop struct {
	show func(appName, title, text, iconPath string)
}

// NewDesktop creates a desktop notifier
func NewDesktop() *Desktop {
	return &Desktop{
		show: func(appName, title, text, iconPath string) {
			notify.Notify(appName, title, text, iconPath)
		},
	}
}

// Notify pops up a desktop notification
func (d *Desktop) Notify(ctx context.Context, target, reason string) error {
	d.show(AppName, Title(target), Body(reason), "")
	return nil
}

// Multi fans an alert out to every sink and returns the first error
type Multi []Sink

// Notify calls every sink, even after one fails
func (m Multi) Notify(ctx context.Context, target, reason string) error {
	var firstErr error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Notify(ctx, target, reason); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FromConfig builds the sinks enabled in cfg. Console alerts go to out.
func FromConfig(cfg config.Notifications, out io.Writer) Multi {
	var sinks Multi
	if cfg.Desktop {
		sinks = append(sinks, NewDesktop())
	}
	if cfg.Console {
		sinks = append(sinks, NewConsole(out))
	}
	if slack := NewSlack(cfg.SlackWebhook); slack != nil {
		sinks = append(sinks, slack)
	}
	return sinks
}
