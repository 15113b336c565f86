// Package notify delivers user-facing notifications: the transient toast
// board, the log, and an optional Discord webhook.
package notify

import (
	"errors"
	"time"

	"github.com/latoulicious/dexbox/pkg/logging"
)

// Kind classifies a notification.
type Kind string

const (
	KindConflict        Kind = "conflict"
	KindBoxAdded        Kind = "box_added"
	KindCatalogReloaded Kind = "catalog_reloaded"
	KindCatalogFailed   Kind = "catalog_failed"
	KindInfo            Kind = "info"
)

// BoxAddedMessage is shown when a record is saved as a new box entry.
const BoxAddedMessage = "已成功添加到箱子"

// Notification is one user-facing message. Detail carries kind-specific
// values such as the record number or the conflicting move.
type Notification struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Detail  map[string]string `json:"detail,omitempty"`
	Time    time.Time         `json:"time"`
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification) error

// Notify calls f.
func (f NotifierFunc) Notify(n Notification) error {
	return f(n)
}

// Fanout delivers to every notifier, even when some fail.
type Fanout []Notifier

// Notify delivers n everywhere and joins the errors.
func (f Fanout) Notify(n Notification) error {
	var errs []error
	for _, notifier := range f {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n at info level; failures are logged as warnings.
func (l *LogNotifier) Notify(n Notification) error {
	fields := map[string]interface{}{
		"kind": string(n.Kind),
	}
	for k, v := range n.Detail {
		fields[k] = v
	}

	if n.Kind == KindConflict || n.Kind == KindCatalogFailed {
		l.logger.Warn(n.Message, fields)
		return nil
	}
	l.logger.Info(n.Message, fields)
	return nil
}
