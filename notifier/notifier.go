package notifier

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Notifier tells the user that a request failed.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier reports failures through the logger only.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier(log *logrus.Entry) *LogNotifier {
	return &LogNotifier{log: log.WithField("component", "notifier")}
}

func (n *LogNotifier) Notify(_ context.Context, message string) error {
	n.log.WithField("notification", message).Error("request failed")
	return nil
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
