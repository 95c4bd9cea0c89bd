package services

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/logging"
)

// Notifier delivers messages addressed to a user.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogNotifier writes notifications to the log instead of sending them.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notifier")}
}

func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, link string) error {
	n.logger.Info(ctx, "Password reset requested", "email", email, "link", link)
	return nil
}
