// Package notify delivers password-reset links to users.
package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
)

// Notifier delivers link to recipient. A nil error means the message was
// handed off; any error means it was not delivered.
type Notifier interface {
	Send(ctx context.Context, link, recipient string) error
}

// Discard drops every message after logging the recipient.
type Discard struct {
	Logger logging.Logger
}

func (d Discard) Send(ctx context.Context, link, recipient string) error {
	if d.Logger != nil {
		d.Logger.Info(ctx, "password reset notification discarded", "recipient", recipient)
	}
	return nil
}

// New returns the notifier selected by c.Notifier. The returned close
// function releases backend resources and is never nil.
func New(c *config.Config, logger logging.Logger) (Notifier, func() error, error) {
	noop := func() error { return nil }

	switch c.Notifier {
	case config.NotifierDiscard, "":
		return Discard{Logger: logger}, noop, nil
	case config.NotifierSMTP:
		return NewSMTPNotifier(SMTPSettings{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			User:     c.SMTPUser,
			Password: c.SMTPPassword,
			From:     c.SMTPFrom,
		}), noop, nil
	case config.NotifierKafka:
		n := NewKafkaNotifier(c.KafkaBrokers, c.KafkaTopic)
		return n, n.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown notifier %q", c.Notifier)
	}
}
