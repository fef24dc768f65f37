package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const resetSubject = "Reset your password"

// defaultSMTPTimeout caps the I/O of a single delivery. Context cancellation
// cuts it shorter.
const defaultSMTPTimeout = 30 * time.Second

// SMTPSettings configures the mail relay.
type SMTPSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPNotifier mails the reset link as a plain-text message.
type SMTPNotifier struct {
	settings SMTPSettings
	dial     func(ctx context.Context, network, addr string) (net.Conn, error)
	sendMail func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(s SMTPSettings) *SMTPNotifier {
	n := &SMTPNotifier{settings: s, dial: (&net.Dialer{}).DialContext}
	n.sendMail = n.deliver
	return n
}

func (n *SMTPNotifier) Send(ctx context.Context, link, recipient string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(recipient, "\r\n") {
		return fmt.Errorf("invalid recipient %q", recipient)
	}

	s := n.settings
	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}

	hdr := ""
	hdr += "From: " + s.From + "\r\n"
	hdr += "To: " + recipient + "\r\n"
	hdr += "Subject: " + resetSubject + "\r\n"
	hdr += "MIME-Version: 1.0\r\n"
	hdr += "Content-Type: text/plain; charset=UTF-8\r\n"
	hdr += "\r\n"

	body := "Use the link below to choose a new password. It expires shortly.\r\n\r\n" + link + "\r\n"

	if err := n.sendMail(ctx, net.JoinHostPort(s.Host, s.Port), auth, s.From, []string{recipient}, []byte(hdr+body)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// deliver runs one SMTP session on a connection bounded by ctx. STARTTLS and
// AUTH are used when the relay advertises them.
func (n *SMTPNotifier) deliver(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	conn, err := n.dial(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	if err := conn.SetDeadline(time.Now().Add(defaultSMTPTimeout)); err != nil {
		conn.Close()
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
