// Package notify contains the delivery channel adapters behind the
// notify.Notifier interface.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"rent_tracker/internal/domain/notify"
	"rent_tracker/internal/domain/reconcile"
)

// EmailNotifier delivers outcome notifications over SMTP. When no sender
// credentials are configured it runs in dev mode and logs the message instead
// of sending it, mirroring local development without a mail account.
type EmailNotifier struct {
	host     string
	port     int
	sender   string
	password string
	log      notify.DeliveryLog
	logger   *logrus.Logger
}

func NewEmailNotifier(host string, port int, sender, password string, deliveryLog notify.DeliveryLog, logger *logrus.Logger) *EmailNotifier {
	return &EmailNotifier{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		log:      deliveryLog,
		logger:   logger,
	}
}

func (e *EmailNotifier) NotifyLandlord(ctx context.Context, n notify.Notification) error {
	var subject, body, kind string
	addr := n.Property.Address
	due := n.DueDate.Format("2006-01-02")

	switch n.Outcome {
	case reconcile.OutcomeRentReceived:
		kind = "rent_received"
		subject = fmt.Sprintf("Rent Received - %s", addr)
		body = renderBody("Rent Payment Received",
			fmt.Sprintf("A rent payment of $%s for %s (tenant %s) was detected in your bank account on the cycle due %s.",
				n.Received.StringFixed(2), addr, n.Property.TenantName, due))
	case reconcile.OutcomeAmountMismatch:
		kind = "rent_amount_mismatch"
		subject = fmt.Sprintf("Rent Amount Mismatch - %s", addr)
		body = renderBody("Rent Amount Mismatch",
			fmt.Sprintf("A payment of $%s was received for %s (tenant %s), but $%s was expected for the cycle due %s.",
				n.Received.StringFixed(2), addr, n.Property.TenantName, n.Expected.StringFixed(2), due))
	case reconcile.OutcomeRentMissed:
		kind = "rent_missed"
		subject = fmt.Sprintf("Rent Payment Missed - %s", addr)
		body = renderBody("Rent Payment Missed",
			fmt.Sprintf("No rent payment of $%s was detected for %s (tenant %s) for the cycle due %s. You may want to contact your tenant.",
				n.Expected.StringFixed(2), addr, n.Property.TenantName, due))
	default:
		return fmt.Errorf("no landlord email defined for outcome %s", n.Outcome)
	}

	return e.send(ctx, n.Landlord.Email, subject, body, kind)
}

func (e *EmailNotifier) NotifyTenant(ctx context.Context, n notify.Notification) error {
	if !n.Property.TenantEmail.Valid {
		return fmt.Errorf("property %d has no tenant email", n.Property.ID)
	}
	subject := fmt.Sprintf("Rent Payment Reminder - %s", n.Property.Address)
	body := renderBody("Rent Payment Reminder",
		fmt.Sprintf("Hi %s, this is a friendly reminder from %s that your rent payment of $%s for %s appears to be outstanding.",
			n.Property.TenantName, n.Landlord.FullName(), n.Expected.StringFixed(2), n.Property.Address))
	return e.send(ctx, n.Property.TenantEmail.String, subject, body, "tenant_reminder")
}

func (e *EmailNotifier) send(ctx context.Context, recipient, subject, body, kind string) error {
	var sendErr error
	if e.sender == "" || e.password == "" {
		e.logger.WithFields(logrus.Fields{
			"recipient": recipient,
			"subject":   subject,
			"kind":      kind,
		}).Info("Email credentials not configured; dev mode, message logged only")
	} else {
		msg := strings.Join([]string{
			"From: " + e.sender,
			"To: " + recipient,
			"Subject: " + subject,
			"MIME-Version: 1.0",
			"Content-Type: text/html; charset=\"UTF-8\"",
			"",
			body,
		}, "\r\n")
		auth := smtp.PlainAuth("", e.sender, e.password, e.host)
		sendErr = smtp.SendMail(fmt.Sprintf("%s:%d", e.host, e.port), auth, e.sender, []string{recipient}, []byte(msg))
	}

	e.recordAttempt(ctx, recipient, subject, kind, sendErr)
	if sendErr != nil {
		return fmt.Errorf("sending %s email to %s: %w", kind, recipient, sendErr)
	}
	return nil
}

// recordAttempt writes the audit row. Audit failures are logged, never
// propagated: the message outcome is what matters to the caller.
func (e *EmailNotifier) recordAttempt(ctx context.Context, recipient, subject, kind string, sendErr error) {
	if e.log == nil {
		return
	}
	rec := &notify.DeliveryRecord{
		Recipient: recipient,
		Subject:   subject,
		Kind:      kind,
		Channel:   "email",
		Sent:      sendErr == nil,
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	if err := e.log.Record(ctx, rec); err != nil {
		e.logger.WithError(err).Warn("Failed to record email delivery attempt")
	}
}

func renderBody(heading, text string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
    <h1>%s</h1>
    <p>%s</p>
    <p>Best regards,<br>The Rent Tracker Team</p>
  </div>
</body>
</html>`, heading, text)
}
