package service

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"talenthub_backend/internal/config"
	"talenthub_backend/internal/model"
)

// ScheduledRound is one line of the notification email.
type ScheduledRound struct {
	RoundNumber int
	Name        string
	ScheduledAt time.Time
	AccessLink  string
}

// ScheduleDetails is what the notification collaborator needs to render the
// "your interviews are scheduled" email.
type ScheduleDetails struct {
	CampaignTitle string
	Rounds        []ScheduledRound
}

// Notifier is the external notification collaborator. Fire-and-forget from the
// scheduler's perspective: a returned error becomes a warning, never a
// rollback.
type Notifier interface {
	SendInterviewScheduledEmail(ctx context.Context, candidate *model.Candidate, details ScheduleDetails) error
}

// SMTPNotifier delivers over plain SMTP with a bounded dial timeout.
type SMTPNotifier struct {
	cfg config.MailConfig
}

const smtpDialTimeout = 10 * time.Second

func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) SendInterviewScheduledEmail(ctx context.Context, candidate *model.Candidate, details ScheduleDetails) error {
	if n.cfg.Host == "" {
		return fmt.Errorf("mail transport not configured")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\r\n\r\nYour interviews for %q have been scheduled:\r\n\r\n",
		candidate.Name, details.CampaignTitle)
	for _, r := range details.Rounds {
		fmt.Fprintf(&body, "Round %d (%s): %s\r\n%s\r\n\r\n",
			r.RoundNumber, r.Name, r.ScheduledAt.Format("Mon, 02 Jan 2006 15:04"), r.AccessLink)
	}
	body.WriteString("Good luck!\r\n")

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your interviews are scheduled\r\n\r\n%s",
		n.cfg.From, candidate.Email, body.String())

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(candidate.Email); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
