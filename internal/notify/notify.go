package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rkbisoi/demo-loan-app-api/internal/config"
	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender emails back-office staff when an application is decided
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, logger: logger}
}

// SendDecisionNotification sends a summary of a decided application to the
// configured back-office address.
func (s *Sender) SendDecisionNotification(record models.ApplicationRecord) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.NotifyEmail}
	e.Subject = fmt.Sprintf("Loan application %s: %s", record.ID, record.Status)

	body := fmt.Sprintf(
		"A loan application has been processed.\n\n"+
			"Applicant: %s\n"+
			"Employment status: %s\n"+
			"Income: %.2f\n"+
			"Loan amount: %.2f\n"+
			"Decision: %s\n",
		record.Name, record.EmploymentStatus, record.Income, record.LoanAmount, record.Status,
	)
	if record.DecisionCode != nil {
		body += fmt.Sprintf("Decision code: %s\n", *record.DecisionCode)
	}
	body += fmt.Sprintf("Created at: %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", s.cfg.NotifyEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.NotifyEmail, e.Subject)
	return nil
}
