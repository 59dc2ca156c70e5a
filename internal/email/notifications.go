package email

import (
	"fmt"
	"log"

	"notiguard/internal/config"
	"notiguard/internal/models"
)

// DepartmentDirectory resolves a department or team name to its mailbox.
type DepartmentDirectory interface {
	EmailFor(department string) (string, bool)
}

type mailer interface {
	IsEnabled() bool
	SendEmail(to []string, subject, htmlBody, textBody string) error
	SendAsync(to []string, subject, htmlBody, textBody string)
}

// Notifier sends email notifications for inquiry events.
type Notifier struct {
	service   mailer
	templates *Templates
	cfg       *config.Config
	directory DepartmentDirectory
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, directory DepartmentDirectory) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		directory: directory,
	}
}

// NotifyInquiryCreated mails the inquiry to its department. It returns false
// when nothing was queued.
func (n *Notifier) NotifyInquiryCreated(inq *models.Inquiry) bool {
	if !n.service.IsEnabled() || n.directory == nil {
		return false
	}

	addr, ok := n.directory.EmailFor(inq.Department)
	if !ok {
		log.Printf("No mailbox configured for department %q, inquiry %s not mailed", inq.Department, inq.ID)
		return false
	}

	subject, htmlBody, textBody := n.templates.InquiryReceived(inq)
	n.service.SendAsync([]string{addr}, subject, htmlBody, textBody)
	return true
}

// NotifyPendingDigest mails a department the list of its unanswered inquiries.
func (n *Notifier) NotifyPendingDigest(department string, inquiries []models.Inquiry) error {
	if !n.service.IsEnabled() || n.directory == nil || len(inquiries) == 0 {
		return nil
	}

	addr, ok := n.directory.EmailFor(department)
	if !ok {
		return fmt.Errorf("no mailbox configured for department %q", department)
	}

	subject, htmlBody, textBody := n.templates.PendingDigest(department, inquiries)
	if err := n.service.SendEmail([]string{addr}, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send digest to %s: %w", department, err)
	}
	return nil
}
