package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"notiguard/internal/models"
)

// PendingInquirySource lists unanswered inquiries grouped by department.
type PendingInquirySource interface {
	PendingInquiriesByDepartment(ctx context.Context) (map[string][]models.Inquiry, error)
}

// DigestSender mails one department its pending inquiries.
type DigestSender interface {
	NotifyPendingDigest(department string, inquiries []models.Inquiry) error
}

// InquiryDigest emails every department a daily list of its pending inquiries.
type InquiryDigest struct {
	source PendingInquirySource
	sender DigestSender
	cron   *cron.Cron
	spec   string
}

// NewInquiryDigest schedules the digest at at ("HH:MM") in the named timezone.
func NewInquiryDigest(source PendingInquirySource, sender DigestSender, at, timezone string) (*InquiryDigest, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	spec, err := CronSpec(at)
	if err != nil {
		return nil, err
	}

	return &InquiryDigest{
		source: source,
		sender: sender,
		cron:   cron.New(cron.WithLocation(loc)),
		spec:   spec,
	}, nil
}

// Start runs the scheduler until ctx is cancelled.
func (j *InquiryDigest) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(ctx) }); err != nil {
		return fmt.Errorf("schedule inquiry digest: %w", err)
	}

	j.cron.Start()
	log.Printf("Inquiry digest scheduled (cron: %q, timezone: %s)", j.spec, j.cron.Location())

	<-ctx.Done()
	<-j.cron.Stop().Done()
	log.Println("Inquiry digest stopped")
	return nil
}

// Run sends one digest per department with pending inquiries and returns the
// number of digests sent.
func (j *InquiryDigest) Run(ctx context.Context) int {
	pending, err := j.source.PendingInquiriesByDepartment(ctx)
	if err != nil {
		log.Printf("Inquiry digest: failed to list pending inquiries: %v", err)
		return 0
	}

	departments := make([]string, 0, len(pending))
	for dept := range pending {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	sent := 0
	for _, dept := range departments {
		if ctx.Err() != nil {
			return sent
		}
		if err := j.sender.NotifyPendingDigest(dept, pending[dept]); err != nil {
			log.Printf("Inquiry digest: %v", err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("Inquiry digest: sent %d department digests", sent)
	}
	return sent
}

// CronSpec converts "HH:MM" into a daily cron expression.
func CronSpec(at string) (string, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(at), ":")
	if !ok {
		return "", fmt.Errorf("invalid digest time %q: must be HH:MM", at)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid digest hour in %q", at)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 || len(mm) != 2 {
		return "", fmt.Errorf("invalid digest minute in %q", at)
	}

	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
