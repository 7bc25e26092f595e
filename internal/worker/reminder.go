package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/bookings"
	"github.com/mentorhub/backend/internal/timeslot"
	"github.com/mentorhub/backend/pkg/queue"
)

// ReminderSweeper enqueues session-reminder emails once a day for bookings
// LeadDays ahead.
type ReminderSweeper struct {
	bookingRepo  *bookings.Repository
	queue        *queue.Queue
	sweepHourUTC int
	leadDays     int
	logger       *zap.Logger
	now          func() time.Time
}

// NewReminderSweeper creates a reminder sweeper.
func NewReminderSweeper(bookingRepo *bookings.Repository, q *queue.Queue, sweepHourUTC, leadDays int, logger *zap.Logger) *ReminderSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if leadDays <= 0 {
		leadDays = 1
	}
	return &ReminderSweeper{
		bookingRepo:  bookingRepo,
		queue:        q,
		sweepHourUTC: sweepHourUTC,
		leadDays:     leadDays,
		logger:       logger,
		now:          time.Now,
	}
}

// NextSweep returns the next occurrence of hourUTC after now.
func NextSweep(now time.Time, hourUTC int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run sweeps at the configured hour until ctx is cancelled.
func (s *ReminderSweeper) Run(ctx context.Context) {
	for {
		wait := time.Until(NextSweep(s.now(), s.sweepHourUTC))
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("reminder sweep failed", zap.Error(err))
		}
	}
}

// Sweep enqueues one reminder per participant for each scheduled booking on
// the target date.
func (s *ReminderSweeper) Sweep(ctx context.Context) error {
	target := s.now().UTC().AddDate(0, 0, s.leadDays).Format(timeslot.DateLayout)
	rows, err := s.bookingRepo.ListForReminder(ctx, target)
	if err != nil {
		return fmt.Errorf("list bookings for %s: %w", target, err)
	}

	enqueued := 0
	for _, row := range rows {
		row := row
		subject := fmt.Sprintf("Session reminder: %s %s-%s", row.SessionDate, row.StartTime, row.EndTime)
		mentorBody := fmt.Sprintf("<p>Hi %s,</p><p>You have a mentoring session with %s on %s from %s to %s.</p>",
			row.MentorName, row.MenteeName, row.SessionDate, row.StartTime, row.EndTime)
		menteeBody := fmt.Sprintf("<p>Hi %s,</p><p>You have a mentoring session with %s on %s from %s to %s.</p>",
			row.MenteeName, row.MentorName, row.SessionDate, row.StartTime, row.EndTime)

		jobs := []queue.EmailPayload{
			{EmailType: queue.EmailTypeSessionReminder, UserID: &row.MentorUser, RecipientEmail: row.MentorEmail, Subject: subject, BodyHTML: mentorBody},
			{EmailType: queue.EmailTypeSessionReminder, UserID: &row.MenteeUser, RecipientEmail: row.MenteeEmail, Subject: subject, BodyHTML: menteeBody},
		}
		for _, payload := range jobs {
			if err := s.queue.EnqueueEmail(ctx, payload); err != nil {
				s.logger.Error("enqueue reminder failed", zap.Error(err), zap.String("booking_id", row.BookingID.String()))
				continue
			}
			enqueued++
		}
	}

	s.logger.Info("reminder sweep done",
		zap.String("target_date", target),
		zap.Int("bookings", len(rows)),
		zap.Int("emails_enqueued", enqueued),
	)
	return nil
}
