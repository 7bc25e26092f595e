// Package worker runs the background email pipeline: a queue consumer that
// delivers queued email jobs over SMTP, and a daily sweep that enqueues
// next-day session reminders.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/emaillogs"
	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/pkg/mailer"
	"github.com/mentorhub/backend/pkg/queue"
)

// EmailProcessor consumes email jobs: send via SMTP, record in email_logs.
type EmailProcessor struct {
	logRepo *emaillogs.Repository
	mail    *mailer.Mailer
	queue   *queue.Queue
	logger  *zap.Logger
}

// NewEmailProcessor creates an email job processor.
func NewEmailProcessor(logRepo *emaillogs.Repository, mail *mailer.Mailer, q *queue.Queue, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{logRepo: logRepo, mail: mail, queue: q, logger: logger}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	el := &models.EmailLog{
		UserID:         payload.UserID,
		EmailType:      payload.EmailType,
		RecipientEmail: payload.RecipientEmail,
		Subject:        payload.Subject,
		Status:         models.EmailStatusQueued,
	}
	if err := p.logRepo.Create(ctx, el); err != nil {
		p.logger.Warn("create email log failed", zap.Error(err))
	}

	if err := p.mail.Send(payload.RecipientEmail, payload.Subject, payload.BodyHTML); err != nil {
		if el.ID != uuid.Nil {
			_ = p.logRepo.MarkFailed(ctx, el.ID, err.Error())
		}
		return fmt.Errorf("send email: %w", err)
	}
	if el.ID != uuid.Nil {
		_ = p.logRepo.MarkSent(ctx, el.ID, time.Now())
	}
	p.logger.Info("email sent",
		zap.String("email_type", payload.EmailType),
		zap.String("recipient", payload.RecipientEmail),
	)
	return nil
}

// Run consumes email jobs until ctx is cancelled. Failed jobs are retried
// with the queue's retry/DLQ policy.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("email job failed", zap.Error(err), zap.String("job_id", job.ID))
			if err := p.queue.Retry(ctx, job); err != nil {
				p.logger.Error("retry failed", zap.Error(err), zap.String("job_id", job.ID))
			}
		}
	}
}
