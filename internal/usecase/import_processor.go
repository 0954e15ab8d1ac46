package usecase

import (
	"context"
	"fmt"
	"time"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"
	"travella-service/pkg/logger"
	"travella-service/pkg/metrics"
)

// ImportProcessor manages booking email imports with multiple handlers
type ImportProcessor struct {
	emailRepo repository.EmailRepository
	router    SubjectRouter
	logger    logger.Logger
	metrics   *metrics.Metrics
	batchSize int
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(
	emailRepo repository.EmailRepository,
	router SubjectRouter,
	logger logger.Logger,
	metrics *metrics.Metrics,
	batchSize int,
) *ImportProcessor {
	return &ImportProcessor{
		emailRepo: emailRepo,
		router:    router,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// ProcessEmail imports a single email immediately after fetching
func (p *ImportProcessor) ProcessEmail(ctx context.Context, email *entity.Email) error {
	handler := p.router.GetHandler(email.Subject)
	if handler == nil {
		p.logger.Debug("No import handler for email",
			"subject", email.Subject,
			"emailID", email.EmailID)

		// Not an error, just nothing booking-shaped in the subject
		return p.emailRepo.MarkAsImported(
			ctx,
			email.EmailID,
			entity.StatusSkipped,
			"none",
			"No matching import handler",
			map[string]interface{}{
				"subject": email.Subject,
				"reason":  "no_matching_handler",
			},
		)
	}

	handlerType := fmt.Sprintf("%T", handler)
	p.logger.Info("Importing email",
		"emailID", email.EmailID,
		"handler", handlerType,
		"subject", email.Subject)

	if err := p.emailRepo.UpdateStatus(ctx, email.EmailID, entity.StatusProcessing, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if err := handler.Process(ctx, email); err != nil {
		p.logger.Error("Handler failed to import email",
			"emailID", email.EmailID,
			"handler", handlerType,
			"error", err)
		p.metrics.ErrorsCount.WithLabelValues("import").Inc()

		// Mark as failed but don't return error, let other emails continue
		p.emailRepo.MarkAsImported(
			ctx,
			email.EmailID,
			entity.StatusFailed,
			handlerType,
			err.Error(),
			nil,
		)
		return nil
	}

	return nil
}

// ProcessPendingEmails imports any emails that were missed or failed
func (p *ImportProcessor) ProcessPendingEmails(ctx context.Context) error {
	// Reset stale processing emails
	if err := p.emailRepo.ResetProcessingEmails(ctx); err != nil {
		p.logger.Error("Failed to reset stale emails", "error", err)
	}

	emails, err := p.emailRepo.FindUnprocessed(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to find unprocessed emails: %w", err)
	}

	if len(emails) == 0 {
		return nil
	}

	p.logger.Info("Importing pending emails", "count", len(emails))

	for _, email := range emails {
		if err := p.ProcessEmail(ctx, email); err != nil {
			p.logger.Error("Failed to import pending email",
				"emailID", email.EmailID,
				"error", err)
		}
	}

	return nil
}

// Start runs the pending import loop until the context is cancelled
func (p *ImportProcessor) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Import processor stopped")
			return
		case <-ticker.C:
			if err := p.ProcessPendingEmails(ctx); err != nil {
				p.logger.Error("Import pass failed", "error", err)
			}
		}
	}
}
