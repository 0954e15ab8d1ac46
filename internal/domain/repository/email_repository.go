package repository

import (
	"context"
	"time"

	"travella-service/internal/domain/entity"
)

// EmailRepository defines the interface for imported email storage
type EmailRepository interface {
	Save(ctx context.Context, email *entity.Email) error
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Email, error)
	FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error)
	FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error)
	GetLastEmail(ctx context.Context) (*entity.Email, error)
	UpdateStatus(ctx context.Context, emailID string, status string, startedAt time.Time) error
	MarkAsImported(ctx context.Context, emailID, status, importerType, errorDetail string, extractedData map[string]interface{}) error
	UpdateImportSteps(ctx context.Context, emailID string, steps entity.ImportSteps) error
	ResetProcessingEmails(ctx context.Context) error
}
