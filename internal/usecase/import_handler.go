package usecase

import (
	"context"

	"travella-service/internal/domain/entity"
)

// ImportHandler defines the interface for booking email import handlers
type ImportHandler interface {
	// CanHandle determines if this handler can import the given email subject
	CanHandle(subject string) bool

	// Process extracts booking data from the email and persists it
	Process(ctx context.Context, email *entity.Email) error
}

// SubjectRouter routes emails to the appropriate handler based on subject
type SubjectRouter interface {
	// Register registers a handler for specific subject patterns
	Register(handler ImportHandler)

	// GetHandler returns the appropriate handler for a given subject
	GetHandler(subject string) ImportHandler
}
