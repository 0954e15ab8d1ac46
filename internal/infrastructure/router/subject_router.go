package router

import (
	"travella-service/internal/usecase"
	"travella-service/pkg/logger"
)

// SubjectRouter routes emails to appropriate import handlers based on subject
type SubjectRouter struct {
	handlers []usecase.ImportHandler
	logger   logger.Logger
}

// NewSubjectRouter creates a new subject router
func NewSubjectRouter(logger logger.Logger) *SubjectRouter {
	return &SubjectRouter{
		handlers: make([]usecase.ImportHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific subject patterns
func (r *SubjectRouter) Register(handler usecase.ImportHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered import handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given subject
func (r *SubjectRouter) GetHandler(subject string) usecase.ImportHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(subject) {
			return handler
		}
	}
	return nil
}
