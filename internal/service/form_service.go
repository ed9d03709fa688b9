package service

import (
	"context"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// FormService stores contact form submissions.
type FormService struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewFormService creates a new form service
func NewFormService(store DocumentStore) *FormService {
	return &FormService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Submit appends the submission as a new document. The payload is an
// arbitrary object; shape validation happens at the HTTP boundary.
func (s *FormService) Submit(ctx context.Context, data map[string]interface{}) error {
	ctx, span := util.StartSpan(ctx, "FormService.Submit")
	defer span.End()

	id, err := s.store.Add(ctx, models.CollectionForms, data)
	if err != nil {
		util.FormSubmissionsFailedTotal.WithLabelValues("store_error").Inc()
		return fmt.Errorf("failed to store form submission: %w", err)
	}

	util.FormSubmissionsTotal.Inc()
	s.logger.Info("Form submission stored", zap.String("document_id", id))
	return nil
}
