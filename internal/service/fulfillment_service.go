package service

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxFulfillAttempts bounds retry re-publishes for one session.
const maxFulfillAttempts = 5

// FulfillmentService consumes verified payment webhooks and records
// completed transactions as order documents.
type FulfillmentService struct {
	provider PaymentProvider
	store    DocumentStore
	retries  RetryPublisher
	logger   *zap.Logger
}

// NewFulfillmentService creates a new fulfillment service. retries may be
// nil, in which case failed attempts are only logged.
func NewFulfillmentService(provider PaymentProvider, store DocumentStore, retries RetryPublisher) *FulfillmentService {
	return &FulfillmentService{
		provider: provider,
		store:    store,
		retries:  retries,
		logger:   util.GetLogger(),
	}
}

// HandleWebhook verifies a webhook delivery and fulfills the order when the
// event marks a completed checkout. A non-nil error means the signature did
// not verify and the caller must reject the delivery; every other outcome,
// including a failed fulfillment, is absorbed so the provider is not pushed
// into redelivery storms. Failed fulfillments are re-queued instead.
func (s *FulfillmentService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	ctx, span := util.StartSpan(ctx, "FulfillmentService.HandleWebhook")
	defer span.End()

	util.WebhooksReceivedTotal.Inc()

	event, err := s.provider.VerifyWebhook(payload, sigHeader)
	if err != nil {
		util.WebhooksRejectedTotal.Inc()
		s.logger.Warn("Webhook signature rejected", zap.Error(err))
		return err
	}

	if event.Type != models.EventTypeCheckoutCompleted {
		util.WebhooksIgnoredTotal.WithLabelValues(event.Type).Inc()
		return nil
	}

	if err := s.Fulfill(ctx, event.SessionID); err != nil {
		s.logger.Error("Fulfillment failed",
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		s.enqueueRetry(ctx, event.SessionID, 1, err)
	}

	return nil
}

// Fulfill retrieves the expanded session from the provider and writes it
// as the order document keyed by session id. Writing the same session id
// twice overwrites equivalent content, so redelivery needs no dedup check.
func (s *FulfillmentService) Fulfill(ctx context.Context, sessionID string) error {
	ctx, span := util.StartSpan(ctx, "FulfillmentService.Fulfill")
	defer span.End()

	s.logger.Info("Fulfilling order", zap.String("session_id", sessionID))

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		util.OrdersFulfillFailedTotal.WithLabelValues("retrieve_failed").Inc()
		return fmt.Errorf("failed to retrieve session: %w", err)
	}

	if err := s.store.Put(ctx, models.CollectionOrders, sessionID, session); err != nil {
		util.OrdersFulfillFailedTotal.WithLabelValues("persist_failed").Inc()
		return fmt.Errorf("failed to persist order: %w", err)
	}

	util.OrdersFulfilledTotal.Inc()
	s.logger.Info("Order fulfilled", zap.String("session_id", sessionID))
	return nil
}

// HandleRetry re-attempts a fulfillment from the retry queue. Exhausted
// attempts are logged and dropped; the order document can still be
// recovered manually from the provider's dashboard.
func (s *FulfillmentService) HandleRetry(ctx context.Context, event *models.FulfillmentRequestedEvent) error {
	err := s.Fulfill(ctx, event.SessionID)
	if err == nil {
		return nil
	}

	if event.Attempt >= maxFulfillAttempts {
		util.OrdersFulfillFailedTotal.WithLabelValues("retries_exhausted").Inc()
		s.logger.Error("Giving up on fulfillment after max attempts",
			zap.String("session_id", event.SessionID),
			zap.Int("attempts", event.Attempt),
			zap.Error(err))
		return nil
	}

	s.enqueueRetry(ctx, event.SessionID, event.Attempt+1, err)
	return nil
}

func (s *FulfillmentService) enqueueRetry(ctx context.Context, sessionID string, attempt int, cause error) {
	if s.retries == nil {
		return
	}

	event := &models.FulfillmentRequestedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeFulfillmentRequested,
			Timestamp: time.Now(),
		},
		SessionID: sessionID,
		Attempt:   attempt,
		Reason:    cause.Error(),
	}

	if err := s.retries.PublishFulfillmentRequested(ctx, event); err != nil {
		s.logger.Error("Failed to enqueue fulfillment retry",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}

	util.FulfillmentRetriesTotal.Inc()
}
