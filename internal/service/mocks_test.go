package service

import (
	"context"
	"sync"

	"storefront-service/internal/models"
)

// mockCatalog implements ProductLookup for testing
type mockCatalog struct {
	products map[string]*models.Product
	err      error
}

func (m *mockCatalog) Lookup(_ context.Context, id string) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products[id], nil
}

// mockProvider implements PaymentProvider for testing
type mockProvider struct {
	verifyEvent *models.WebhookEvent
	verifyErr   error

	sessionID    string
	createErr    error
	createdItems []models.LineItem
	createCalls  int

	sessions      map[string]map[string]interface{}
	retrieveErr   error
	retrieveCalls int
}

func (m *mockProvider) VerifyWebhook(_ []byte, _ string) (*models.WebhookEvent, error) {
	return m.verifyEvent, m.verifyErr
}

func (m *mockProvider) CreateSession(_ context.Context, items []models.LineItem) (string, error) {
	m.createCalls++
	m.createdItems = items
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.sessionID, nil
}

func (m *mockProvider) RetrieveSession(_ context.Context, id string) (map[string]interface{}, error) {
	m.retrieveCalls++
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.sessions[id], nil
}

// mockDocStore implements DocumentStore for testing
type mockDocStore struct {
	mu     sync.Mutex
	docs   map[string]map[string]map[string]interface{}
	added  []map[string]interface{}
	putErr error
	addErr error
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]map[string]map[string]interface{})}
}

func (m *mockDocStore) Put(_ context.Context, collection, id string, doc map[string]interface{}) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]map[string]interface{})
	}
	m.docs[collection][id] = doc
	return nil
}

func (m *mockDocStore) Add(_ context.Context, _ string, doc map[string]interface{}) (string, error) {
	if m.addErr != nil {
		return "", m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, doc)
	return "generated-id", nil
}

// mockRetryPublisher implements RetryPublisher for testing
type mockRetryPublisher struct {
	events []*models.FulfillmentRequestedEvent
	err    error
}

func (m *mockRetryPublisher) PublishFulfillmentRequested(_ context.Context, event *models.FulfillmentRequestedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}
