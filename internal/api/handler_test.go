package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products map[string]*models.Product
}

func (s *stubCatalog) Lookup(_ context.Context, id string) (*models.Product, error) {
	return s.products[id], nil
}

type stubProvider struct {
	sessionID   string
	createErr   error
	verifyEvent *models.WebhookEvent
	verifyErr   error
	session     map[string]interface{}
	retrieveErr error
}

func (s *stubProvider) VerifyWebhook(_ []byte, _ string) (*models.WebhookEvent, error) {
	return s.verifyEvent, s.verifyErr
}

func (s *stubProvider) CreateSession(_ context.Context, _ []models.LineItem) (string, error) {
	return s.sessionID, s.createErr
}

func (s *stubProvider) RetrieveSession(_ context.Context, _ string) (map[string]interface{}, error) {
	return s.session, s.retrieveErr
}

type stubDocStore struct {
	puts   map[string]map[string]interface{}
	addErr error
	added  int
}

func (s *stubDocStore) Put(_ context.Context, _ string, id string, doc map[string]interface{}) error {
	if s.puts == nil {
		s.puts = make(map[string]map[string]interface{})
	}
	s.puts[id] = doc
	return nil
}

func (s *stubDocStore) Add(_ context.Context, _ string, _ map[string]interface{}) (string, error) {
	if s.addErr != nil {
		return "", s.addErr
	}
	s.added++
	return "generated-id", nil
}

func newTestRouter(provider *stubProvider, docs *stubDocStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalog := &stubCatalog{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Bag", ImageURLs: []string{"u1"}, Price: "50", ColorName: "Black"},
	}}

	handler := NewHandler(
		service.NewCheckoutService(catalog, provider, "usd"),
		service.NewFulfillmentService(provider, docs, nil),
		service.NewFormService(docs),
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutSession(t *testing.T) {
	router := newTestRouter(&stubProvider{sessionID: "cs_test_123"}, &stubDocStore{})

	w := doRequest(router, http.MethodPost, "/create-checkout-session",
		`[{"productId":"p1","quantity":2}]`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"cs_test_123"}`, w.Body.String())
}

func TestCreateCheckoutSessionMalformedBody(t *testing.T) {
	router := newTestRouter(&stubProvider{sessionID: "cs_test_123"}, &stubDocStore{})

	w := doRequest(router, http.MethodPost, "/create-checkout-session", `{"not":"an array"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckoutSessionEmptyCart(t *testing.T) {
	router := newTestRouter(&stubProvider{sessionID: "cs_test_123"}, &stubDocStore{})

	// Unknown product only: dropped, nothing left to sell
	w := doRequest(router, http.MethodPost, "/create-checkout-session",
		`[{"productId":"gone","quantity":1}]`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	router := newTestRouter(&stubProvider{createErr: errors.New("stripe unavailable")}, &stubDocStore{})

	w := doRequest(router, http.MethodPost, "/create-checkout-session",
		`[{"productId":"p1","quantity":1}]`, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWebhookBadSignature(t *testing.T) {
	router := newTestRouter(&stubProvider{verifyErr: errors.New("signature mismatch")}, &stubDocStore{})

	w := doRequest(router, http.MethodPost, "/webhook", `{}`,
		map[string]string{"Stripe-Signature": "t=1,v1=bad"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Webhook Error")
}

func TestWebhookCompletedSession(t *testing.T) {
	docs := &stubDocStore{}
	provider := &stubProvider{
		verifyEvent: &models.WebhookEvent{Type: models.EventTypeCheckoutCompleted, SessionID: "cs_1"},
		session:     map[string]interface{}{"id": "cs_1", "amount_total": int64(5000)},
	}
	router := newTestRouter(provider, docs)

	w := doRequest(router, http.MethodPost, "/webhook", `{}`,
		map[string]string{"Stripe-Signature": "t=1,v1=good"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.Len(t, docs.puts, 1)
	assert.Equal(t, provider.session, docs.puts["cs_1"])
}

func TestWebhookIgnoredEventType(t *testing.T) {
	docs := &stubDocStore{}
	provider := &stubProvider{
		verifyEvent: &models.WebhookEvent{Type: "payment_intent.created", SessionID: "pi_1"},
	}
	router := newTestRouter(provider, docs)

	w := doRequest(router, http.MethodPost, "/webhook", `{}`,
		map[string]string{"Stripe-Signature": "t=1,v1=good"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, docs.puts)
}

func TestSubmitForm(t *testing.T) {
	docs := &stubDocStore{}
	router := newTestRouter(&stubProvider{}, docs)

	w := doRequest(router, http.MethodPost, "/submit-form", `{"email":"a@b.com"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, 1, docs.added)
}

func TestSubmitFormNonObject(t *testing.T) {
	docs := &stubDocStore{}
	router := newTestRouter(&stubProvider{}, docs)

	w := doRequest(router, http.MethodPost, "/submit-form", `"just a string"`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false}`, w.Body.String())
	assert.Zero(t, docs.added)
}

func TestSubmitFormStoreError(t *testing.T) {
	docs := &stubDocStore{addErr: errors.New("mongo down")}
	router := newTestRouter(&stubProvider{}, docs)

	w := doRequest(router, http.MethodPost, "/submit-form", `{"email":"a@b.com"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &stubDocStore{})

	w := doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
