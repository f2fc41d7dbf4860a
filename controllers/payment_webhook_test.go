package controllers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/controllers"
	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

type fakePaymentRepo struct {
	payments map[string]*models.Payment
	lookups  int
}

func (f *fakePaymentRepo) FindByReference(_ context.Context, reference string) (*models.Payment, error) {
	f.lookups++
	if p, ok := f.payments[reference]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) FindByOrderID(_ context.Context, _ uuid.UUID) ([]models.Payment, error) {
	return nil, nil
}

type fakeWebhookStore struct {
	settlements int
	declines    int
}

func (f *fakeWebhookStore) ApplySettlement(_ context.Context, _ *models.Payment, _ string) (bool, error) {
	f.settlements++
	return true, nil
}

func (f *fakeWebhookStore) ApplyDecline(_ context.Context, _ *models.Payment, _ string) (bool, error) {
	f.declines++
	return true, nil
}

func signBody(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookRouter(repo *fakePaymentRepo, store *fakeWebhookStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	gateway := services.NewPaystackClient("sk_test", testWebhookSecret, "http://gateway.invalid", 2*time.Second)
	reconciler := services.NewReconcileService(store, nil, nil, "", logger)
	wc := controllers.NewWebhookController(gateway, repo, reconciler, logger)

	r := gin.New()
	r.POST("/payments/webhook", wc.HandleWebhook)
	return r
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(controllers.SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pendingPayment(reference string) *models.Payment {
	return &models.Payment{
		ID:         uuid.New(),
		OrderID:    uuid.New(),
		CustomerID: uuid.New(),
		Amount:     2200,
		Currency:   "KES",
		Status:     models.PaymentStatusPending,
		Reference:  &reference,
	}
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`)
	w := postWebhook(r, body, "deadbeef")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, repo.lookups)
	assert.Equal(t, 0, store.settlements)
}

func TestHandleWebhook_MissingSignature(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	w := postWebhook(r, []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, repo.lookups)
}

func TestHandleWebhook_SuccessSettles(t *testing.T) {
	payment := pendingPayment("ref123")
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{"ref123": payment}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`)
	w := postWebhook(r, body, signBody(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "received")
	assert.Equal(t, 1, store.settlements)
	assert.Equal(t, 0, store.declines)
}

func TestHandleWebhook_ReplayAfterSettlement(t *testing.T) {
	payment := pendingPayment("ref123")
	payment.Status = models.PaymentStatusSettled
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{"ref123": payment}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`)
	w := postWebhook(r, body, signBody(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")
	assert.Equal(t, 0, store.settlements)
}

func TestHandleWebhook_FailureDeclines(t *testing.T) {
	payment := pendingPayment("ref456")
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{"ref456": payment}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`{"event":"charge.failed","data":{"reference":"ref456","status":"failed"}}`)
	w := postWebhook(r, body, signBody(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.declines)
	assert.Equal(t, 0, store.settlements)
}

func TestHandleWebhook_UnknownReferenceAcks(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`{"event":"charge.success","data":{"reference":"never-issued","status":"success"}}`)
	w := postWebhook(r, body, signBody(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
	assert.Equal(t, 0, store.settlements)
}

func TestHandleWebhook_MissingReference(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`{"event":"charge.success","data":{"status":"success"}}`)
	w := postWebhook(r, body, signBody(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWebhook_MalformedPayload(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[string]*models.Payment{}}
	store := &fakeWebhookStore{}
	r := newWebhookRouter(repo, store)

	body := []byte(`not-json`)
	w := postWebhook(r, body, signBody(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
