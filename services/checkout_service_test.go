package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- fake checkout store ----

// fakeCheckoutStore prices every line at 1000 minor units, mirroring the
// totals arithmetic of the real store.
type fakeCheckoutStore struct {
	reserveErr  error
	attachErr   error
	compensated bool

	reserveCalled bool
	attachedRef   string
	lastPayment   *models.Payment
}

func (f *fakeCheckoutStore) ReserveAndCreate(_ context.Context, order *models.Order, lines []repository.CheckoutLine, taxRateBps int) (*models.Payment, error) {
	f.reserveCalled = true
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}

	subTotal := 0
	for _, line := range lines {
		subTotal += 1000 * line.Quantity
	}
	order.ID = uuid.New()
	order.SubTotal = subTotal
	order.Tax = subTotal * taxRateBps / 10000
	order.Total = order.SubTotal + order.ShippingCost + order.Tax
	order.Status = models.OrderStatusCreated

	f.lastPayment = &models.Payment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Amount:     order.Total,
		Currency:   order.Currency,
		Status:     models.PaymentStatusPending,
	}
	return f.lastPayment, nil
}

func (f *fakeCheckoutStore) AttachGatewayReference(_ context.Context, _ *models.Payment, reference, _ string) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attachedRef = reference
	return nil
}

func (f *fakeCheckoutStore) Compensate(_ context.Context, _ *models.Order, _ *models.Payment) error {
	f.compensated = true
	return nil
}

// ---- fake shipping resolver ----

type fakeResolver struct {
	cost int
	err  *services.ServiceError
}

func (f *fakeResolver) ResolveCost(_ context.Context, _, _, _ string) (int, *services.ServiceError) {
	return f.cost, f.err
}

// ---- fake gateway ----

type fakeGateway struct {
	initErr    error
	initCalled bool
	initAmount int
	verifyOut  string
}

func (f *fakeGateway) Initialize(_ context.Context, _ string, amount int, _, _ string) (*services.InitializeResult, error) {
	f.initCalled = true
	f.initAmount = amount
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &services.InitializeResult{Reference: "ref123", AuthorizationURL: "https://pay.example/ref123"}, nil
}

func (f *fakeGateway) Verify(_ context.Context, _ string) (string, error) { return f.verifyOut, nil }

func (f *fakeGateway) VerifySignature(_ []byte, _ string) bool { return true }

// ---- helpers ----

func validCheckoutRequest() *services.CheckoutRequest {
	return &services.CheckoutRequest{
		Items: []services.CheckoutItemRequest{
			{ProductID: uuid.New(), Quantity: 2},
		},
		Email:          "jane@example.com",
		ShippingMethod: models.ShippingMethodStandard,
		ShippingAddress: models.Address{
			Name: "Jane", Line1: "1 Moi Ave", Town: "Westlands", County: "Nairobi",
		},
	}
}

func newCheckoutService(store *fakeCheckoutStore, resolver *fakeResolver, gw *fakeGateway) *services.CheckoutService {
	logger, _ := zap.NewDevelopment()
	return services.NewCheckoutService(store, resolver, gw, "KES", 0, logger)
}

// ---- tests ----

func TestCheckout_ComputesTotalsServerSide(t *testing.T) {
	store := &fakeCheckoutStore{}
	gw := &fakeGateway{}
	svc := newCheckoutService(store, &fakeResolver{cost: 200}, gw)

	result, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.Nil(t, err)
	assert.Equal(t, 2000, result.Order.SubTotal)
	assert.Equal(t, 200, result.Order.ShippingCost)
	assert.Equal(t, 0, result.Order.Tax)
	assert.Equal(t, 2200, result.Order.Total)
	assert.Equal(t, result.Order.SubTotal+result.Order.ShippingCost+result.Order.Tax, result.Order.Total)
	assert.Equal(t, 2200, result.Payment.Amount)
	assert.Equal(t, 2200, gw.initAmount)
	assert.Equal(t, models.OrderStatusPaymentPending, result.Order.Status)
	assert.Equal(t, "ref123", *result.Payment.Reference)
	assert.Equal(t, "ref123", store.attachedRef)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	store := &fakeCheckoutStore{
		reserveErr: &repository.ErrInsufficientStock{ProductID: uuid.New(), Name: "Ngomo Sandals", Requested: 2},
	}
	gw := &fakeGateway{}
	svc := newCheckoutService(store, &fakeResolver{cost: 200}, gw)

	result, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.Nil(t, result)
	assert.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.Equal(t, services.KindStock, err.Kind)
	assert.Contains(t, err.Message, "Ngomo Sandals")
	assert.False(t, gw.initCalled)
	assert.False(t, store.compensated)
}

func TestCheckout_UnknownProduct(t *testing.T) {
	store := &fakeCheckoutStore{
		reserveErr: &repository.ErrProductNotFound{ProductID: uuid.New()},
	}
	svc := newCheckoutService(store, &fakeResolver{cost: 200}, &fakeGateway{})

	_, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestCheckout_GatewayFailureCompensates(t *testing.T) {
	store := &fakeCheckoutStore{}
	gw := &fakeGateway{initErr: errors.New("connection refused")}
	svc := newCheckoutService(store, &fakeResolver{cost: 200}, gw)

	result, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.Nil(t, result)
	assert.NotNil(t, err)
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	assert.Equal(t, services.KindGateway, err.Kind)
	assert.True(t, store.compensated)
}

func TestCheckout_AttachFailureCompensates(t *testing.T) {
	store := &fakeCheckoutStore{attachErr: errors.New("db down")}
	svc := newCheckoutService(store, &fakeResolver{cost: 200}, &fakeGateway{})

	result, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.Nil(t, result)
	assert.NotNil(t, err)
	assert.True(t, store.compensated)
}

func TestCheckout_ShippingErrorHasNoSideEffects(t *testing.T) {
	store := &fakeCheckoutStore{}
	resolver := &fakeResolver{err: services.NewValidationError("no shipping zone configured")}
	svc := newCheckoutService(store, resolver, &fakeGateway{})

	_, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.NotNil(t, err)
	assert.False(t, store.reserveCalled)
}

func TestCheckout_TaxApplied(t *testing.T) {
	store := &fakeCheckoutStore{}
	logger, _ := zap.NewDevelopment()
	// 1600 bps VAT
	svc := services.NewCheckoutService(store, &fakeResolver{cost: 200}, &fakeGateway{}, "KES", 1600, logger)

	result, err := svc.Checkout(context.Background(), uuid.New(), validCheckoutRequest())

	assert.Nil(t, err)
	assert.Equal(t, 320, result.Order.Tax)
	assert.Equal(t, 2000+200+320, result.Order.Total)
}

func TestCheckout_RejectsNonPositiveQuantity(t *testing.T) {
	store := &fakeCheckoutStore{}
	svc := newCheckoutService(store, &fakeResolver{cost: 200}, &fakeGateway{})

	req := validCheckoutRequest()
	req.Items[0].Quantity = 0
	_, err := svc.Checkout(context.Background(), uuid.New(), req)

	assert.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.False(t, store.reserveCalled)
}
