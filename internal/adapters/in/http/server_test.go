package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "logistics/internal/adapters/in/http"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "test-secret"

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockAssignOrder struct{ mock.Mock }

func (m *MockAssignOrder) Handle(ctx context.Context, cmd commands.AssignOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockVerifyPayment struct{ mock.Mock }

func (m *MockVerifyPayment) Handle(ctx context.Context, cmd commands.VerifyPaymentCommand) (commands.PaymentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.PaymentResult), args.Error(1)
}

type MockWebhook struct{ mock.Mock }

func (m *MockWebhook) Handle(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

type fixture struct {
	e           *echo.Echo
	createOrder *MockCreateOrder
	getOrder    *MockGetOrder
	assign      *MockAssignOrder
	verify      *MockVerifyPayment
	webhook     *MockWebhook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		createOrder: &MockCreateOrder{},
		getOrder:    &MockGetOrder{},
		assign:      &MockAssignOrder{},
		verify:      &MockVerifyPayment{},
		webhook:     &MockWebhook{},
	}
	doc, err := api.LoadSpec(context.Background())
	require.NoError(t, err)

	server := api.NewServer(api.Handlers{
		CreateOrder:      f.createOrder,
		GetOrder:         f.getOrder,
		AssignOrder:      f.assign,
		VerifyPayment:    f.verify,
		PaymentWebhook:   f.webhook,
		QuoteDeliveryFee: queries.NewQuoteDeliveryFeeQueryHandler(),
	}, secret, zap.NewNop())
	f.e, err = server.NewEcho(doc)
	require.NoError(t, err)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, role identity.Role) string {
	t.Helper()
	actor, err := identity.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	raw, err := api.IssueToken([]byte(secret), actor, time.Hour, time.Now())
	require.NoError(t, err)
	return raw
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const newOrderBody = `{
	"customer_name": "Chidi Okafor",
	"customer_phone": "+2348030000000",
	"pickup": {"line": "5 Broad St, Lagos Island"},
	"delivery": {"line": "12 Admiralty Way, Lekki"},
	"delivery_fee": "1500"
}`

func TestLoadSpec(t *testing.T) {
	doc, err := api.LoadSpec(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/payments/webhook"))
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestAuthentication(t *testing.T) {
	f := newFixture(t)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/orders", newOrderBody, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "missing bearer token", decodeError(t, rec).Message)
	})

	t.Run("wrong signature", func(t *testing.T) {
		actor, err := identity.NewActor(kernel.NewUUID(), identity.Manager)
		require.NoError(t, err)
		forged, err := api.IssueToken([]byte("other-secret"), actor, time.Hour, time.Now())
		require.NoError(t, err)

		rec := f.do(t, http.MethodPost, "/api/v1/orders", newOrderBody, forged)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		actor, err := identity.NewActor(kernel.NewUUID(), identity.Manager)
		require.NoError(t, err)
		expired, err := api.IssueToken([]byte(secret), actor, time.Minute, time.Now().Add(-time.Hour))
		require.NoError(t, err)

		rec := f.do(t, http.MethodPost, "/api/v1/orders", newOrderBody, expired)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestTokenRoundTrip(t *testing.T) {
	actor, err := identity.NewActor(kernel.NewUUID(), identity.Rider)
	require.NoError(t, err)
	raw, err := api.IssueToken([]byte(secret), actor, time.Hour, time.Now())
	require.NoError(t, err)

	parsed, err := api.ParseToken([]byte(secret), raw)

	require.NoError(t, err)
	assert.Equal(t, identity.Rider, parsed.Role())
	assert.Equal(t, *actor.UserID(), *parsed.UserID())

	_, err = api.IssueToken([]byte(secret), identity.SystemActor(), time.Hour, time.Now())
	assert.Error(t, err)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.createOrder.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateOrderCommand")).
		Return(commands.CreateOrderResult{ID: id, Number: "ORD-20260602-ABC123", DeliveryFee: decimal.NewFromInt(1500)}, nil).
		Once()

	rec := f.do(t, http.MethodPost, "/api/v1/orders", newOrderBody, token(t, identity.Manager))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":"`+id.String()+`","number":"ORD-20260602-ABC123","delivery_fee":"1500.00"}`, rec.Body.String())
	f.createOrder.AssertExpectations(t)
}

func TestRequestValidation(t *testing.T) {
	f := newFixture(t)
	manager := token(t, identity.Manager)

	t.Run("missing required field", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/orders", `{"customer_name":"Chidi"}`, manager)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		body := strings.Replace(newOrderBody, `{"line": "5 Broad St, Lagos Island"}`,
			`{"line": "5 Broad St", "latitude": 123, "longitude": 3.4}`, 1)

		rec := f.do(t, http.MethodPost, "/api/v1/orders", body, manager)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed order id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/orders/not-a-uuid", "", manager)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, "/api/v1/orders", "", manager)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	f.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound, ""},
		{"permission denied", errs.NewPermissionDeniedError("read order"), http.StatusForbidden, ""},
		{"conflict", errs.NewConflictError("order", "x"), http.StatusConflict, ""},
		{"gateway", ports.ErrPaymentGateway, http.StatusBadGateway, ""},
		{"internal", assert.AnError, http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderView{}, tt.err).Once()

			rec := f.do(t, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", token(t, identity.Manager))

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.status, resp.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, resp.Message)
			}
		})
	}
}

func TestAssignOrder(t *testing.T) {
	f := newFixture(t)
	orderID, riderID := kernel.NewUUID(), kernel.NewUUID()
	f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignOrderCommand) bool {
		return cmd.OrderID() == orderID && cmd.RiderID() == riderID && cmd.Actor().Role() == identity.Manager
	})).Return(nil).Once()

	rec := f.do(t, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/assign",
		`{"rider_id":"`+riderID.String()+`"}`, token(t, identity.Manager))

	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	f.assign.AssertExpectations(t)
}

func TestQuote(t *testing.T) {
	f := newFixture(t)

	t.Run("by distance", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/quote?km=5", "", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"distance_km":5,"delivery_fee":"800.00","rider_share":"560.00"}`, rec.Body.String())
	})

	t.Run("nothing to price", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/quote", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("half a coordinate pair", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/quote?pickup_lat=6.45&delivery_lat=6.43&delivery_lng=3.42", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVerifyPayment(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()
	f.verify.On("Handle", mock.Anything, mock.AnythingOfType("commands.VerifyPaymentCommand")).
		Return(commands.PaymentResult{
			Reference: "TXN-1", OrderID: orderID, Amount: decimal.RequireFromString("1250.5"),
			Currency: "NGN", Status: payment.Success,
		}, nil).
		Once()

	rec := f.do(t, http.MethodGet, "/api/v1/payments/verify/TXN-1", "", token(t, identity.Rider))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"reference":"TXN-1","order_id":"`+orderID.String()+`","amount":"1250.50","currency":"NGN","status":"SUCCESS"}`,
		rec.Body.String())
}

func TestPaymentWebhook(t *testing.T) {
	payload := `{"event":"charge.success","data":{"reference":"TXN-1"}}`

	t.Run("passes raw body and signature", func(t *testing.T) {
		f := newFixture(t)
		f.webhook.On("Handle", mock.Anything, []byte(payload), "abc123").Return(nil).Once()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("x-paystack-signature", "abc123")
		rec := httptest.NewRecorder()

		f.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.webhook.AssertExpectations(t)
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newFixture(t)
		f.webhook.On("Handle", mock.Anything, mock.Anything, "").
			Return(errs.NewPermissionDeniedError("accept webhook")).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/payments/webhook", payload, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
