package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buchetul-simonei/order-service/internal/entities"
	"github.com/buchetul-simonei/order-service/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) ExportOrdersXLSX(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) ExportOrdersCSV(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) BuildInvoice(ctx context.Context, orderID string) (entities.Invoice, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Invoice), args.Error(1)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, doc bson.M) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID string) (bson.M, error) {
	args := m.Called(ctx, orderID)
	if doc, ok := args.Get(0).(bson.M); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) UpdateOrder(ctx context.Context, orderID string, fields bson.M) error {
	return m.Called(ctx, orderID, fields).Error(0)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func newRouter(t *testing.T) (*mockOrderService, chi.Router) {
	t.Helper()
	svc := new(mockOrderService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, svc)

	r := chi.NewRouter()
	h.Init(r)
	return svc, r
}

func TestHTTPHandler_ExportOrders(t *testing.T) {
	testCases := []struct {
		name            string
		path            string
		mockBehavior    func(svc *mockOrderService)
		wantStatus      int
		wantDisposition string
		wantBody        string
	}{
		{
			name: "xlsx success",
			path: "/export-orders",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("ExportOrdersXLSX", mock.Anything).Return([]byte("PK-fake"), nil).Once()
			},
			wantStatus:      http.StatusOK,
			wantDisposition: "attachment; filename=comenzi.xlsx",
			wantBody:        "PK-fake",
		},
		{
			name: "csv success",
			path: "/export-orders.csv",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("ExportOrdersCSV", mock.Anything).Return([]byte("id,userId"), nil).Once()
			},
			wantStatus:      http.StatusOK,
			wantDisposition: "attachment; filename=comenzi.csv",
			wantBody:        "id,userId",
		},
		{
			name: "xlsx store unavailable",
			path: "/export-orders",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("ExportOrdersXLSX", mock.Anything).
					Return(nil, entities.ErrStoreUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "document store unavailable",
		},
		{
			name: "csv store unavailable",
			path: "/export-orders.csv",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("ExportOrdersCSV", mock.Anything).
					Return(nil, entities.ErrStoreUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "document store unavailable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newRouter(t)
			tc.mockBehavior(svc)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
			if tc.wantDisposition != "" {
				assert.Equal(t, tc.wantDisposition, res.Header.Get("Content-Disposition"))
			}
		})
	}
}

func TestHTTPHandler_DownloadInvoice(t *testing.T) {
	testCases := []struct {
		name         string
		orderID      string
		mockBehavior func(svc *mockOrderService)
		wantStatus   int
		wantBody     string
		checkHeaders func(t *testing.T, h http.Header)
	}{
		{
			name:    "success",
			orderID: "abc123",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("BuildInvoice", mock.Anything, "abc123").
					Return(entities.Invoice{OrderID: "abc123", PDF: []byte("%PDF-fake")}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "%PDF-fake",
			checkHeaders: func(t *testing.T, h http.Header) {
				assert.Equal(t, "application/pdf", h.Get("Content-Type"))
				assert.Equal(t, "attachment; filename=invoice_abc123.pdf", h.Get("Content-Disposition"))
			},
		},
		{
			name:    "not found lists attempted strategies",
			orderID: "xyz",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("BuildInvoice", mock.Anything, "xyz").
					Return(entities.Invoice{}, &entities.NotFoundError{Tried: []string{"id=xyz", "_id=xyz"}}).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"tried":["id=xyz","_id=xyz"]`,
		},
		{
			name:    "store unavailable",
			orderID: "abc123",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("BuildInvoice", mock.Anything, "abc123").
					Return(entities.Invoice{}, entities.ErrStoreUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "document store unavailable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newRouter(t)
			tc.mockBehavior(svc)

			req := httptest.NewRequest(http.MethodGet, "/orders/"+tc.orderID+"/invoice.pdf", nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
			if tc.checkHeaders != nil {
				tc.checkHeaders(t, res.Header)
			}
		})
	}
}

const validOrderBody = `{
	"userId": "user-1",
	"orderNumber": 57,
	"clientName": "Ana",
	"clientEmail": "ana@example.com",
	"clientPhone": "0700000000",
	"clientAddress": "Str. Unirii 1",
	"orderDate": "2025-05-01T12:00:00Z",
	"status": "Pending",
	"totalPrice": 30,
	"paymentMethod": "card",
	"products": [{"id": "p1", "title": "Rose", "price": 10, "category": "flowers", "quantity": 3}]
}`

func TestHTTPHandler_CreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.On("CreateOrder", mock.Anything, mock.Anything).Return("new-id", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(validOrderBody))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"new-id"`)
	})

	t.Run("validation error", func(t *testing.T) {
		svc, r := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/orders",
			strings.NewReader(`{"clientEmail": "not-an-email", "status": "Shipped"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid request")
		svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, r := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHTTPHandler_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.On("GetOrder", mock.Anything, "u-1").
			Return(bson.M{"id": "u-1", "clientName": "Ana"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/u-1", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"clientName":"Ana"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.On("GetOrder", mock.Anything, "nope").
			Return(nil, &entities.NotFoundError{Tried: []string{"id=nope", "_id=nope"}}).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/nope", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "tried")
	})
}

func TestHTTPHandler_DeleteOrder(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.On("DeleteOrder", mock.Anything, "u-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/orders/u-1", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("store unavailable", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.On("DeleteOrder", mock.Anything, "u-1").Return(entities.ErrStoreUnavailable).Once()

		req := httptest.NewRequest(http.MethodDelete, "/orders/u-1", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestHTTPHandler_UpdateOrder(t *testing.T) {
	svc, r := newRouter(t)
	svc.On("UpdateOrder", mock.Anything, "u-1", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/orders/u-1", strings.NewReader(validOrderBody))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}

func TestHTTPHandler_Health(t *testing.T) {
	_, r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "functioneaza")
}
