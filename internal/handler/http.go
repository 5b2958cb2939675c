package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/buchetul-simonei/order-service/internal/entities"
	"github.com/buchetul-simonei/order-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypePDF  = "application/pdf"

	msgStoreUnavailable = "document store unavailable, set MONGO_URI to your connection string"
)

type OrderService interface {
	ExportOrdersXLSX(ctx context.Context) ([]byte, error)
	ExportOrdersCSV(ctx context.Context) ([]byte, error)
	BuildInvoice(ctx context.Context, orderID string) (entities.Invoice, error)

	CreateOrder(ctx context.Context, doc bson.M) (string, error)
	GetOrder(ctx context.Context, orderID string) (bson.M, error)
	UpdateOrder(ctx context.Context, orderID string, fields bson.M) error
	DeleteOrder(ctx context.Context, orderID string) error
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/", h.Health)
	r.Get("/export-orders", h.ExportOrders)
	r.Get("/export-orders.csv", h.ExportOrdersCSV)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{order_id}", h.GetOrder)
		r.Put("/{order_id}", h.UpdateOrder)
		r.Delete("/{order_id}", h.DeleteOrder)
		r.Get("/{order_id}/invoice.pdf", h.DownloadInvoice)
	})
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, StatusResponse{Status: "Backend functioneaza!"}, http.StatusOK)
}

// ExportOrders streams every order as a single-sheet spreadsheet.
// @Summary      Export orders as xlsx
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /export-orders [get]
func (h *HTTPHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.svc.ExportOrdersXLSX(ctx)
	if errors.Is(err, entities.ErrStoreUnavailable) {
		exportsTotal.WithLabelValues("xlsx", outcomeUnavailable).Inc()
		utils.WriteError(w, msgStoreUnavailable, http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		exportsTotal.WithLabelValues("xlsx", outcomeError).Inc()
		h.logger.ErrorContext(ctx, "failed to export orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	exportsTotal.WithLabelValues("xlsx", outcomeOK).Inc()
	utils.WriteAttachment(w, data, contentTypeXLSX, "comenzi.xlsx")
}

// ExportOrdersCSV streams every order as UTF-8 CSV with a byte-order mark.
// @Summary      Export orders as csv
// @Tags         exports
// @Produce      text/csv
// @Success      200
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /export-orders.csv [get]
func (h *HTTPHandler) ExportOrdersCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.svc.ExportOrdersCSV(ctx)
	if errors.Is(err, entities.ErrStoreUnavailable) {
		exportsTotal.WithLabelValues("csv", outcomeUnavailable).Inc()
		utils.WriteError(w, msgStoreUnavailable, http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		exportsTotal.WithLabelValues("csv", outcomeError).Inc()
		h.logger.ErrorContext(ctx, "failed to export orders csv", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	exportsTotal.WithLabelValues("csv", outcomeOK).Inc()
	utils.WriteAttachment(w, data, contentTypeCSV, "comenzi.csv")
}

// DownloadInvoice renders the PDF invoice for one order.
// @Summary      Download invoice PDF
// @Tags         invoices
// @Param        order_id  path  string  true  "Order identifier (custom id, native id or order number)"
// @Produce      application/pdf
// @Success      200
// @Failure      404  {object}  utils.NotFoundResponse "Order not found, lists attempted lookups"
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /orders/{order_id}/invoice.pdf [get]
func (h *HTTPHandler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	inv, err := h.svc.BuildInvoice(ctx, orderID)

	var notFound *entities.NotFoundError
	if errors.As(err, &notFound) {
		invoicesTotal.WithLabelValues(outcomeNotFound).Inc()
		utils.WriteNotFound(w, "order not found", notFound.Tried)
		return
	}
	if errors.Is(err, entities.ErrStoreUnavailable) {
		invoicesTotal.WithLabelValues(outcomeUnavailable).Inc()
		utils.WriteError(w, msgStoreUnavailable, http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		invoicesTotal.WithLabelValues(outcomeError).Inc()
		h.logger.ErrorContext(ctx, "failed to build invoice",
			slog.Any("error", err), slog.String("orderID", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	invoicesTotal.WithLabelValues(outcomeOK).Inc()
	filename := fmt.Sprintf("invoice_%s.pdf", inv.OrderID)
	utils.WriteAttachment(w, inv.PDF, contentTypePDF, filename)
}

// CreateOrder stores a new order document.
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Param        order  body  OrderRequest  true  "Order payload"
// @Success      201  {object}  CreatedResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	id, err := h.svc.CreateOrder(ctx, req.Document())
	if h.writeStoreError(w, r, err, "failed to create order") {
		return
	}

	utils.WriteJSON(w, CreatedResponse{ID: id}, http.StatusCreated)
}

// GetOrder returns one raw order document.
// @Summary      Get order
// @Tags         orders
// @Param        order_id  path  string  true  "Order identifier"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  utils.NotFoundResponse
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	doc, err := h.svc.GetOrder(ctx, orderID)
	if h.writeStoreError(w, r, err, "failed to get order") {
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

// UpdateOrder replaces the stored fields of one order.
// @Summary      Update order
// @Tags         orders
// @Param        order_id  path  string        true  "Order identifier"
// @Param        order     body  OrderRequest  true  "Order payload"
// @Success      204
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      404  {object}  utils.NotFoundResponse
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /orders/{order_id} [put]
func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	var req OrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.svc.UpdateOrder(ctx, orderID, req.Document())
	if h.writeStoreError(w, r, err, "failed to update order") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder removes one order document.
// @Summary      Delete order
// @Tags         orders
// @Param        order_id  path  string  true  "Order identifier"
// @Success      204
// @Failure      404  {object}  utils.NotFoundResponse
// @Failure      503  {object}  utils.ErrorResponse "Store unavailable"
// @Router       /orders/{order_id} [delete]
func (h *HTTPHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	err := h.svc.DeleteOrder(ctx, orderID)
	if h.writeStoreError(w, r, err, "failed to delete order") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps the shared error taxonomy of the CRUD endpoints and
// reports whether a response was already written.
func (h *HTTPHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error, logMsg string) bool {
	if err == nil {
		return false
	}

	var notFound *entities.NotFoundError
	switch {
	case errors.As(err, &notFound):
		utils.WriteNotFound(w, "order not found", notFound.Tried)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrStoreUnavailable):
		utils.WriteError(w, msgStoreUnavailable, http.StatusServiceUnavailable)
	default:
		h.logger.ErrorContext(r.Context(), logMsg, slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
	return true
}
