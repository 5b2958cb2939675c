package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buchetul-simonei/order-service/internal/entities"
	"github.com/buchetul-simonei/order-service/internal/export"
	"github.com/buchetul-simonei/order-service/internal/invoice"
	"github.com/buchetul-simonei/order-service/internal/normalize"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type OrdersRepo interface {
	FindAll(ctx context.Context) ([]bson.M, error)
	FindOne(ctx context.Context, filter bson.M) (bson.M, error)
	Insert(ctx context.Context, doc bson.M) error
	Update(ctx context.Context, filter, fields bson.M) (int64, error)
	Delete(ctx context.Context, filter bson.M) (int64, error)
}

type orderService struct {
	logger    *slog.Logger
	repo      OrdersRepo
	validator *normalize.Validator
	seller    invoice.Seller
}

func NewOrderService(logger *slog.Logger, repo OrdersRepo) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		repo:      repo,
		validator: normalize.NewValidator(),
		seller:    invoice.DefaultSeller,
	}
}

func (s *orderService) ExportOrdersXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.exportRows(ctx)
	if err != nil {
		return nil, err
	}
	data, err := export.BuildXLSX(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build spreadsheet: %w", err)
	}
	return data, nil
}

func (s *orderService) ExportOrdersCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.exportRows(ctx)
	if err != nil {
		return nil, err
	}
	data, err := export.BuildCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build csv: %w", err)
	}
	return data, nil
}

// exportRows reads every document fresh from the store and flattens it. Strict
// validation failures are absorbed here: the row falls back to best-effort
// extraction and the export proceeds.
func (s *orderService) exportRows(ctx context.Context) ([]normalize.Row, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]normalize.Row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, normalize.Normalize(doc, s.strictOrNil(doc)))
	}
	return rows, nil
}

func (s *orderService) BuildInvoice(ctx context.Context, orderID string) (entities.Invoice, error) {
	doc, err := s.resolveOrder(ctx, orderID)
	if err != nil {
		return entities.Invoice{}, err
	}

	strict := s.strictOrNil(doc)
	row := normalize.Normalize(doc, strict)
	lines := normalize.Lines(doc, strict)

	pdf, err := invoice.Build(s.seller, row, lines)
	if err != nil {
		return entities.Invoice{}, err
	}
	return entities.Invoice{OrderID: row["id"], PDF: pdf}, nil
}

func (s *orderService) strictOrNil(doc bson.M) *entities.Order {
	order, err := s.validator.ParseStrict(doc)
	if err != nil {
		// control signal only, never surfaced to the caller
		s.logger.Debug("strict validation failed, using fallback extraction",
			slog.String("id", normalize.DocumentID(doc)), slog.Any("error", err))
		return nil
	}
	return &order
}

func (s *orderService) CreateOrder(ctx context.Context, doc bson.M) (string, error) {
	id := normalize.DocumentID(doc)
	if id == "" {
		id = uuid.NewString()
		doc["id"] = id
	}

	if err := s.repo.Insert(ctx, doc); err != nil {
		return "", err
	}
	s.logger.Debug("order created", slog.String("id", id))
	return id, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (bson.M, error) {
	return s.resolveOrder(ctx, orderID)
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID string, fields bson.M) error {
	doc, err := s.resolveOrder(ctx, orderID)
	if err != nil {
		return err
	}

	matched, err := s.repo.Update(ctx, bson.M{"_id": doc["_id"]}, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return entities.ErrOrderNotFound
	}
	s.logger.Debug("order updated", slog.String("id", orderID))
	return nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	doc, err := s.resolveOrder(ctx, orderID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, bson.M{"_id": doc["_id"]})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return entities.ErrOrderNotFound
	}
	s.logger.Debug("order deleted", slog.String("id", orderID))
	return nil
}
