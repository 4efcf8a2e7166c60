package service

import (
	"context"
	"errors"

	orderserrors "dopo/internal/orders/errors"
	"dopo/internal/orders/repository"
	"dopo/internal/events"
	"dopo/pkg/config"
	mongostore "dopo/pkg/db/mongo"
	apperrors "dopo/pkg/errors"
	"dopo/pkg/model"
)

type OrderService interface {
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (string, error)
}

type orderService struct {
	repo      repository.OrderRepository
	publisher events.Publisher
	cfg       *config.Config
}

func NewOrderService(repo repository.OrderRepository, publisher events.Publisher, cfg *config.Config) OrderService {
	return &orderService{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list orders", "error", err)
		return nil, mongostore.StoreError("Failed to retrieve orders", err)
	}
	return orders, nil
}

func (s *orderService) Create(ctx context.Context, order model.Order) (string, error) {
	if order == nil {
		return "", apperrors.InvalidInput("order must be a JSON object")
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		if errors.Is(err, orderserrors.ErrDuplicateID) {
			return "", apperrors.Conflict("Order with this _id already exists")
		}
		s.cfg.Log.Error("Failed to create order", "error", err)
		return "", mongostore.StoreError("Failed to create order", err)
	}

	s.cfg.Log.Info("Order created", "id", id, "fields", len(order))

	if err := s.publisher.Publish(ctx, events.OrderCreated(id, order)); err != nil {
		s.cfg.Log.Warn("Failed to publish order event",
			"order_id", id,
			"error", err,
		)
	}

	return id, nil
}
