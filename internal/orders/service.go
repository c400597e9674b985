package orders

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/models"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/pricing"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/store"
)

// ErrNotPending is returned when a status transition is attempted on an
// order that already left the PENDING state.
var ErrNotPending = errors.New("order is not pending")

// RecomputeTotal recalculates an order total after a quantity edit.
// Rate is the per-unit price locked at creation, so the new total is
// simply the new quantity times that rate, rounded to the nearest rupee.
func RecomputeTotal(rate, newQuantity float64) float64 {
	return math.Round(newQuantity * rate)
}

// CreateRequest carries the staff input for a new order.
type CreateRequest struct {
	UserName  string  `json:"userName"`
	UserPhone string  `json:"userPhone"`
	Type      string  `json:"type"`
	Item      string  `json:"item"`
	Quantity  float64 `json:"quantity"`
}

// Service owns order lifecycle: creation with a locked price, quantity
// edits, status transitions and deletion.
type Service struct {
	logger *zap.Logger
	store  *store.Store
}

// NewService creates an order service.
func NewService(logger *zap.Logger, st *store.Store) *Service {
	return &Service{
		logger: logger.Named("orders"),
		store:  st,
	}
}

// Create derives the current customer price for the requested product,
// locks it onto a new PENDING order and persists it. The locked rate is
// never recalculated afterwards.
func (s *Service) Create(req CreateRequest) (*models.Order, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", req.Quantity)
	}
	if req.Type != models.OrderTypeBuy && req.Type != models.OrderTypeSell {
		return nil, fmt.Errorf("invalid order type %q", req.Type)
	}

	bundle, err := s.store.LoadBundle()
	if err != nil {
		return nil, err
	}
	markup, err := s.store.LoadMarkup()
	if err != nil {
		return nil, err
	}

	price, err := pricing.ProductPrice(bundle, markup, req.Item, req.Type)
	if err != nil {
		return nil, fmt.Errorf("could not price order: %w", err)
	}

	order := &models.Order{
		OrderID:     uuid.NewString(),
		UserName:    req.UserName,
		UserPhone:   req.UserPhone,
		Type:        req.Type,
		Item:        req.Item,
		Quantity:    req.Quantity,
		Rate:        price,
		TotalAmount: RecomputeTotal(price, req.Quantity),
		Status:      models.OrderStatusPending,
		Timestamp:   time.Now().Unix(),
	}

	if err := s.store.CreateOrder(order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.String("item", order.Item),
		zap.Float64("rate", order.Rate),
		zap.Float64("total", order.TotalAmount),
	)
	return order, nil
}

// EditQuantity changes an order's quantity and recomputes its total from
// the locked rate. Edits are allowed regardless of status; only the
// quantity and total fields are touched.
func (s *Service) EditQuantity(orderID string, newQuantity float64) (*models.Order, error) {
	if newQuantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", newQuantity)
	}

	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	newTotal := RecomputeTotal(order.Rate, newQuantity)
	if err := s.store.UpdateOrderAmounts(orderID, newQuantity, newTotal); err != nil {
		return nil, err
	}

	order.Quantity = newQuantity
	order.TotalAmount = newTotal

	s.logger.Info("Order quantity updated",
		zap.String("order_id", orderID),
		zap.Float64("quantity", newQuantity),
		zap.Float64("total", newTotal),
	)
	return order, nil
}

// Complete transitions a PENDING order to COMPLETED.
func (s *Service) Complete(orderID string) error {
	affected, err := s.store.CompleteOrder(orderID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the order doesn't exist or it already left PENDING.
		if _, err := s.store.GetOrder(orderID); err != nil {
			return err
		}
		return ErrNotPending
	}
	return nil
}

// Delete removes an order entirely.
func (s *Service) Delete(orderID string) error {
	return s.store.DeleteOrder(orderID)
}
