package store

import (
	"fmt"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/models"
)

// CreateOrder inserts a new order record.
func (s *Store) CreateOrder(order *models.Order) error {
	if err := s.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("timestamp desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches one order by its public order id.
func (s *Store) GetOrder(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderAmounts applies a quantity edit as a targeted field update,
// leaving the locked rate and everything else alone.
func (s *Store) UpdateOrderAmounts(orderID string, quantity, totalAmount float64) error {
	res := s.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"quantity":     quantity,
			"total_amount": totalAmount,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, res.Error)
	}
	return nil
}

// CompleteOrder transitions a PENDING order to COMPLETED. It reports how
// many rows changed so the caller can distinguish "already completed"
// from "updated".
func (s *Store) CompleteOrder(orderID string) (int64, error) {
	res := s.db.Model(&models.Order{}).
		Where("order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Update("status", models.OrderStatusCompleted)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to complete order %s: %w", orderID, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteOrder removes an order record entirely.
func (s *Store) DeleteOrder(orderID string) error {
	res := s.db.Where("order_id = ?", orderID).Delete(&models.Order{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, res.Error)
	}
	return nil
}
