package shopping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoAddress     = errors.New("no shipping address")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

const StatusProcessing = "Processing"

// OrderSummary is one get_order_history entry.
type OrderSummary struct {
	ID        uint          `json:"id"`
	Reference string        `json:"reference"`
	Address   string        `json:"address"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	Total     catalog.Money `json:"total"`
}

type OrderService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
}

func NewOrderService(db *gorm.DB, cat *catalog.Catalog) *OrderService {
	return &OrderService{db: db, catalog: cat}
}

// Checkout turns the user's cart into one order inside a single transaction.
// The order snapshots the first address; cart lines for products missing from
// the catalog are dropped without an item. Stock is decremented after commit.
func (s *OrderService) Checkout(ctx context.Context, email string) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := services.Resolve(tx, email)
		if err != nil {
			return err
		}

		address, err := profile.FirstAddress(tx, user.ID)
		if errors.Is(err, profile.ErrNotSet) {
			return ErrNoAddress
		}
		if err != nil {
			return err
		}

		var lines []Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(identity.ForUser(user.ID), identity.FirstInserted).
			Find(&lines).Error; err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total catalog.Money
		items := make([]OrderItem, 0, len(lines))
		for _, line := range lines {
			p, ok := s.catalog.Get(line.ProductID)
			if !ok {
				continue
			}
			items = append(items, OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			})
			total = total.Plus(p.Price.Times(line.Quantity))
		}

		order = Order{
			Reference: uuid.NewString(),
			UserID:    user.ID,
			Address:   address,
			Status:    StatusProcessing,
			Total:     total,
			Items:     items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Scopes(identity.ForUser(user.ID)).Delete(&Cart{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		order.User = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		left, err := s.catalog.Decrement(item.ProductID, item.Quantity)
		if err != nil {
			slog.Warn("stock decrement skipped", "product_id", item.ProductID, "error", err)
			continue
		}
		slog.Info("stock decremented", "product_id", item.ProductID, "quantity", item.Quantity, "stock", left)
	}
	return &order, nil
}

// Find accepts an order reference or a numeric order id.
func (s *OrderService) Find(ctx context.Context, orderID string) (*Order, error) {
	orderID = strings.TrimSpace(orderID)
	q := s.db.WithContext(ctx).Preload("User").Preload("Items")

	var order Order
	var res *gorm.DB
	if ref, err := uuid.Parse(orderID); err == nil {
		res = q.Where("reference = ?", ref.String()).Limit(1).Find(&order)
	} else if id, err := strconv.ParseUint(orderID, 10, 64); err == nil {
		res = q.Where("id = ?", id).Limit(1).Find(&order)
	} else {
		return nil, ErrOrderNotFound
	}
	if res.Error != nil {
		return nil, fmt.Errorf("failed to load order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// FindForUser is Find restricted to orders owned by email.
func (s *OrderService) FindForUser(ctx context.Context, email, orderID string) (*Order, error) {
	order, err := s.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User.Email != identity.Normalize(email) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// History lists the user's orders oldest first; unknown users have none.
func (s *OrderService) History(ctx context.Context, email string) ([]OrderSummary, error) {
	db := s.db.WithContext(ctx)
	user, err := services.Resolve(db, email)
	if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrEmailRequired) {
		return []OrderSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []Order
	if err := db.Scopes(identity.ForUser(user.ID), identity.FirstInserted).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummary{
			ID:        o.ID,
			Reference: o.Reference,
			Address:   o.Address,
			Status:    o.Status,
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
			Total:     o.Total,
		})
	}
	return out, nil
}

// HasOrdered reports whether any of the user's orders contains productID.
func (s *OrderService) HasOrdered(ctx context.Context, email, productID string) (bool, error) {
	db := s.db.WithContext(ctx)
	user, err := services.Resolve(db, email)
	if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrEmailRequired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var n int64
	err = db.Model(&OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ?", user.ID, productID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check orders: %w", err)
	}
	return n > 0, nil
}
