package shopping

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrQuantityTooLarge = errors.New("cart line quantity limit exceeded")
)

// MaxLineQuantity caps one cart line, including quantity already in the cart.
const MaxLineQuantity = math.MaxInt32

// CartLine is a cart row joined with catalog data.
type CartLine struct {
	ProductID string        `json:"product_id"`
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	UnitPrice catalog.Money `json:"unit_price"`
	Subtotal  catalog.Money `json:"subtotal"`
	InCatalog bool          `json:"in_catalog"`
}

type CartService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
}

func NewCartService(db *gorm.DB, cat *catalog.Catalog) *CartService {
	return &CartService{db: db, catalog: cat}
}

// Add creates the user if needed and adds quantity to the (user, product)
// line in one upsert statement. The update only applies while the summed
// quantity stays within MaxLineQuantity.
func (s *CartService) Add(ctx context.Context, email, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := services.ResolveOrCreate(tx, email)
		if err != nil {
			return err
		}
		line := Cart{UserID: user.ID, ProductID: productID, Quantity: quantity}
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("carts.quantity + excluded.quantity"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("carts.quantity + excluded.quantity <= ?", MaxLineQuantity),
			}},
		}).Create(&line)
		if res.Error != nil {
			return fmt.Errorf("failed to add to cart: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrQuantityTooLarge
		}
		return nil
	})
}

// View lists the user's cart lines; unknown users have an empty cart.
func (s *CartService) View(ctx context.Context, email string) ([]CartLine, error) {
	db := s.db.WithContext(ctx)
	user, err := services.Resolve(db, email)
	if errors.Is(err, services.ErrUserNotFound) {
		return []CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []Cart
	if err := db.Scopes(identity.ForUser(user.ID), identity.FirstInserted).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	lines := make([]CartLine, 0, len(rows))
	for _, r := range rows {
		line := CartLine{ProductID: r.ProductID, Quantity: r.Quantity}
		if p, ok := s.catalog.Get(r.ProductID); ok {
			line.Name = p.Name
			line.UnitPrice = p.Price
			line.Subtotal = p.Price.Times(r.Quantity)
			line.InCatalog = true
		}
		lines = append(lines, line)
	}
	return lines, nil
}
