package shopping

import (
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	catalog  *catalog.Catalog
	carts    *CartService
	orders   *OrderService
	sessions *SessionService
}

func New(db *gorm.DB, cat *catalog.Catalog) *Plugin {
	return &Plugin{
		catalog:  cat,
		carts:    NewCartService(db, cat),
		orders:   NewOrderService(db, cat),
		sessions: NewSessionService(db),
	}
}

func (p *Plugin) ID() string { return "shopping" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Cart{},
		&Order{},
		&OrderItem{},
		&SessionSlot{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, cfg *config.Config) {
	h := NewShoppingHandler(p.carts, p.orders)

	router.Get("/cart", h.GetCart)
	router.Post("/cart", h.AddToCart)
	router.Post("/checkout", h.Checkout)
	router.Get("/orders", h.GetOrders)
	router.Get("/orders/:id", h.GetOrder)
}
