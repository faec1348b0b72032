package shopping

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
)

// Cart holds one line per (user, product); repeated adds accumulate quantity.
type Cart struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string      `gorm:"size:50;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int         `gorm:"not null" json:"quantity"`
	User      models.User `gorm:"foreignKey:UserID" json:"-"`
}

type Order struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Reference string        `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	Address   string        `gorm:"type:text" json:"address"`
	Status    string        `gorm:"size:50;not null" json:"status"`
	Total     catalog.Money `gorm:"type:decimal(18,2)" json:"total"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	User      models.User   `gorm:"foreignKey:UserID" json:"-"`
}

// OrderItem snapshots the unit price at checkout.
type OrderItem struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	OrderID   uint          `gorm:"not null;index" json:"order_id"`
	ProductID string        `gorm:"size:50;not null;index" json:"product_id"`
	Quantity  int           `gorm:"not null" json:"quantity"`
	UnitPrice catalog.Money `gorm:"type:decimal(12,2)" json:"unit_price"`
}

// SessionSlot is per-conversation shopping state keyed by (email, session, slot).
type SessionSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_session_slot" json:"email"`
	SessionID string    `gorm:"size:255;not null;uniqueIndex:idx_session_slot" json:"session_id"`
	Slot      string    `gorm:"size:20;not null;uniqueIndex:idx_session_slot" json:"slot"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
