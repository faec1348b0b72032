package coffee

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
	"gorm.io/gorm"
)

var (
	ErrUnknownCoffee = errors.New("coffee not on the menu")
	ErrSizeOffered   = errors.New("size not offered")
)

const DefaultSize = "medium"

// Receipt is the outcome of one coffee order. Orders are not persisted.
type Receipt struct {
	Email   string         `json:"email"`
	Coffee  catalog.Coffee `json:"coffee"`
	Size    string         `json:"size"`
	Address string         `json:"address"`
	Payment string         `json:"payment"`
}

type CoffeeService struct {
	db      *gorm.DB
	profile *profile.ProfileService
}

func NewCoffeeService(db *gorm.DB, profiles *profile.ProfileService) *CoffeeService {
	return &CoffeeService{db: db, profile: profiles}
}

func (s *CoffeeService) Menu() []catalog.Coffee {
	return catalog.CoffeeMenu()
}

// Order resolves or creates the user before looking at the menu, then
// fills delivery details from the user's first address and payment.
func (s *CoffeeService) Order(ctx context.Context, email, coffeeID, size string) (*Receipt, error) {
	if _, err := services.ResolveOrCreate(s.db.WithContext(ctx), email); err != nil {
		return nil, err
	}
	coffee, ok := catalog.FindCoffee(coffeeID)
	if !ok {
		return nil, ErrUnknownCoffee
	}
	size = strings.ToLower(strings.TrimSpace(size))
	if size == "" {
		size = DefaultSize
	}
	receipt := &Receipt{Email: email, Coffee: coffee, Size: size}
	if !coffee.HasSize(size) {
		return receipt, ErrSizeOffered
	}

	var err error
	if receipt.Address, err = s.detail(ctx, email, s.profile.Address, "No address set"); err != nil {
		return nil, err
	}
	if receipt.Payment, err = s.detail(ctx, email, s.profile.Payment, "No payment method set"); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *CoffeeService) detail(ctx context.Context, email string,
	get func(context.Context, string) (string, error), fallback string) (string, error) {
	v, err := get(ctx, email)
	if errors.Is(err, profile.ErrNotSet) {
		return fallback, nil
	}
	return v, err
}

func (s *CoffeeService) Preference(ctx context.Context, email, key string) (string, error) {
	return s.profile.Preference(ctx, email, key)
}

func (s *CoffeeService) AddPreference(ctx context.Context, email, key, value string) error {
	return s.profile.AddPreference(ctx, email, key, value)
}
