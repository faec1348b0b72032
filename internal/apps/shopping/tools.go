package shopping

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
)

const (
	msgUserNotFound  = "User not found. Please register."
	msgNoAddress     = "No address set. Please provide a shipping address before checkout."
	msgEmptyCart     = "Your cart is empty."
	msgOrderNotFound = "Order not found."
	msgBadQuantity   = "Quantity must be at least 1."
	msgTooMany       = "That would put more than 2147483647 of one product in the cart."
	msgBadSlot       = "Unknown session slot. Use product, size, address or payment."
)

func str(name, desc string) tools.Param {
	return tools.Param{Name: name, Type: "string", Description: desc, Required: true}
}

var sessionParam = str("session_id", "Conversation session id")

func (p *Plugin) RegisterTools(reg *tools.Registry) {
	p.registerCatalogTools(reg)
	p.registerCartTools(reg)
	p.registerOrderTools(reg)
	p.registerSessionTools(reg)
}

func (p *Plugin) registerCatalogTools(reg *tools.Registry) {
	reg.Register(&tools.Definition{
		Name:        "get_product_list",
		Description: "List every product with brand, color, style, price and stock.",
		Parameters:  tools.Schema(),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			return p.catalog.List(), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "check_stock",
		Description: "Get the stock level of a product.",
		Parameters:  tools.Schema(str("product_id", "Product id, e.g. p1")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			id, err := args.String("product_id")
			if err != nil {
				return nil, err
			}
			return p.catalog.CheckStock(id), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "recommend_products",
		Description: "Recommend up to three products matching any listed brand, color or style.",
		Parameters: tools.Schema(tools.Param{
			Name: "user_profile", Type: "object", Required: true,
			Description: `Object with optional "brands", "colors" and "styles" string lists`,
		}),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			profile := args.Map("user_profile")
			return p.catalog.Recommend(catalog.Profile{
				Brands: profile.StringSlice("brands"),
				Colors: profile.StringSlice("colors"),
				Styles: profile.StringSlice("styles"),
			}), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "check_delivery_date",
		Description: "Estimate delivery time for a product to a zip code.",
		Parameters:  tools.Schema(str("product_id", "Product id"), str("zip_code", "Destination zip code")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			v, err := args.Strings("product_id", "zip_code")
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Estimated delivery for %s to %s: 3-5 business days.", v[0], v[1]), nil
		},
	})
}

func (p *Plugin) registerCartTools(reg *tools.Registry) {
	reg.Register(&tools.Definition{
		Name:        "add_to_cart",
		Description: "Add a product to the user's cart.",
		Parameters: tools.Schema(tools.UserID, str("product_id", "Product id"),
			tools.Param{Name: "quantity", Type: "integer", Description: "Defaults to 1"}),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			productID, err := args.String("product_id")
			if err != nil {
				return nil, err
			}
			qty, err := args.IntOr("quantity", 1)
			if err != nil {
				return nil, err
			}
			err = p.carts.Add(ctx, email, productID, qty)
			if errors.Is(err, ErrInvalidQuantity) {
				return msgBadQuantity, nil
			}
			if errors.Is(err, ErrQuantityTooLarge) {
				return msgTooMany, nil
			}
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Added %d of %s to %s's cart.", qty, productID, email), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "view_cart",
		Description: "List the products in the user's cart.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			return p.carts.View(ctx, email)
		},
	})
}

func (p *Plugin) registerOrderTools(reg *tools.Registry) {
	reg.Register(&tools.Definition{
		Name:        "checkout",
		Description: "Place an order for everything in the user's cart.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			order, err := p.orders.Checkout(ctx, email)
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return msgUserNotFound, nil
			case errors.Is(err, ErrNoAddress):
				return msgNoAddress, nil
			case errors.Is(err, ErrEmptyCart):
				return msgEmptyCart, nil
			case err != nil:
				return nil, err
			}
			return fmt.Sprintf("Order placed! Your order ID is %s.", order.Reference), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "check_order_status",
		Description: "Get the status of an order by reference or id.",
		Parameters:  tools.Schema(str("order_id", "Order reference returned by checkout, or numeric id")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			orderID, err := args.String("order_id")
			if err != nil {
				return nil, err
			}
			order, err := p.orders.Find(ctx, orderID)
			if errors.Is(err, ErrOrderNotFound) {
				return msgOrderNotFound, nil
			}
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Order %s for %s is currently: %s", orderID, order.User.Email, order.Status), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "get_order_history",
		Description: "List the user's past orders.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			return p.orders.History(ctx, email)
		},
	})
	reg.Register(&tools.Definition{
		Name:        "is_duplicate_order",
		Description: "Report whether the user has already ordered a product.",
		Parameters:  tools.Schema(tools.UserID, str("product_id", "Product id")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			productID, err := args.String("product_id")
			if err != nil {
				return nil, err
			}
			return p.orders.HasOrdered(ctx, email, productID)
		},
	})
}

func (p *Plugin) registerSessionTools(reg *tools.Registry) {
	reg.Register(&tools.Definition{
		Name:        "get_session_slot",
		Description: "Read the product, size, address or payment remembered for this conversation.",
		Parameters:  tools.Schema(tools.UserID, sessionParam, str("slot", "product, size, address or payment")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			v, err := args.Strings("session_id", "slot")
			if err != nil {
				return nil, err
			}
			val, err := p.sessions.Get(ctx, email, v[0], v[1])
			switch {
			case errors.Is(err, ErrInvalidSlot):
				return msgBadSlot, nil
			case errors.Is(err, ErrSlotNotSet):
				return "Not set", nil
			case err != nil:
				return nil, err
			}
			return val, nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "set_session_slot",
		Description: "Remember a product, size, address or payment for this conversation.",
		Parameters: tools.Schema(tools.UserID, sessionParam,
			str("slot", "product, size, address or payment"), str("value", "Value to remember")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			v, err := args.Strings("session_id", "slot", "value")
			if err != nil {
				return nil, err
			}
			err = p.sessions.Set(ctx, email, v[0], v[1], v[2])
			if errors.Is(err, ErrInvalidSlot) {
				return msgBadSlot, nil
			}
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Session %s set to %s", v[1], v[2]), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "clear_session",
		Description: "Forget everything remembered for this conversation.",
		Parameters:  tools.Schema(tools.UserID, sessionParam),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			sessionID, err := args.String("session_id")
			if err != nil {
				return nil, err
			}
			if err := p.sessions.Clear(ctx, email, sessionID); err != nil {
				return nil, err
			}
			return "Session cleared.", nil
		},
	})
}
