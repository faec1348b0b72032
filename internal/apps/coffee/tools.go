package coffee

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
)

func str(name, desc string) tools.Param {
	return tools.Param{Name: name, Type: "string", Description: desc, Required: true}
}

// Message renders an order outcome the way the coffee agent reports it.
func Message(r *Receipt, err error) (string, error) {
	switch {
	case errors.Is(err, ErrUnknownCoffee):
		return "Sorry, that coffee is not available.", nil
	case errors.Is(err, ErrSizeOffered):
		return fmt.Sprintf("Sorry, %s is not available in %s.", r.Coffee.Name, r.Size), nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("Ordered a %s %s for %s, to be delivered to %s, paid with %s.",
		r.Size, r.Coffee.Name, r.Email, r.Address, r.Payment), nil
}

func (p *Plugin) RegisterTools(reg *tools.Registry) {
	s := p.service

	reg.Register(&tools.Definition{
		Name:        "get_coffee_menu",
		Description: "List the coffees with their sizes and prices.",
		Parameters:  tools.Schema(),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			return s.Menu(), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "order_coffee",
		Description: "Order a coffee for delivery to the user's address.",
		Parameters: tools.Schema(tools.UserID, str("coffee_id", "Menu id, e.g. c2"),
			tools.Param{Name: "size", Type: "string", Description: "small, medium or large (default medium)"}),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			coffeeID, err := args.String("coffee_id")
			if err != nil {
				return nil, err
			}
			msg, err := Message(s.Order(ctx, email, coffeeID, args.StringOr("size", DefaultSize)))
			if err != nil {
				return nil, err
			}
			return msg, nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "get_coffee_pref",
		Description: "Get a coffee preference for the user.",
		Parameters:  tools.Schema(tools.UserID, str("key", "Preference name, e.g. size")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			key, err := args.String("key")
			if err != nil {
				return nil, err
			}
			v, err := s.Preference(ctx, email, key)
			if errors.Is(err, profile.ErrNotSet) {
				return "Not set", nil
			}
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "set_coffee_pref",
		Description: "Record a coffee preference for the user.",
		Parameters:  tools.Schema(tools.UserID, str("key", "Preference name"), str("value", "Preference value")),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			v, err := args.Strings("key", "value")
			if err != nil {
				return nil, err
			}
			if err := s.AddPreference(ctx, email, v[0], v[1]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Coffee preference %s set to %s", v[0], v[1]), nil
		},
	})
}
