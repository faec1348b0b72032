package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
)

const (
	noAddress = "No address set."
	noSize    = "No size set."
	noPayment = "No payment method set."
	notSetMsg = "Not set"
)

// orFallback maps ErrNotSet to fallback so reads never fail on missing data.
func orFallback(value string, err error, fallback string) (any, error) {
	if errors.Is(err, ErrNotSet) {
		return fallback, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// userTool adapts a handler that needs the caller email plus named string args.
func userTool(keys []string, fn func(ctx context.Context, email string, vals []string) (any, error)) tools.Handler {
	return func(ctx context.Context, args tools.Args) (any, error) {
		email, err := args.UserID()
		if err != nil {
			return nil, err
		}
		vals, err := args.Strings(keys...)
		if err != nil {
			return nil, err
		}
		return fn(ctx, email, vals)
	}
}

func param(name, desc string) tools.Param {
	return tools.Param{Name: name, Type: "string", Description: desc, Required: true}
}

func (p *Plugin) RegisterTools(reg *tools.Registry) {
	s := p.service

	reg.Register(&tools.Definition{
		Name:        "set_address",
		Description: "Add a shipping address for the user.",
		Parameters:  tools.Schema(tools.UserID, param("address", "Full street address")),
		Handler: userTool([]string{"address"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.AddAddress(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Address for %s set to: %s", email, v[0]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_address",
		Description: "Get the user's shipping address.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			v, err := s.Address(ctx, email)
			return orFallback(v, err, noAddress)
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "set_user_address",
		Description: "Replace the user's primary shipping address.",
		Parameters:  tools.Schema(tools.UserID, param("address", "Full street address")),
		Handler: userTool([]string{"address"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.SetAddress(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Address updated to %s.", v[0]), nil
		}),
	})

	reg.Register(&tools.Definition{
		Name:        "set_size",
		Description: "Record a clothing size for the user.",
		Parameters:  tools.Schema(tools.UserID, param("size", "Clothing size, e.g. 32 or M")),
		Handler: userTool([]string{"size"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.AddSize(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Size for %s set to: %s", email, v[0]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_size",
		Description: "Get the user's clothing size.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			v, err := s.Size(ctx, email)
			return orFallback(v, err, noSize)
		}),
	})

	reg.Register(&tools.Definition{
		Name:        "set_payment_method",
		Description: "Add a payment method for the user.",
		Parameters:  tools.Schema(tools.UserID, param("method", "Payment method, e.g. Visa ending 5678")),
		Handler: userTool([]string{"method"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.AddPayment(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Payment method set to %s", v[0]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_payment_method",
		Description: "Get the user's payment method.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			v, err := s.Payment(ctx, email)
			return orFallback(v, err, noPayment)
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "set_user_payment_method",
		Description: "Replace the user's primary payment method.",
		Parameters:  tools.Schema(tools.UserID, param("method", "Payment method, e.g. Visa ending 5678")),
		Handler: userTool([]string{"method"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.SetPayment(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Payment method set to %s.", v[0]), nil
		}),
	})

	reg.Register(&tools.Definition{
		Name:        "set_preference",
		Description: "Add a preference key/value for the user.",
		Parameters:  tools.Schema(tools.UserID, param("key", "Preference name"), param("value", "Preference value")),
		Handler: userTool([]string{"key", "value"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.AddPreference(ctx, email, v[0], v[1]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Preference %s set to %s", v[0], v[1]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_preference",
		Description: "Get a preference value for the user.",
		Parameters:  tools.Schema(tools.UserID, param("key", "Preference name")),
		Handler: userTool([]string{"key"}, func(ctx context.Context, email string, v []string) (any, error) {
			val, err := s.Preference(ctx, email, v[0])
			return orFallback(val, err, notSetMsg)
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "set_user_pref",
		Description: "Create or update a preference for the user.",
		Parameters:  tools.Schema(tools.UserID, param("key", "Preference name"), param("value", "Preference value")),
		Handler: userTool([]string{"key", "value"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.SetPreference(ctx, email, v[0], v[1]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Preference %s set to %s for the user.", v[0], v[1]), nil
		}),
	})

	reg.Register(&tools.Definition{
		Name:        "set_travel_status",
		Description: "Record whether the user is travelling and where.",
		Parameters: tools.Schema(tools.UserID, param("status", "Travel status, e.g. travelling"),
			tools.Param{Name: "location", Type: "string", Description: "Current location"}),
		Handler: func(ctx context.Context, args tools.Args) (any, error) {
			email, err := args.UserID()
			if err != nil {
				return nil, err
			}
			status, err := args.String("status")
			if err != nil {
				return nil, err
			}
			location := args.StringOr("location", "")
			if err := s.AddTravel(ctx, email, status, location); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Travel status set to %s at %s", status, location), nil
		},
	})
	reg.Register(&tools.Definition{
		Name:        "get_travel_status",
		Description: "Get the user's travel status and location.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			ts, err := s.TravelStatus(ctx, email)
			if err != nil {
				return nil, err
			}
			return map[string]any{"status": ts.Status, "location": ts.Location}, nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "set_calendar_location",
		Description: "Record where the user's calendar places them.",
		Parameters:  tools.Schema(tools.UserID, param("location", "Calendar location")),
		Handler: userTool([]string{"location"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.AddCalendarLocation(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Calendar location for %s set to: %s", email, v[0]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_calendar_location",
		Description: "Get the user's calendar location.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			v, err := s.CalendarLocation(ctx, email)
			return orFallback(v, err, DefaultCalendar)
		}),
	})

	reg.Register(&tools.Definition{
		Name:        "set_birthday",
		Description: "Record the user's birthday (YYYY-MM-DD).",
		Parameters:  tools.Schema(tools.UserID, param("birthday", "Date as YYYY-MM-DD")),
		Handler: userTool([]string{"birthday"}, func(ctx context.Context, email string, v []string) (any, error) {
			err := s.AddBirthday(ctx, email, v[0])
			if errors.Is(err, ErrInvalidBirthday) {
				return "Birthday must be a date in YYYY-MM-DD format.", nil
			}
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("Birthday for %s set to: %s", email, v[0]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_birthday",
		Description: "Get the user's birthday, or an empty string.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			v, err := s.Birthday(ctx, email)
			return orFallback(v, err, "")
		}),
	})

	reg.Register(&tools.Definition{
		Name:        "set_concierge_tone",
		Description: "Set the tone the concierge should use.",
		Parameters:  tools.Schema(tools.UserID, param("tone", "Tone, e.g. luxury or minimalist")),
		Handler: userTool([]string{"tone"}, func(ctx context.Context, email string, v []string) (any, error) {
			if err := s.AddTone(ctx, email, v[0]); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Concierge tone set to %s", v[0]), nil
		}),
	})
	reg.Register(&tools.Definition{
		Name:        "get_concierge_tone",
		Description: "Get the tone the concierge should use.",
		Parameters:  tools.Schema(tools.UserID),
		Handler: userTool(nil, func(ctx context.Context, email string, _ []string) (any, error) {
			v, err := s.Tone(ctx, email)
			return orFallback(v, err, DefaultTone)
		}),
	})
}
