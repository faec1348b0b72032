package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
	"gorm.io/gorm"
)

var (
	// ErrNotSet means the user is unknown or has no row of the requested kind.
	ErrNotSet          = errors.New("attribute not set")
	ErrInvalidBirthday = errors.New("birthday must be YYYY-MM-DD")
	ErrEmptyValue      = errors.New("value is required")
)

const (
	ToneKey     = "concierge_tone"
	DefaultTone = "professional"

	// Calendar locations are stored as travel rows with this status.
	CalendarStatus  = "home"
	DefaultCalendar = "office"
	DefaultTravel   = "home"
)

// ProfileService reads and writes the per-user attribute rows.
//
// Add* methods append a row; readers return the first inserted row, so a
// later Add does not change what readers see. Set* methods rewrite the first
// row in place (or append when none exists).
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// --- Address ---

func (s *ProfileService) AddAddress(ctx context.Context, email, address string) error {
	return s.appendRow(ctx, email, func(userID uint) any {
		return &models.Address{UserID: userID, Address: address}
	})
}

func (s *ProfileService) Address(ctx context.Context, email string) (string, error) {
	var row models.Address
	if err := s.first(ctx, email, &row); err != nil {
		return "", err
	}
	return row.Address, nil
}

// FirstAddress reads the first address using tx, for callers inside a transaction.
func FirstAddress(tx *gorm.DB, userID uint) (string, error) {
	var row models.Address
	if err := firstOwned(tx, userID, &row); err != nil {
		return "", err
	}
	return row.Address, nil
}

func (s *ProfileService) SetAddress(ctx context.Context, email, address string) error {
	return s.overwrite(ctx, email, &models.Address{}, map[string]any{"address": address},
		func(userID uint) any { return &models.Address{UserID: userID, Address: address} })
}

// --- Size ---

func (s *ProfileService) AddSize(ctx context.Context, email, size string) error {
	return s.appendRow(ctx, email, func(userID uint) any {
		return &models.Size{UserID: userID, Size: size}
	})
}

func (s *ProfileService) Size(ctx context.Context, email string) (string, error) {
	var row models.Size
	if err := s.first(ctx, email, &row); err != nil {
		return "", err
	}
	return row.Size, nil
}

// --- Payment ---

func (s *ProfileService) AddPayment(ctx context.Context, email, method string) error {
	return s.appendRow(ctx, email, func(userID uint) any {
		return &models.Payment{UserID: userID, Method: method}
	})
}

func (s *ProfileService) Payment(ctx context.Context, email string) (string, error) {
	var row models.Payment
	if err := s.first(ctx, email, &row); err != nil {
		return "", err
	}
	return row.Method, nil
}

func (s *ProfileService) SetPayment(ctx context.Context, email, method string) error {
	return s.overwrite(ctx, email, &models.Payment{}, map[string]any{"method": method},
		func(userID uint) any { return &models.Payment{UserID: userID, Method: method} })
}

// --- Preferences ---

func (s *ProfileService) AddPreference(ctx context.Context, email, key, value string) error {
	if key == "" {
		return ErrEmptyValue
	}
	return s.appendRow(ctx, email, func(userID uint) any {
		return &models.Preference{UserID: userID, Key: key, Value: value}
	})
}

func (s *ProfileService) Preference(ctx context.Context, email, key string) (string, error) {
	var row models.Preference
	if err := s.first(ctx, email, &row, "key = ?", key); err != nil {
		return "", err
	}
	return row.Value, nil
}

func (s *ProfileService) SetPreference(ctx context.Context, email, key, value string) error {
	if key == "" {
		return ErrEmptyValue
	}
	return s.overwrite(ctx, email, &models.Preference{}, map[string]any{"value": value},
		func(userID uint) any { return &models.Preference{UserID: userID, Key: key, Value: value} },
		"key = ?", key)
}

// Preferences returns the first value stored under each key.
func (s *ProfileService) Preferences(ctx context.Context, email string) (map[string]string, error) {
	user, err := services.Resolve(s.db.WithContext(ctx), email)
	if err != nil {
		return nil, notSet(err)
	}
	var rows []models.Preference
	if err := s.db.WithContext(ctx).Scopes(identity.ForUser(user.ID), identity.FirstInserted).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, p := range rows {
		if _, seen := out[p.Key]; !seen {
			out[p.Key] = p.Value
		}
	}
	return out, nil
}

// --- Travel and calendar ---

func (s *ProfileService) AddTravel(ctx context.Context, email, status, location string) error {
	return s.appendRow(ctx, email, func(userID uint) any {
		return &models.Travel{UserID: userID, Status: status, Location: location}
	})
}

func (s *ProfileService) Travel(ctx context.Context, email string) (*models.Travel, error) {
	var row models.Travel
	if err := s.first(ctx, email, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *ProfileService) AddCalendarLocation(ctx context.Context, email, location string) error {
	return s.AddTravel(ctx, email, CalendarStatus, location)
}

// CalendarLocation shares the travel rows, so it reports the first travel
// row's location whatever its status.
func (s *ProfileService) CalendarLocation(ctx context.Context, email string) (string, error) {
	t, err := s.Travel(ctx, email)
	if err != nil {
		return "", err
	}
	return t.Location, nil
}

// --- Birthday ---

func (s *ProfileService) AddBirthday(ctx context.Context, email, birthday string) error {
	if _, err := time.Parse(time.DateOnly, birthday); err != nil {
		return ErrInvalidBirthday
	}
	return s.appendRow(ctx, email, func(userID uint) any {
		return &models.Birthday{UserID: userID, Birthday: birthday}
	})
}

func (s *ProfileService) Birthday(ctx context.Context, email string) (string, error) {
	var row models.Birthday
	if err := s.first(ctx, email, &row); err != nil {
		return "", err
	}
	return row.Birthday, nil
}

// --- Concierge tone ---

func (s *ProfileService) AddTone(ctx context.Context, email, tone string) error {
	return s.AddPreference(ctx, email, ToneKey, tone)
}

func (s *ProfileService) Tone(ctx context.Context, email string) (string, error) {
	return s.Preference(ctx, email, ToneKey)
}

// --- helpers ---

func (s *ProfileService) appendRow(ctx context.Context, email string, build func(userID uint) any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := services.ResolveOrCreate(tx, email)
		if err != nil {
			return err
		}
		if err := tx.Create(build(user.ID)).Error; err != nil {
			return fmt.Errorf("failed to save attribute: %w", err)
		}
		return nil
	})
}

func (s *ProfileService) overwrite(ctx context.Context, email string, model any, updates map[string]any,
	build func(userID uint) any, conds ...any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := services.ResolveOrCreate(tx, email)
		if err != nil {
			return err
		}
		err = firstOwned(tx, user.ID, model, conds...)
		switch {
		case errors.Is(err, ErrNotSet):
			if err := tx.Create(build(user.ID)).Error; err != nil {
				return fmt.Errorf("failed to save attribute: %w", err)
			}
			return nil
		case err != nil:
			return err
		}
		if err := tx.Model(model).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update attribute: %w", err)
		}
		return nil
	})
}

func (s *ProfileService) first(ctx context.Context, email string, dest any, conds ...any) error {
	db := s.db.WithContext(ctx)
	user, err := services.Resolve(db, email)
	if err != nil {
		return notSet(err)
	}
	return firstOwned(db, user.ID, dest, conds...)
}

func firstOwned(tx *gorm.DB, userID uint, dest any, conds ...any) error {
	q := tx.Scopes(identity.ForUser(userID), identity.FirstInserted)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	res := q.Limit(1).Find(dest)
	if res.Error != nil {
		return fmt.Errorf("failed to read attribute: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotSet
	}
	return nil
}

func notSet(err error) error {
	if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrEmailRequired) {
		return ErrNotSet
	}
	return err
}

// TravelStatus is the get_travel_status projection.
type TravelStatus struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// Snapshot is the full attribute view served by GET /profile.
type Snapshot struct {
	Email            string            `json:"email"`
	Address          string            `json:"address"`
	Size             string            `json:"size"`
	PaymentMethod    string            `json:"payment_method"`
	Preferences      map[string]string `json:"preferences"`
	Travel           TravelStatus      `json:"travel"`
	CalendarLocation string            `json:"calendar_location"`
	Birthday         string            `json:"birthday"`
	ConciergeTone    string            `json:"concierge_tone"`
}

// TravelStatus falls back to "home" at the user's address when no travel row exists.
func (s *ProfileService) TravelStatus(ctx context.Context, email string) (TravelStatus, error) {
	t, err := s.Travel(ctx, email)
	if err == nil {
		return TravelStatus{Status: t.Status, Location: t.Location}, nil
	}
	if !errors.Is(err, ErrNotSet) {
		return TravelStatus{}, err
	}
	addr, err := s.Address(ctx, email)
	if errors.Is(err, ErrNotSet) {
		addr, err = noAddress, nil
	}
	if err != nil {
		return TravelStatus{}, err
	}
	return TravelStatus{Status: DefaultTravel, Location: addr}, nil
}

// Snapshot resolves every attribute with the same fallbacks the tools use.
// Unknown users get ErrNotSet.
func (s *ProfileService) Snapshot(ctx context.Context, email string) (*Snapshot, error) {
	user, err := services.Resolve(s.db.WithContext(ctx), email)
	if err != nil {
		return nil, notSet(err)
	}
	snap := &Snapshot{Email: user.Email}

	read := func(dst *string, get func(context.Context, string) (string, error), fallback string) error {
		v, err := get(ctx, email)
		switch {
		case errors.Is(err, ErrNotSet):
			*dst = fallback
		case err != nil:
			return err
		default:
			*dst = v
		}
		return nil
	}
	steps := []error{
		read(&snap.Address, s.Address, noAddress),
		read(&snap.Size, s.Size, noSize),
		read(&snap.PaymentMethod, s.Payment, noPayment),
		read(&snap.CalendarLocation, s.CalendarLocation, DefaultCalendar),
		read(&snap.Birthday, s.Birthday, ""),
		read(&snap.ConciergeTone, s.Tone, DefaultTone),
	}
	if err := errors.Join(steps...); err != nil {
		return nil, err
	}
	if snap.Travel, err = s.TravelStatus(ctx, email); err != nil {
		return nil, err
	}
	if snap.Preferences, err = s.Preferences(ctx, email); err != nil {
		return nil, err
	}
	return snap, nil
}
