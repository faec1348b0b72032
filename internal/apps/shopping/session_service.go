package shopping

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidSlot = errors.New("unknown session slot")
	ErrSlotNotSet  = errors.New("session slot not set")
)

// Slots tracked per shopping conversation.
var Slots = []string{"product", "size", "address", "payment"}

// SessionService keeps the current product, size, address and payment the
// user has mentioned in one conversation.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

func (s *SessionService) Get(ctx context.Context, email, sessionID, slot string) (string, error) {
	if !slices.Contains(Slots, slot) {
		return "", ErrInvalidSlot
	}
	var row SessionSlot
	res := s.db.WithContext(ctx).
		Where("email = ? AND session_id = ? AND slot = ?", identity.Normalize(email), sessionID, slot).
		Limit(1).Find(&row)
	if res.Error != nil {
		return "", fmt.Errorf("failed to read session slot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", ErrSlotNotSet
	}
	return row.Value, nil
}

func (s *SessionService) Set(ctx context.Context, email, sessionID, slot, value string) error {
	if !slices.Contains(Slots, slot) {
		return ErrInvalidSlot
	}
	row := SessionSlot{Email: identity.Normalize(email), SessionID: sessionID, Slot: slot, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "session_id"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save session slot: %w", err)
	}
	return nil
}

// All returns every slot set in the session.
func (s *SessionService) All(ctx context.Context, email, sessionID string) (map[string]string, error) {
	var rows []SessionSlot
	if err := s.db.WithContext(ctx).
		Where("email = ? AND session_id = ?", identity.Normalize(email), sessionID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Slot] = r.Value
	}
	return out, nil
}

func (s *SessionService) Clear(ctx context.Context, email, sessionID string) error {
	err := s.db.WithContext(ctx).
		Where("email = ? AND session_id = ?", identity.Normalize(email), sessionID).
		Delete(&SessionSlot{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
