package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/game"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

// ConsentService records a participant's acceptance of the therapeutic
// terms. Consent arrives over REST, before or after the first websocket
// join, and is immutable once set.
type ConsentService struct {
	db       *gorm.DB
	registry *game.Registry
}

func NewConsentService(db *gorm.DB, registry *game.Registry) *ConsentService {
	return &ConsentService{db: db, registry: registry}
}

func (s *ConsentService) Accept(code string, userID uint) (*models.Participant, error) {
	var room models.Room
	if err := s.db.Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrRoomNotFound
		}
		return nil, err
	}
	if room.Status == models.RoomStatusClosed {
		return nil, game.ErrRoomClosed
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}

	role := models.RolePlayer
	if userID == room.TherapistID {
		role = models.RoleTherapist
	}
	participant := models.Participant{
		RoomID:      room.ID,
		UserID:      userID,
		Role:        role,
		DisplayName: name,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
		FirstOrCreate(&participant).Error; err != nil {
		return nil, err
	}

	if participant.ConsentAcceptedAt == nil {
		now := time.Now()
		participant.ConsentAcceptedAt = &now
		if err := s.db.Save(&participant).Error; err != nil {
			return nil, err
		}
		s.registry.NotifyConsent(code, userID, now)
	}

	return &participant, nil
}
