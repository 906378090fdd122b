package services

import (
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomService covers the REST side of rooms: therapists mint them, anyone
// authenticated can look them up by code. Live gameplay goes through the
// room actor, not here.
type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

func (s *RoomService) Create(therapistID uint) (*models.Room, error) {
	code, err := s.generateUniqueCode()
	if err != nil {
		return nil, err
	}

	room := models.Room{
		TherapistID: therapistID,
		Code:        code,
		Status:      models.RoomStatusPending,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}

	// The therapist participates in their own room from the start.
	var user models.User
	if err := s.db.First(&user, therapistID).Error; err != nil {
		return nil, err
	}
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	participant := models.Participant{
		RoomID:      room.ID,
		UserID:      therapistID,
		Role:        models.RoleTherapist,
		DisplayName: name,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, err
	}

	return &room, nil
}

func (s *RoomService) ListByTherapist(therapistID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Where("therapist_id = ? AND status <> ?", therapistID, models.RoomStatusClosed).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByCode(code string) (*models.Room, error) {
	var room models.Room
	err := s.db.Preload("Participants").Where("code = ?", code).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) generateUniqueCode() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code := randomCode(6)
		var count int64
		if err := s.db.Model(&models.Room{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique room code")
}

func randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeChars[rand.Intn(len(codeChars))]
	}
	return string(b)
}
