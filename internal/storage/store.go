package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/game"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"
)

// Store is the gorm-backed implementation of the room runtime's
// persistence boundary.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RoomByCode(code string) (*models.Room, error) {
	var room models.Room
	err := s.db.Where("code = ?", code).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) SaveRoom(room *models.Room) error {
	return s.db.Save(room).Error
}

func (s *Store) ParticipantsByRoom(roomID uint) ([]models.Participant, error) {
	var participants []models.Participant
	err := s.db.Where("room_id = ?", roomID).Order("joined_at ASC, id ASC").Find(&participants).Error
	return participants, err
}

func (s *Store) FirstOrCreateParticipant(p *models.Participant) error {
	return s.db.Where("room_id = ? AND user_id = ?", p.RoomID, p.UserID).FirstOrCreate(p).Error
}

func (s *Store) PlayerStatesByRoom(roomID uint) ([]models.PlayerState, error) {
	var states []models.PlayerState
	err := s.db.Where("room_id = ?", roomID).Find(&states).Error
	return states, err
}

func (s *Store) LastMove(roomID uint) (*models.Move, error) {
	var move models.Move
	err := s.db.Preload("Note").Where("room_id = ?", roomID).Order("turn_number DESC").First(&move).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &move, nil
}

func (s *Store) MoveByID(id uint) (*models.Move, error) {
	var move models.Move
	err := s.db.Preload("Note").First(&move, id).Error
	if err != nil {
		return nil, err
	}
	return &move, nil
}

func (s *Store) MovesByParticipant(participantID uint) ([]models.Move, error) {
	var moves []models.Move
	err := s.db.Preload("Note").Where("participant_id = ?", participantID).Order("turn_number ASC").Find(&moves).Error
	return moves, err
}

func (s *Store) CommitRoll(state *models.PlayerState, move *models.Move) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(state).Error; err != nil {
			return err
		}
		return tx.Create(move).Error
	})
}

func (s *Store) DeckDrawsByRoom(roomID uint) ([]models.DeckDraw, error) {
	var draws []models.DeckDraw
	err := s.db.Where("room_id = ?", roomID).Order("created_at ASC, id ASC").Find(&draws).Error
	return draws, err
}

func (s *Store) CreateDeckDraw(draw *models.DeckDraw) error {
	return s.db.Create(draw).Error
}

func (s *Store) UpsertTherapyNote(note *models.TherapyNote) error {
	return s.db.Save(note).Error
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
