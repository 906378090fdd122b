package game

import "github.com/rodrigojspires/caminhos-hekate-sub006/internal/models"

// Store is the persistence boundary of the room runtime. The gorm
// implementation lives in internal/storage; tests substitute a mock.
type Store interface {
	RoomByCode(code string) (*models.Room, error)
	SaveRoom(room *models.Room) error

	ParticipantsByRoom(roomID uint) ([]models.Participant, error)
	// FirstOrCreateParticipant looks up by (RoomID, UserID) and fills p with
	// the existing row when present, otherwise inserts p as given.
	FirstOrCreateParticipant(p *models.Participant) error

	PlayerStatesByRoom(roomID uint) ([]models.PlayerState, error)

	LastMove(roomID uint) (*models.Move, error)
	MoveByID(id uint) (*models.Move, error)
	MovesByParticipant(participantID uint) ([]models.Move, error)
	// CommitRoll persists the roll outcome as one transaction: the player
	// state (created on first roll) and the new move.
	CommitRoll(state *models.PlayerState, move *models.Move) error

	DeckDrawsByRoom(roomID uint) ([]models.DeckDraw, error)
	CreateDeckDraw(draw *models.DeckDraw) error

	UpsertTherapyNote(note *models.TherapyNote) error

	UserByID(id uint) (*models.User, error)
}
