package models

import "time"

type Room struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	TherapistID       uint          `gorm:"not null;index" json:"therapist_id"`
	Therapist         User          `gorm:"foreignKey:TherapistID;constraint:OnDelete:CASCADE" json:"-"`
	Code              string        `gorm:"size:6;uniqueIndex" json:"code"`
	Status            string        `gorm:"size:20;not null;default:'pending'" json:"status"`
	CurrentTurnIndex  int           `gorm:"not null;default:0" json:"current_turn_index"`
	TurnParticipantID *uint         `json:"turn_participant_id"`
	Participants      []Participant `gorm:"foreignKey:RoomID" json:"participants,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`

	// TherapistOnline mirrors live connection state and is never persisted.
	TherapistOnline bool `gorm:"-" json:"therapist_online"`
}

const (
	RoomStatusPending = "pending"
	RoomStatusActive  = "active"
	RoomStatusClosed  = "closed"
)
