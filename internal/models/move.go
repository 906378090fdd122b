package models

import "time"

type Move struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RoomID        uint         `gorm:"not null;index" json:"room_id"`
	ParticipantID uint         `gorm:"not null;index" json:"participant_id"`
	TurnNumber    int          `gorm:"not null" json:"turn_number"`
	DiceValue     int          `gorm:"not null" json:"dice_value"`
	FromPos       int          `gorm:"not null;default:0" json:"from_pos"`
	ToPos         int          `gorm:"not null;default:0" json:"to_pos"`
	Entered       bool         `gorm:"not null;default:false" json:"entered"`
	Note          *TherapyNote `gorm:"foreignKey:MoveID" json:"note,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

type TherapyNote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MoveID      uint      `gorm:"not null;uniqueIndex" json:"move_id"`
	Emotion     string    `gorm:"size:100" json:"emotion"`
	Intensity   int       `gorm:"not null;default:0" json:"intensity"`
	Insight     string    `gorm:"type:text" json:"insight"`
	Body        string    `gorm:"type:text" json:"body"`
	MicroAction string    `gorm:"type:text" json:"micro_action"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
