package models

import "time"

type DeckDraw struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	DrawnByID uint      `gorm:"not null" json:"drawn_by_id"`
	MoveID    *uint     `json:"move_id,omitempty"`
	Houses    []int     `gorm:"serializer:json;type:text" json:"houses"`
	CreatedAt time.Time `json:"created_at"`
}
