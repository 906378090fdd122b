package models

import "time"

type Participant struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	RoomID            uint       `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID            uint       `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	Role              string     `gorm:"size:20;not null" json:"role"`
	DisplayName       string     `gorm:"size:100;not null" json:"display_name"`
	ConsentAcceptedAt *time.Time `json:"consent_accepted_at"`
	JoinedAt          time.Time  `json:"joined_at"`
}

const (
	RoleTherapist = "therapist"
	RolePlayer    = "player"
)

func (p *Participant) HasConsented() bool {
	return p.ConsentAcceptedAt != nil
}
