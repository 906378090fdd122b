package models

type PlayerState struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	RoomID          uint `gorm:"not null;index" json:"room_id"`
	ParticipantID   uint `gorm:"not null;uniqueIndex" json:"participant_id"`
	Position        int  `gorm:"not null;default:0" json:"position"`
	HasStarted      bool `gorm:"not null;default:false" json:"has_started"`
	HasCompleted    bool `gorm:"not null;default:false" json:"has_completed"`
	RollCountTotal  int  `gorm:"not null;default:0" json:"roll_count_total"`
	RollsUntilStart int  `gorm:"not null;default:0" json:"rolls_until_start"`
}
