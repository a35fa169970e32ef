package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

type Study struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:300;index;not null"`
	CreatedAt time.Time
}

type Instrument struct {
	ID        uint            `gorm:"primaryKey"`
	StudyID   uint            `gorm:"not null;index"`
	Name      string          `gorm:"size:300;not null"`
	Spec      json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time

	Study Study `gorm:"foreignKey:StudyID;constraint:OnDelete:CASCADE"`
}

type Session struct {
	ID            uint   `gorm:"primaryKey"`
	InstrumentID  uint   `gorm:"not null;index"`
	ParticipantID string `gorm:"size:64;index;not null"`
	CreatedAt     time.Time

	Instrument Instrument `gorm:"foreignKey:InstrumentID;constraint:OnDelete:CASCADE"`
}

type Response struct {
	ID        uint            `gorm:"primaryKey"`
	SessionID uint            `gorm:"not null;index"`
	TaskID    string          `gorm:"not null"`
	Payload   json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time

	Session Session `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
