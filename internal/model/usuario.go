package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is a back-office operator account.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Nome      string    `gorm:"not null"`
	SenhaHash string    `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuarios" }
