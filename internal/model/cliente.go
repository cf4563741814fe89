package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a store customer. Documento (CPF) is unique when present;
// removal is a soft delete (Ativo=false).
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Documento *string   `gorm:"uniqueIndex"`
	Telefone  *string
	Email     *string
	Endereco  *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
