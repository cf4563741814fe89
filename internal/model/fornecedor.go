package model

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor is a supplier. Documento (CNPJ) is unique when present;
// removal is a soft delete (Ativo=false).
type Fornecedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Documento *string   `gorm:"uniqueIndex"`
	Telefone  *string
	Email     *string
	Endereco  *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Produtos []Produto `gorm:"foreignKey:FornecedorID"`
}

func (Fornecedor) TableName() string { return "fornecedores" }
