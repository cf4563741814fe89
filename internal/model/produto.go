package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog item sold at the PDV. Products are never hard-deleted:
// removal sets Ativo=false so historical sale items keep a valid reference.
type Produto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"index;not null"`
	Descricao    *string
	PrecoVenda   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecoCusto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// DescontoPct is a default percentage discount applied at the PDV (0–100)
	DescontoPct   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Estoque       int             `gorm:"not null;default:0"`
	EstoqueMinimo int             `gorm:"not null;default:0"`
	CategoriaID   *uuid.UUID      `gorm:"type:uuid;index"`
	FornecedorID  *uuid.UUID      `gorm:"type:uuid;index"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Categoria  *Categoria  `gorm:"foreignKey:CategoriaID"`
	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

// EstoqueBaixo reports whether the product should appear in the low-stock alert.
// Zero stock always qualifies, independent of the configured minimum.
func (p *Produto) EstoqueBaixo() bool {
	return p.Estoque == 0 || (p.EstoqueMinimo > 0 && p.Estoque <= p.EstoqueMinimo)
}
