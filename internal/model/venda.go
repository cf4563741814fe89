package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda is a finalized sale. It owns its items and payments (cascade);
// all three are written inside a single transaction at finalization.
type Venda struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorPago       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Troco           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	QuantidadeItens int             `gorm:"not null"`
	Desconto        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time

	Itens      []VendaItem      `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE"`
	Pagamentos []VendaPagamento `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE"`
}

func (Venda) TableName() string { return "vendas" }

// VendaItem is one sale line. Nome, CodigoBarras and CustoUnitario are snapshots
// taken at finalization so margin reports stay correct after catalog edits.
type VendaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Nome          string          `gorm:"not null"`
	CodigoBarras  string          `gorm:"not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (VendaItem) TableName() string { return "venda_itens" }

// VendaPagamento is one payment allocation for a sale.
// Forma: "dinheiro" | "debito" | "credito" | "pix"
type VendaPagamento struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Forma   string          `gorm:"type:varchar(20);not null"`
	Valor   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VendaPagamento) TableName() string { return "venda_pagamentos" }
