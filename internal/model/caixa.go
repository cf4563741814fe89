package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa is the single open cash-register session. At most one row may exist:
// a partial unique index on (ativo) WHERE ativo guarantees the invariant at
// the store level (see infra.applySchemaPatches), not just in application code.
type Caixa struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operador      string          `gorm:"not null"`
	DataAbertura  time.Time       `gorm:"not null"`
	ValorAbertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVendas   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalReforcos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalSangrias decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time

	Movimentacoes []MovimentacaoCaixa `gorm:"foreignKey:CaixaID"`
}

func (Caixa) TableName() string { return "caixas" }

// Saldo is the running balance of the session. Sangrias may exceed it —
// a negative balance is recorded, not rejected.
func (c *Caixa) Saldo() decimal.Decimal {
	return c.ValorAbertura.Add(c.TotalVendas).Add(c.TotalReforcos).Sub(c.TotalSangrias)
}

// MovimentacaoCaixa is an immutable entry in the register ledger.
// Tipo: "venda" | "reforco" | "sangria"
// While the session is open the entry hangs off Caixa; the closing transaction
// re-parents it to the FechamentoCaixa that archives the session.
type MovimentacaoCaixa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID      *uuid.UUID      `gorm:"type:uuid;index"`
	FechamentoID *uuid.UUID      `gorm:"type:uuid;index"`
	Tipo         string          `gorm:"type:varchar(20);not null"`
	Valor        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observacao   *string
	CreatedAt    time.Time
}

func (MovimentacaoCaixa) TableName() string { return "movimentacoes_caixa" }

// FechamentoCaixa is the immutable closing record of a register session.
// Diferenca = SaldoContado − SaldoEsperado.
type FechamentoCaixa struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operador       string          `gorm:"not null"`
	DataAbertura   time.Time       `gorm:"not null"`
	DataFechamento time.Time       `gorm:"not null"`
	ValorAbertura  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVendas    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalReforcos  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalSangrias  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaldoEsperado  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaldoContado   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Diferenca      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Movimentacoes []MovimentacaoCaixa `gorm:"foreignKey:FechamentoID;constraint:OnDelete:CASCADE"`
}

func (FechamentoCaixa) TableName() string { return "fechamentos_caixa" }
